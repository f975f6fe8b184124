// Package identity validates Taiwan national identification numbers.
//
// The leading letter maps to the official two-digit household registration code
// (I, O and W sit outside the straight sequence: I=34, O=35, W=32). The number is
// valid when the weighted sum of the code digits and the nine body digits is a
// multiple of ten.
package identity

import (
	"encoding/hex"
	"regexp"
	"strings"

	"golang.org/x/crypto/blake2b"
)

var pattern = regexp.MustCompile(`^[A-Z][12][0-9]{8}$`)

var letterCodes = map[byte]int{
	'A': 10, 'B': 11, 'C': 12, 'D': 13, 'E': 14, 'F': 15, 'G': 16, 'H': 17,
	'I': 34, 'J': 18, 'K': 19, 'L': 20, 'M': 21, 'N': 22, 'O': 35, 'P': 23,
	'Q': 24, 'R': 25, 'S': 26, 'T': 27, 'U': 28, 'V': 29, 'W': 32, 'X': 30,
	'Y': 31, 'Z': 33,
}

// body digit weights, check digit last
var weights = [9]int{8, 7, 6, 5, 4, 3, 2, 1, 1}

// Normalize trims surrounding whitespace and upper-cases the id.
func Normalize(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Validate reports whether id is a well-formed national id with a correct checksum.
func Validate(id string) bool {
	id = Normalize(id)
	if !pattern.MatchString(id) {
		return false
	}

	code, ok := letterCodes[id[0]]
	if !ok {
		return false
	}

	sum := (code/10)*1 + (code%10)*9
	for i := 1; i <= 9; i++ {
		sum += int(id[i]-'0') * weights[i-1]
	}
	return sum%10 == 0
}

// Digest returns a keyed BLAKE2b-256 hex digest of the normalized id so that
// bookings can be bound to an identity without storing the number itself.
func Digest(id string, key []byte) (string, error) {
	h, err := blake2b.New256(key)
	if err != nil {
		return "", err
	}
	h.Write([]byte(Normalize(id)))
	return hex.EncodeToString(h.Sum(nil)), nil
}
