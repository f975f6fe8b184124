package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxRows is bounded by the single-letter row alphabet.
const MaxRows = 26

// Seat is a zero-based position in a showtime's seat grid.
type Seat struct {
	Row int
	Col int
}

// ParseSeat converts a label such as "B7" into a Seat. The label must fit a
// grid of rows x cols.
func ParseSeat(label string, rows, cols int) (Seat, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) < 2 {
		return Seat{}, fmt.Errorf("%w: %q", ErrInvalidSeat, label)
	}

	row := int(label[0]) - 'A'
	if row < 0 || row >= rows {
		return Seat{}, fmt.Errorf("%w: row of %q out of range", ErrInvalidSeat, label)
	}

	num := label[1:]
	if num[0] < '1' || num[0] > '9' {
		return Seat{}, fmt.Errorf("%w: column of %q", ErrInvalidSeat, label)
	}
	col, err := strconv.Atoi(num)
	if err != nil || col < 1 || col > cols {
		return Seat{}, fmt.Errorf("%w: column of %q out of range", ErrInvalidSeat, label)
	}

	return Seat{Row: row, Col: col - 1}, nil
}

// Label renders the seat the way customers read it, e.g. "A1".
func (s Seat) Label() string {
	return string(rune('A'+s.Row)) + strconv.Itoa(s.Col+1)
}
