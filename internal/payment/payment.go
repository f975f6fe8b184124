// Package payment validates card payment instruments for an order. No issuer is
// contacted; card numbers are checked with the Luhn checksum only.
package payment

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultTimeout is the payment window measured from order creation.
const DefaultTimeout = 90 * time.Second

// Reason identifies the first failing payment check.
type Reason string

const (
	ReasonExpiredSession Reason = "EXPIRED_SESSION"
	ReasonInvalidCard    Reason = "INVALID_CARD"
	ReasonInvalidExpiry  Reason = "INVALID_EXPIRY"
	ReasonInvalidCVV     Reason = "INVALID_CVV"
)

var (
	cardPattern   = regexp.MustCompile(`^[0-9]{13,19}$`)
	expiryPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}$`)
	cvvPattern    = regexp.MustCompile(`^[0-9]{3}$`)
)

// Error is returned when a payment instrument is rejected.
type Error struct {
	Reason Reason
}

func (e *Error) Error() string {
	switch e.Reason {
	case ReasonExpiredSession:
		return "payment session expired, please place the order again"
	case ReasonInvalidCard:
		return "invalid card number"
	case ReasonInvalidExpiry:
		return "invalid card expiry"
	case ReasonInvalidCVV:
		return "invalid cvv"
	default:
		return fmt.Sprintf("payment rejected: %s", e.Reason)
	}
}

// Validator checks card details against the transaction window.
type Validator struct {
	timeout time.Duration
	now     func() time.Time
}

// NewValidator returns a Validator. A non-positive timeout falls back to
// DefaultTimeout and a nil clock to time.Now.
func NewValidator(timeout time.Duration, clock func() time.Time) *Validator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if clock == nil {
		clock = time.Now
	}
	return &Validator{timeout: timeout, now: clock}
}

// Timeout returns the configured payment window.
func (v *Validator) Timeout() time.Duration {
	return v.timeout
}

// Expired reports whether the payment window of an order created at createdAt has elapsed.
func (v *Validator) Expired(createdAt time.Time) bool {
	return v.now().Sub(createdAt) > v.timeout
}

// Validate runs the window, card, expiry and cvv checks in that order and
// returns an *Error for the first one that fails.
func (v *Validator) Validate(cardNumber, expiry, cvv string, orderCreatedAt time.Time) error {
	if v.Expired(orderCreatedAt) {
		return &Error{Reason: ReasonExpiredSession}
	}
	if !LuhnValid(cardNumber) {
		return &Error{Reason: ReasonInvalidCard}
	}
	if !ExpiryValid(expiry, v.now()) {
		return &Error{Reason: ReasonInvalidExpiry}
	}
	if !cvvPattern.MatchString(cvv) {
		return &Error{Reason: ReasonInvalidCVV}
	}
	return nil
}

// LuhnValid reports whether s (whitespace ignored) is 13 to 19 digits passing
// the mod-10 checksum.
func LuhnValid(s string) bool {
	digits := strings.Join(strings.Fields(s), "")
	if !cardPattern.MatchString(digits) {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ExpiryValid reports whether a YYYY-MM expiry is not before the year-month of now.
func ExpiryValid(expiry string, now time.Time) bool {
	if !expiryPattern.MatchString(expiry) {
		return false
	}
	exp, err := time.Parse("2006-01", expiry)
	if err != nil {
		return false
	}
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return !exp.Before(current)
}
