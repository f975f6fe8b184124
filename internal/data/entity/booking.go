package entity

import (
	"slices"
	"time"
)

type BookingStatus string

const (
	BookingStatusCreated  BookingStatus = "CREATED"
	BookingStatusPaid     BookingStatus = "PAID"
	BookingStatusCanceled BookingStatus = "CANCELED"
	BookingStatusRefunded BookingStatus = "REFUNDED"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusCreated: {BookingStatusPaid, BookingStatusCanceled},
	BookingStatusPaid:    {BookingStatusRefunded},
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusCreated, BookingStatusPaid, BookingStatusCanceled, BookingStatusRefunded:
		return true
	}
	return false
}

func (s BookingStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return slices.Contains(bookingTransitions[s], next)
}

// IsTerminal reports whether no transition leaves s.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCanceled || s == BookingStatusRefunded
}

// HoldsSeats reports whether a booking in s keeps its seats reserved.
func (s BookingStatus) HoldsSeats() bool {
	return s == BookingStatusCreated || s == BookingStatusPaid
}

type TicketType string

const (
	TicketTypeStandard  TicketType = "STANDARD"
	TicketTypeStudent   TicketType = "STUDENT"
	TicketTypeEarlyBird TicketType = "EARLY_BIRD"
)

type AddOn string

const (
	AddOnNone        AddOn = "NONE"
	AddOnPopcornCola AddOn = "POPCORN_COLA"
	AddOnCoupleSet   AddOn = "COUPLE_SET"
)

type Booking struct {
	Base
	OrderID    string     `db:"order_id"`
	UserID     string     `db:"user_id"`
	ShowtimeID string     `db:"showtime_id"`
	SeatIDs    []string   `db:"seat_ids"`
	TicketType TicketType `db:"ticket_type"`
	AddOn      AddOn      `db:"add_on"`

	DiscountCode   string `db:"discount_code"`
	Subtotal       int    `db:"subtotal"`
	TotalPrice     int    `db:"total_price"`
	IdentityDigest string `db:"identity_digest"`

	Status     BookingStatus `db:"status"`
	PaidAt     *time.Time    `db:"paid_at"`
	CanceledAt *time.Time    `db:"canceled_at"`
	RefundedAt *time.Time    `db:"refunded_at"`

	// Set on the PAID -> REFUNDED transition.
	Refund *RefundRecord `db:"-"`
}

type RefundRecord struct {
	DaysUntilShow int `db:"days_until_show"`
	RatePercent   int `db:"rate_percent"`
	Amount        int `db:"amount"`
	ServiceFee    int `db:"service_fee"`
	Net           int `db:"net"`
}

// Clone returns a deep copy so callers never share mutable state with the ledger.
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	c := *b
	c.SeatIDs = slices.Clone(b.SeatIDs)
	c.PaidAt = cloneTime(b.PaidAt)
	c.CanceledAt = cloneTime(b.CanceledAt)
	c.RefundedAt = cloneTime(b.RefundedAt)
	if b.Refund != nil {
		r := *b.Refund
		c.Refund = &r
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
