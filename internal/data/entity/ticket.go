package entity

import (
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	ID        string    `db:"id"`
	BookingID uuid.UUID `db:"booking_id"`
	SeatID    string    `db:"seat_id"`
	Code      string    `db:"code"`
	IssuedAt  time.Time `db:"issued_at"`
}
