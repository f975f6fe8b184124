// Package event publishes booking lifecycle events for downstream consumers
// (notifications, analytics). Publishing is best effort: callers log failures
// and carry on.
package event

import (
	"context"

	"go.uber.org/zap"
)

const (
	TypeBookingPaid     = "booking.paid"
	TypeBookingRefunded = "booking.refunded"
	TypeBookingCanceled = "booking.canceled"
)

// BookingEvent carries enough of the booking that consumers need not query the ledger.
type BookingEvent struct {
	Type        string   `json:"type"`
	BookingID   string   `json:"booking_id"`
	OrderID     string   `json:"order_id"`
	UserID      string   `json:"user_id"`
	ShowtimeID  string   `json:"showtime_id"`
	MovieID     string   `json:"movie_id"`
	Seats       []string `json:"seats"`
	TotalPrice  int      `json:"total_price"`
	NetRefund   int      `json:"net_refund,omitempty"`
	TicketCodes []string `json:"ticket_codes,omitempty"`
	OccurredAt  string   `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev BookingEvent) error
	Close() error
}

type logPublisher struct {
	log *zap.Logger
}

// NewLogPublisher writes events to the structured log. Used when no broker is configured.
func NewLogPublisher(log *zap.Logger) Publisher {
	return &logPublisher{log: log.With(zap.String("publisher", "log"))}
}

func (p *logPublisher) Publish(_ context.Context, ev BookingEvent) error {
	p.log.Info("Booking event",
		zap.String("type", ev.Type),
		zap.String("booking_id", ev.BookingID),
		zap.String("order_id", ev.OrderID),
		zap.String("showtime_id", ev.ShowtimeID),
		zap.Strings("seats", ev.Seats),
		zap.Int("total_price", ev.TotalPrice),
		zap.Int("net_refund", ev.NetRefund),
	)
	return nil
}

func (p *logPublisher) Close() error { return nil }
