package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

// ShowtimeStockResponse compares the seat grid with the booking ledger.
// Consistent is false when held seats and seats on live bookings differ.
type ShowtimeStockResponse struct {
	ShowtimeID string    `json:"showtime_id"`
	StartsAt   time.Time `json:"starts_at"`
	Capacity   int       `json:"capacity"`
	Remaining  int       `json:"remaining"`
	Held       int       `json:"held"`
	Booked     int       `json:"booked"`
	Consistent bool      `json:"consistent"`
}

type MovieStockResponse struct {
	MovieID      string                  `json:"movie_id"`
	Title        string                  `json:"title"`
	Capacity     int                     `json:"capacity"`
	Remaining    int                     `json:"remaining"`
	PaidBookings int                     `json:"paid_bookings"`
	Showtimes    []ShowtimeStockResponse `json:"showtimes"`
}

type BookingStatsResponse struct {
	TotalBookings int                          `json:"total_bookings"`
	ByStatus      map[entity.BookingStatus]int `json:"by_status"`
	Open          int                          `json:"open"`
	Closed        int                          `json:"closed"`
	Revenue       int                          `json:"revenue"`
	AveragePaid   int                          `json:"average_paid"`
	RefundedNet   int                          `json:"refunded_net"`
	TicketsByType map[entity.TicketType]int    `json:"tickets_by_type"`
	Users         int                          `json:"users"`
}
