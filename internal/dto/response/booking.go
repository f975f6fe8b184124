package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

type BookingResponse struct {
	ID           string               `json:"id"`
	OrderID      string               `json:"order_id"`
	UserID       string               `json:"user_id"`
	ShowtimeID   string               `json:"showtime_id"`
	MovieTitle   string               `json:"movie_title,omitempty"`
	TheaterName  string               `json:"theater_name,omitempty"`
	StartsAt     *time.Time           `json:"starts_at,omitempty"`
	SeatIDs      []string             `json:"seat_ids"`
	TicketType   entity.TicketType    `json:"ticket_type"`
	AddOn        entity.AddOn         `json:"add_on"`
	DiscountCode string               `json:"discount_code,omitempty"`
	Subtotal     int                  `json:"subtotal"`
	TotalPrice   int                  `json:"total_price"`
	Verified     bool                 `json:"identity_verified"`
	Status       entity.BookingStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	PaidAt       *time.Time           `json:"paid_at,omitempty"`
	CanceledAt   *time.Time           `json:"canceled_at,omitempty"`
	RefundedAt   *time.Time           `json:"refunded_at,omitempty"`
	Refund       *RefundResponse      `json:"refund,omitempty"`
}

type TicketResponse struct {
	ID       string    `json:"id"`
	SeatID   string    `json:"seat_id"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
}

type PaymentResponse struct {
	Booking BookingResponse  `json:"booking"`
	Tickets []TicketResponse `json:"tickets"`
}

type RefundResponse struct {
	DaysUntilShow int `json:"days_until_show"`
	RatePercent   int `json:"rate_percent"`
	Amount        int `json:"refund_amount"`
	ServiceFee    int `json:"service_fee"`
	Net           int `json:"net_refund"`
}

// Helper converters
func BookingToResponse(b *entity.Booking, showtime *entity.Showtime, movie *entity.Movie, theater *entity.Theater) BookingResponse {
	resp := BookingResponse{
		ID:           b.ID.String(),
		OrderID:      b.OrderID,
		UserID:       b.UserID,
		ShowtimeID:   b.ShowtimeID,
		SeatIDs:      append([]string(nil), b.SeatIDs...),
		TicketType:   b.TicketType,
		AddOn:        b.AddOn,
		DiscountCode: b.DiscountCode,
		Subtotal:     b.Subtotal,
		TotalPrice:   b.TotalPrice,
		Verified:     b.IdentityDigest != "",
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
		PaidAt:       b.PaidAt,
		CanceledAt:   b.CanceledAt,
		RefundedAt:   b.RefundedAt,
	}
	if showtime != nil {
		startsAt := showtime.StartsAt
		resp.StartsAt = &startsAt
	}
	if movie != nil {
		resp.MovieTitle = movie.Title
	}
	if theater != nil {
		resp.TheaterName = theater.Name
	}
	if b.Refund != nil {
		r := RefundToResponse(*b.Refund)
		resp.Refund = &r
	}
	return resp
}

func TicketToResponse(t *entity.Ticket) TicketResponse {
	return TicketResponse{
		ID:       t.ID,
		SeatID:   t.SeatID,
		Code:     t.Code,
		IssuedAt: t.IssuedAt,
	}
}

func RefundToResponse(r entity.RefundRecord) RefundResponse {
	return RefundResponse{
		DaysUntilShow: r.DaysUntilShow,
		RatePercent:   r.RatePercent,
		Amount:        r.Amount,
		ServiceFee:    r.ServiceFee,
		Net:           r.Net,
	}
}
