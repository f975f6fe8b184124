package request

type CreateBookingRequest struct {
	ShowtimeID string `json:"showtime_id" validate:"required,max=64"`
	// Either SeatIDs or Quantity; Quantity alone picks the first free seats.
	SeatIDs  []string `json:"seat_ids" validate:"omitempty,max=50,dive,required,max=8"`
	Quantity int      `json:"quantity" validate:"omitempty,min=1,max=50"`

	TicketType   string `json:"ticket_type" validate:"omitempty,max=32"`
	AddOn        string `json:"add_on" validate:"omitempty,max=32"`
	DiscountCode string `json:"discount_code" validate:"omitempty,max=32"`
	NationalID   string `json:"national_id" validate:"omitempty,max=16"`
	IsMember     bool   `json:"is_member"`
}

// PayBookingRequest carries no validate tags: the payment validator checks the
// window first and reports a reason for every rejected field.
type PayBookingRequest struct {
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}
