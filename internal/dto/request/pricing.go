package request

type QuoteRequest struct {
	ShowtimeID   string `json:"showtime_id" validate:"required,max=64"`
	Quantity     int    `json:"quantity" validate:"required,min=1,max=50"`
	TicketType   string `json:"ticket_type" validate:"omitempty,max=32"`
	AddOn        string `json:"add_on" validate:"omitempty,max=32"`
	DiscountCode string `json:"discount_code" validate:"omitempty,max=32"`
	NationalID   string `json:"national_id" validate:"omitempty,max=16"`
	IsMember     bool   `json:"is_member"`
}

type DiscountQuery struct {
	ShowtimeID string `json:"showtime_id" validate:"required,max=64"`
	Quantity   int    `json:"quantity" validate:"required,min=1,max=50"`
	NationalID string `json:"national_id" validate:"omitempty,max=16"`
	IsMember   bool   `json:"is_member"`
}

type ValidateIdentityRequest struct {
	NationalID string `json:"national_id" validate:"required,max=16"`
}
