package request

// AdminBookingQuery filters the booking overview. Both filters are optional.
type AdminBookingQuery struct {
	PaginatedRequest
	Status     string `json:"status" validate:"omitempty,max=16"`
	ShowtimeID string `json:"showtime_id" validate:"omitempty,max=64"`
}
