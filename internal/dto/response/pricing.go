package response

import (
	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/pricing"
)

type QuoteResponse struct {
	ShowtimeID      string            `json:"showtime_id"`
	Quantity        int               `json:"quantity"`
	TicketType      entity.TicketType `json:"ticket_type"`
	UnitPrice       int               `json:"unit_price"`
	AddOn           entity.AddOn      `json:"add_on"`
	AddOnPrice      int               `json:"add_on_price"`
	Subtotal        int               `json:"subtotal"`
	DiscountCode    string            `json:"discount_code,omitempty"`
	DiscountApplied bool              `json:"discount_applied"`
	Total           int               `json:"total"`
}

type DiscountResponse struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	Type       string `json:"type"`
}

type FareComparisonResponse struct {
	Format   string              `json:"format"`
	Audience string              `json:"audience"`
	Lowest   int                 `json:"lowest"`
	Fares    []pricing.FareQuote `json:"fares"`
}

type IdentityResponse struct {
	Valid bool `json:"valid"`
}

func DiscountToResponse(d pricing.Discount) DiscountResponse {
	return DiscountResponse{
		Code:       d.Code,
		Name:       d.Name,
		Percentage: d.Percentage,
		Type:       string(d.Type),
	}
}
