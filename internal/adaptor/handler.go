package adaptor

import (
	"cinema-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	Movie   *MovieHandler
	Cinema  *CinemaHandler
	Pricing *PricingHandler
	Admin   *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Booking, log),
		Movie:   NewMovieHandler(service.Catalog, log),
		Cinema:  NewCinemaHandler(service.Catalog, log),
		Pricing: NewPricingHandler(service.Pricing, log),
		Admin:   NewAdminHandler(service.Admin, log),
	}
}
