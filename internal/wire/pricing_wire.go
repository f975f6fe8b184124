package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePricing(r chi.Router, pricingHandler *adaptor.PricingHandler) {
	r.Route("/api/pricing", func(r chi.Router) {
		r.Post("/quote", pricingHandler.Quote)
		r.Get("/discounts", pricingHandler.GetDiscounts)
		r.Post("/discounts/applicable", pricingHandler.ApplicableDiscounts)
		r.Get("/fares", pricingHandler.CompareFares) // ?format=&audience=
	})

	r.Post("/api/identity/validate", pricingHandler.ValidateIdentity)
}
