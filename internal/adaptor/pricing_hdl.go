package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type PricingHandler struct {
	service usecase.PricingService
	log     *zap.Logger
}

func NewPricingHandler(service usecase.PricingService, log *zap.Logger) *PricingHandler {
	return &PricingHandler{
		service: service,
		log:     log.With(zap.String("handler", "pricing")),
	}
}

// Quote handles POST /api/pricing/quote
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "quote price")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// GetDiscounts handles GET /api/pricing/discounts
func (h *PricingHandler) GetDiscounts(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.ListDiscounts(r.Context()))
}

// ApplicableDiscounts handles POST /api/pricing/discounts/applicable
func (h *PricingHandler) ApplicableDiscounts(w http.ResponseWriter, r *http.Request) {
	var req request.DiscountQuery
	if !decodeAndValidate(w, r, &req) {
		return
	}

	discounts, err := h.service.ApplicableDiscounts(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "list applicable discounts")
		return
	}

	utils.ResponseSuccess(w, "success", discounts)
}

// CompareFares handles GET /api/pricing/fares?format=&audience=
func (h *PricingHandler) CompareFares(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fares, err := h.service.CompareFares(r.Context(), query.Get("format"), query.Get("audience"))
	if err != nil {
		handleServiceError(h.log, w, err, "compare fares")
		return
	}

	utils.ResponseSuccess(w, "success", fares)
}

// ValidateIdentity handles POST /api/identity/validate
func (h *PricingHandler) ValidateIdentity(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateIdentityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.service.ValidateIdentity(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "validate identity")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
