package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/identity"
	"cinema-ticketing/internal/pricing"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type PricingService interface {
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error)
	ListDiscounts(ctx context.Context) []response.DiscountResponse
	ApplicableDiscounts(ctx context.Context, req *request.DiscountQuery) ([]response.DiscountResponse, error)
	CompareFares(ctx context.Context, format, audience string) (*response.FareComparisonResponse, error)
	ValidateIdentity(ctx context.Context, req *request.ValidateIdentityRequest) (*response.IdentityResponse, error)
}

type pricingService struct {
	catalog repository.CatalogRepository
	engine  *pricing.Engine
	now     func() time.Time
	log     *zap.Logger
}

func NewPricingService(catalog repository.CatalogRepository, engine *pricing.Engine, now func() time.Time, log *zap.Logger) PricingService {
	return &pricingService{
		catalog: catalog,
		engine:  engine,
		now:     now,
		log:     log.With(zap.String("service", "pricing")),
	}
}

// Quote previews the price of an order. An inapplicable discount code is
// reported through DiscountApplied rather than as an error.
func (s *pricingService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	showtime, err := findShowtime(ctx, s.catalog, req.ShowtimeID)
	if err != nil {
		return nil, err
	}

	verified := false
	if req.NationalID != "" {
		if !identity.Validate(req.NationalID) {
			return nil, fmt.Errorf("%w: invalid national id", ErrValidation)
		}
		verified = true
	}

	price, err := breakdown(s.engine, showtime.BasePrice, req.Quantity, req.TicketType, req.AddOn)
	if err != nil {
		return nil, err
	}

	dctx := discountContext(showtime, req.Quantity, req.IsMember, verified, s.now())
	total := price.subtotal
	applied := false
	if req.DiscountCode != "" && s.engine.IsCodeApplicable(req.DiscountCode, dctx) {
		total = s.engine.Apply(price.subtotal, req.DiscountCode, dctx)
		applied = true
	}

	s.log.Debug("Price quoted",
		zap.String("showtime_id", showtime.ID),
		zap.Int("quantity", req.Quantity),
		zap.Int("subtotal", price.subtotal),
		zap.Int("total", total),
	)

	return &response.QuoteResponse{
		ShowtimeID:      showtime.ID,
		Quantity:        req.Quantity,
		TicketType:      price.ticketType,
		UnitPrice:       price.unit,
		AddOn:           price.addOn,
		AddOnPrice:      price.addOnPrice,
		Subtotal:        price.subtotal,
		DiscountCode:    strings.ToUpper(strings.TrimSpace(req.DiscountCode)),
		DiscountApplied: applied,
		Total:           total,
	}, nil
}

func (s *pricingService) ListDiscounts(ctx context.Context) []response.DiscountResponse {
	discounts := s.engine.Discounts()
	out := make([]response.DiscountResponse, len(discounts))
	for i, d := range discounts {
		out[i] = response.DiscountToResponse(d)
	}
	return out
}

func (s *pricingService) ApplicableDiscounts(ctx context.Context, req *request.DiscountQuery) ([]response.DiscountResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	showtime, err := findShowtime(ctx, s.catalog, req.ShowtimeID)
	if err != nil {
		return nil, err
	}

	verified := req.NationalID != "" && identity.Validate(req.NationalID)
	dctx := discountContext(showtime, req.Quantity, req.IsMember, verified, s.now())

	discounts := s.engine.ApplicableDiscounts(dctx)
	out := make([]response.DiscountResponse, len(discounts))
	for i, d := range discounts {
		out[i] = response.DiscountToResponse(d)
	}
	return out, nil
}

func (s *pricingService) CompareFares(ctx context.Context, format, audience string) (*response.FareComparisonResponse, error) {
	if strings.TrimSpace(format) == "" || strings.TrimSpace(audience) == "" {
		return nil, fmt.Errorf("%w: format and audience are required", ErrValidation)
	}

	quotes := s.engine.Compare(format, audience)
	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w: no fares for %s %s", ErrNotFound, format, audience)
	}

	return &response.FareComparisonResponse{
		Format:   strings.ToUpper(format),
		Audience: strings.ToUpper(audience),
		Lowest:   quotes[0].Price,
		Fares:    quotes,
	}, nil
}

func (s *pricingService) ValidateIdentity(ctx context.Context, req *request.ValidateIdentityRequest) (*response.IdentityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	return &response.IdentityResponse{Valid: identity.Validate(req.NationalID)}, nil
}

// ==================== SHARED HELPERS ====================

type priceLines struct {
	ticketType entity.TicketType
	unit       int
	addOn      entity.AddOn
	addOnPrice int
	subtotal   int
}

// breakdown prices quantity tickets plus one add-on selection, before discounts.
func breakdown(engine *pricing.Engine, basePrice, quantity int, ticketType, addOn string) (priceLines, error) {
	tt := entity.TicketType(strings.ToUpper(strings.TrimSpace(ticketType)))
	if tt == "" {
		tt = entity.TicketTypeStandard
	}
	ao := entity.AddOn(strings.ToUpper(strings.TrimSpace(addOn)))
	if ao == "" {
		ao = entity.AddOnNone
	}

	unit, err := engine.UnitPrice(basePrice, tt)
	if err != nil {
		return priceLines{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	addOnPrice, err := engine.AddOnPrice(ao)
	if err != nil {
		return priceLines{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return priceLines{
		ticketType: tt,
		unit:       unit,
		addOn:      ao,
		addOnPrice: addOnPrice,
		subtotal:   unit*quantity + addOnPrice,
	}, nil
}

func discountContext(showtime *entity.Showtime, quantity int, isMember, verified bool, now time.Time) *pricing.DiscountContext {
	return &pricing.DiscountContext{
		ShowDate:         showtime.StartsAt,
		Today:            now,
		Quantity:         quantity,
		IsMember:         isMember,
		IdentityVerified: verified,
	}
}

func findShowtime(ctx context.Context, catalog repository.CatalogRepository, id string) (*entity.Showtime, error) {
	showtime, err := catalog.FindShowtime(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("%w: showtime %s", ErrNotFound, id)
	}
	return showtime, nil
}
