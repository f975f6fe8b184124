package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/event"
	"cinema-ticketing/internal/inventory"
	"cinema-ticketing/internal/payment"
	"cinema-ticketing/internal/pricing"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// Dependencies are the collaborators a Service is assembled from. Clock and
// Publisher are optional.
type Dependencies struct {
	Repo      *repository.Repository
	Pricing   *pricing.Engine
	Publisher event.Publisher
	Config    utils.BookingConfig
	Clock     func() time.Time
	Log       *zap.Logger
}

// Service owns the seat inventory and every service built on it. One Service
// per process, or per test.
type Service struct {
	Booking BookingService
	Catalog CatalogService
	Pricing PricingService
	Admin   AdminService

	Inventory *inventory.Inventory
}

func NewService(deps Dependencies) (*Service, error) {
	if deps.Repo == nil || deps.Pricing == nil || deps.Log == nil {
		return nil, fmt.Errorf("repository, pricing engine and logger are required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = event.NewLogPublisher(deps.Log)
	}

	inv, err := buildInventory(deps.Repo.Catalog, deps.Config, deps.Log)
	if err != nil {
		return nil, err
	}

	validator := payment.NewValidator(deps.Config.PaymentTimeout, clock)

	return &Service{
		Booking:   NewBookingService(deps.Repo, inv, deps.Pricing, validator, publisher, []byte(deps.Config.IDDigestKey), clock, deps.Log),
		Catalog:   NewCatalogService(deps.Repo, inv, deps.Log),
		Pricing:   NewPricingService(deps.Repo.Catalog, deps.Pricing, clock, deps.Log),
		Admin:     NewAdminService(deps.Repo, inv, deps.Pricing, deps.Log),
		Inventory: inv,
	}, nil
}

// buildInventory registers a seat grid per showtime, sized by its theater or
// by the configured default.
func buildInventory(catalog repository.CatalogRepository, cfg utils.BookingConfig, log *zap.Logger) (*inventory.Inventory, error) {
	ctx := context.Background()
	inv := inventory.New(log)

	showtimes, err := catalog.Showtimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list showtimes: %w", err)
	}

	for _, st := range showtimes {
		rows, cols := cfg.SeatRows, cfg.SeatCols
		if theater := lookup(ctx, log, "theater", st.TheaterID, catalog.FindTheater); theater != nil {
			if theater.SeatRows > 0 {
				rows = theater.SeatRows
			}
			if theater.SeatCols > 0 {
				cols = theater.SeatCols
			}
		}
		if err := inv.Register(st.ID, rows, cols); err != nil {
			return nil, fmt.Errorf("register seats: %w", err)
		}
	}

	log.Info("Seat inventory ready", zap.Int("showtimes", len(showtimes)))
	return inv, nil
}
