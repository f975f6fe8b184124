package repository

import (
	"fmt"

	"cinema-ticketing/internal/data/entity"

	"go.uber.org/zap"
)

type Repository struct {
	Catalog    CatalogRepository
	Booking    BookingRepository
	Ticket     TicketRepository
	Popularity PopularityRepository
}

// NewRepository builds the stores around an already loaded catalog. The
// catalog may come from the seed file or from LoadCatalog.
func NewRepository(catalog entity.Catalog, log *zap.Logger) (*Repository, error) {
	catalogRepo, err := NewCatalogRepository(catalog, log)
	if err != nil {
		return nil, fmt.Errorf("index catalog: %w", err)
	}

	return &Repository{
		Catalog:    catalogRepo,
		Booking:    NewBookingRepository(log),
		Ticket:     NewTicketRepository(log),
		Popularity: NewPopularityRepository(log),
	}, nil
}
