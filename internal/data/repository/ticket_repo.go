package repository

import (
	"context"
	"fmt"
	"sync"

	"cinema-ticketing/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketRepository interface {
	CreateBatch(ctx context.Context, tickets []*entity.Ticket) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Ticket, error)
	FindByCode(ctx context.Context, code string) (*entity.Ticket, error)
	DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error
}

type ticketRepository struct {
	mu        sync.RWMutex
	byBooking map[uuid.UUID][]entity.Ticket
	byCode    map[string]entity.Ticket
	log       *zap.Logger
}

func NewTicketRepository(log *zap.Logger) TicketRepository {
	return &ticketRepository{
		byBooking: make(map[uuid.UUID][]entity.Ticket),
		byCode:    make(map[string]entity.Ticket),
		log:       log.With(zap.String("repository", "ticket")),
	}
}

// CreateBatch stores all tickets or none; a code collision rejects the batch.
func (r *ticketRepository) CreateBatch(ctx context.Context, tickets []*entity.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range tickets {
		if _, dup := r.byCode[t.Code]; dup {
			r.log.Error("Duplicate ticket code",
				zap.String("code", t.Code),
				zap.String("booking_id", t.BookingID.String()),
			)
			return fmt.Errorf("create tickets: duplicate code %s", t.Code)
		}
	}
	for _, t := range tickets {
		r.byBooking[t.BookingID] = append(r.byBooking[t.BookingID], *t)
		r.byCode[t.Code] = *t
	}
	return nil
}

func (r *ticketRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byBooking[bookingID]
	out := make([]*entity.Ticket, len(stored))
	for i := range stored {
		t := stored[i]
		out[i] = &t
	}
	return out, nil
}

func (r *ticketRepository) FindByCode(ctx context.Context, code string) (*entity.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byCode[code]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// DeleteByBookingID withdraws every ticket of a booking and frees their codes.
func (r *ticketRepository) DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.byBooking[bookingID] {
		delete(r.byCode, t.Code)
	}
	delete(r.byBooking, bookingID)
	return nil
}
