package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByOrderID(ctx context.Context, orderID string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error

	// Business queries
	FindByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error)
	FindByShowtimeID(ctx context.Context, showtimeID string) ([]*entity.Booking, error)
	FindAll(ctx context.Context) ([]*entity.Booking, error)
}

// bookingRepository keeps bookings in memory; the ledger is not durable.
// Stored values are copies, callers never share a *entity.Booking with the store.
type bookingRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*entity.Booking
	log      *zap.Logger
}

func NewBookingRepository(log *zap.Logger) BookingRepository {
	return &bookingRepository{
		bookings: make(map[uuid.UUID]*entity.Booking),
		log:      log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[booking.ID]; exists {
		r.log.Error("Duplicate booking ID",
			zap.String("booking_id", booking.ID.String()),
			zap.String("order_id", booking.OrderID),
		)
		return fmt.Errorf("create booking %s: duplicate id", booking.OrderID)
	}

	r.bookings[booking.ID] = booking.Clone()
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return b.Clone(), nil
}

func (r *bookingRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.OrderID == orderID {
			return b.Clone(), nil
		}
	}
	return nil, nil
}

// FindByUserID returns the user's bookings newest first.
func (r *bookingRepository) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Booking, error) {
	matched := r.filter(func(b *entity.Booking) bool { return b.UserID == userID })

	start, end := utils.PageBounds(len(matched), limit, offset)
	if start == end {
		return []*entity.Booking{}, nil
	}
	return matched[start:end], nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, b := range r.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[booking.ID]; !exists {
		r.log.Error("Failed to update booking",
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", booking.Status.String()),
		)
		return fmt.Errorf("update booking %s: not found", booking.ID.String())
	}

	r.bookings[booking.ID] = booking.Clone()
	return nil
}

func (r *bookingRepository) FindByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error) {
	return r.filter(func(b *entity.Booking) bool { return b.Status == status }), nil
}

func (r *bookingRepository) FindByShowtimeID(ctx context.Context, showtimeID string) ([]*entity.Booking, error) {
	return r.filter(func(b *entity.Booking) bool { return b.ShowtimeID == showtimeID }), nil
}

// FindAll returns every booking newest first.
func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	return r.filter(func(*entity.Booking) bool { return true }), nil
}

func (r *bookingRepository) filter(keep func(*entity.Booking) bool) []*entity.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Booking, 0)
	for _, b := range r.bookings {
		if keep(b) {
			out = append(out, b.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].OrderID > out[j].OrderID
	})
	return out
}
