package usecase

import (
	"context"
	"fmt"
	"strings"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/inventory"
	"cinema-ticketing/internal/pricing"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// AdminService serves read-only reports over every user's bookings.
type AdminService interface {
	ListBookings(ctx context.Context, req *request.AdminBookingQuery) (*response.PaginatedResponse[response.BookingResponse], error)
	SeatStock(ctx context.Context) ([]response.MovieStockResponse, error)
	Stats(ctx context.Context) (*response.BookingStatsResponse, error)
}

type adminService struct {
	repo      *repository.Repository
	inventory *inventory.Inventory
	pricing   *pricing.Engine
	log       *zap.Logger
}

func NewAdminService(repo *repository.Repository, inv *inventory.Inventory, engine *pricing.Engine, log *zap.Logger) AdminService {
	return &adminService{
		repo:      repo,
		inventory: inv,
		pricing:   engine,
		log:       log.With(zap.String("service", "admin")),
	}
}

// ListBookings pages through all bookings newest first, optionally narrowed
// to one status and one showtime.
func (s *adminService) ListBookings(ctx context.Context, req *request.AdminBookingQuery) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	status := entity.BookingStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown booking status %q", ErrValidation, req.Status)
	}

	var (
		bookings []*entity.Booking
		err      error
	)
	switch {
	case req.ShowtimeID != "":
		if _, err := findShowtime(ctx, s.repo.Catalog, req.ShowtimeID); err != nil {
			return nil, err
		}
		bookings, err = s.repo.Booking.FindByShowtimeID(ctx, req.ShowtimeID)
	case status != "":
		bookings, err = s.repo.Booking.FindByStatus(ctx, status)
	default:
		bookings, err = s.repo.Booking.FindAll(ctx)
	}
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	if req.ShowtimeID != "" && status != "" {
		kept := bookings[:0]
		for _, b := range bookings {
			if b.Status == status {
				kept = append(kept, b)
			}
		}
		bookings = kept
	}

	limit := req.Limit()
	start, end := utils.PageBounds(len(bookings), limit, req.Offset())
	out := make([]response.BookingResponse, 0, end-start)
	for _, b := range bookings[start:end] {
		out = append(out, describeBooking(ctx, s.repo.Catalog, b, s.log))
	}

	return response.NewPaginatedResponse(out, req.Page, limit, int64(len(bookings))), nil
}

// SeatStock reports remaining seats per movie and cross-checks every grid
// against the bookings that still hold seats on it.
func (s *adminService) SeatStock(ctx context.Context) ([]response.MovieStockResponse, error) {
	movies, err := s.repo.Catalog.Movies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	out := make([]response.MovieStockResponse, 0, len(movies))
	for _, m := range movies {
		showtimes, err := s.repo.Catalog.ShowtimesByMovie(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("list showtimes of %s: %w", m.ID, err)
		}
		paid, err := s.repo.Popularity.Count(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("count paid bookings of %s: %w", m.ID, err)
		}

		stock := response.MovieStockResponse{
			MovieID:      m.ID,
			Title:        m.Title,
			PaidBookings: paid,
			Showtimes:    make([]response.ShowtimeStockResponse, 0, len(showtimes)),
		}
		for _, st := range showtimes {
			row, err := s.showtimeStock(ctx, st)
			if err != nil {
				return nil, err
			}
			stock.Capacity += row.Capacity
			stock.Remaining += row.Remaining
			stock.Showtimes = append(stock.Showtimes, row)
		}
		out = append(out, stock)
	}
	return out, nil
}

func (s *adminService) showtimeStock(ctx context.Context, st *entity.Showtime) (response.ShowtimeStockResponse, error) {
	layout, err := s.inventory.Layout(st.ID)
	if err != nil {
		return response.ShowtimeStockResponse{}, fmt.Errorf("seat layout of %s: %w", st.ID, err)
	}
	free, err := s.inventory.Available(st.ID, 0)
	if err != nil {
		return response.ShowtimeStockResponse{}, fmt.Errorf("free seats of %s: %w", st.ID, err)
	}
	bookings, err := s.repo.Booking.FindByShowtimeID(ctx, st.ID)
	if err != nil {
		return response.ShowtimeStockResponse{}, fmt.Errorf("bookings of %s: %w", st.ID, err)
	}

	booked := 0
	for _, b := range bookings {
		if b.Status.HoldsSeats() {
			booked += len(b.SeatIDs)
		}
	}

	row := response.ShowtimeStockResponse{
		ShowtimeID: st.ID,
		StartsAt:   st.StartsAt,
		Capacity:   layout.Rows * layout.Cols,
		Remaining:  len(free),
		Booked:     booked,
	}
	row.Held = row.Capacity - row.Remaining
	row.Consistent = row.Held == row.Booked
	if !row.Consistent {
		// a create in flight holds seats before its booking is stored
		s.log.Warn("Seat grid and ledger disagree",
			zap.String("showtime_id", st.ID),
			zap.Int("held", row.Held),
			zap.Int("booked", row.Booked),
		)
	}
	return row, nil
}

// Stats summarizes the ledger. Revenue counts PAID bookings only; refunded
// bookings contribute their net refund instead.
func (s *adminService) Stats(ctx context.Context) (*response.BookingStatsResponse, error) {
	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to load bookings for stats", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	stats := &response.BookingStatsResponse{
		TotalBookings: len(bookings),
		ByStatus:      make(map[entity.BookingStatus]int),
		TicketsByType: make(map[entity.TicketType]int),
	}
	for _, tt := range s.pricing.TicketTypes() {
		stats.TicketsByType[tt] = 0
	}

	users := make(map[string]struct{})
	paid := 0
	for _, b := range bookings {
		users[b.UserID] = struct{}{}
		stats.ByStatus[b.Status]++
		if b.Status.IsTerminal() {
			stats.Closed++
		} else {
			stats.Open++
		}

		switch b.Status {
		case entity.BookingStatusPaid:
			paid++
			stats.Revenue += b.TotalPrice
			stats.TicketsByType[b.TicketType] += len(b.SeatIDs)
		case entity.BookingStatusRefunded:
			if b.Refund != nil {
				stats.RefundedNet += b.Refund.Net
			}
		}
	}
	if paid > 0 {
		stats.AveragePaid = stats.Revenue / paid
	}
	stats.Users = len(users)

	return stats, nil
}
