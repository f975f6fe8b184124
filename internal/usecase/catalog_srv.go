package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/inventory"

	"go.uber.org/zap"
)

type CatalogService interface {
	// Movies
	ListMovies(ctx context.Context) ([]response.MovieResponse, error)
	SearchMovies(ctx context.Context, keyword string) ([]response.MovieResponse, error)
	PopularMovies(ctx context.Context, limit int) ([]response.PopularMovieResponse, error)

	// Theaters
	ListTheaters(ctx context.Context) ([]response.TheaterResponse, error)
	NearestTheater(ctx context.Context, x, y float64) (*response.NearestTheaterResponse, error)

	// Showtimes
	GetShowtimes(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error)
	GetShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error)
	CompareShowtimePrices(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error)

	// Seats
	SeatMap(ctx context.Context, showtimeID string) (*response.SeatMapResponse, error)
	AvailableSeats(ctx context.Context, showtimeID string, limit int) (*response.SeatListResponse, error)
	AutoSelectSeats(ctx context.Context, showtimeID string, quantity int) (*response.SeatListResponse, error)
}

type catalogService struct {
	repo      *repository.Repository
	inventory *inventory.Inventory
	log       *zap.Logger
}

func NewCatalogService(repo *repository.Repository, inv *inventory.Inventory, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:      repo,
		inventory: inv,
		log:       log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Catalog.Movies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return toMovieResponses(movies), nil
}

func (s *catalogService) SearchMovies(ctx context.Context, keyword string) ([]response.MovieResponse, error) {
	movies, err := s.repo.Catalog.SearchMovies(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	s.log.Debug("Movies searched", zap.String("keyword", keyword), zap.Int("count", len(movies)))
	return toMovieResponses(movies), nil
}

// PopularMovies ranks movies by paid bookings, then by rating.
func (s *catalogService) PopularMovies(ctx context.Context, limit int) ([]response.PopularMovieResponse, error) {
	movies, err := s.repo.Catalog.Movies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	counts, err := s.repo.Popularity.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load popularity: %w", err)
	}

	out := make([]response.PopularMovieResponse, len(movies))
	for i, m := range movies {
		out[i] = response.PopularMovieResponse{
			MovieResponse: response.MovieToResponse(m),
			PaidBookings:  counts[m.ID],
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PaidBookings != out[j].PaidBookings {
			return out[i].PaidBookings > out[j].PaidBookings
		}
		return out[i].Rating > out[j].Rating
	})

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *catalogService) ListTheaters(ctx context.Context) ([]response.TheaterResponse, error) {
	theaters, err := s.repo.Catalog.Theaters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list theaters: %w", err)
	}

	out := make([]response.TheaterResponse, len(theaters))
	for i, t := range theaters {
		out[i] = response.TheaterToResponse(t)
	}
	return out, nil
}

// NearestTheater picks the theater closest to (x, y); ties keep catalog order.
func (s *catalogService) NearestTheater(ctx context.Context, x, y float64) (*response.NearestTheaterResponse, error) {
	theaters, err := s.repo.Catalog.Theaters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list theaters: %w", err)
	}
	if len(theaters) == 0 {
		return nil, fmt.Errorf("%w: no theaters", ErrNotFound)
	}

	best := theaters[0]
	bestDist := math.Hypot(best.X-x, best.Y-y)
	for _, t := range theaters[1:] {
		if d := math.Hypot(t.X-x, t.Y-y); d < bestDist {
			best, bestDist = t, d
		}
	}

	return &response.NearestTheaterResponse{
		TheaterResponse: response.TheaterToResponse(best),
		Distance:        bestDist,
	}, nil
}

// GetShowtimes lists showtimes by start time; an empty movieID lists all.
func (s *catalogService) GetShowtimes(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error) {
	var showtimes []*entity.Showtime
	var err error

	if movieID == "" {
		showtimes, err = s.repo.Catalog.Showtimes(ctx)
	} else {
		if _, err := s.findMovie(ctx, movieID); err != nil {
			return nil, err
		}
		showtimes, err = s.repo.Catalog.ShowtimesByMovie(ctx, movieID)
	}
	if err != nil {
		return nil, fmt.Errorf("list showtimes: %w", err)
	}

	return s.toShowtimeResponses(ctx, showtimes), nil
}

func (s *catalogService) GetShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error) {
	showtime, err := findShowtime(ctx, s.repo.Catalog, showtimeID)
	if err != nil {
		return nil, err
	}

	resp := s.toShowtimeResponses(ctx, []*entity.Showtime{showtime})[0]
	return &resp, nil
}

// CompareShowtimePrices lists a movie's showtimes cheapest first.
func (s *catalogService) CompareShowtimePrices(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error) {
	out, err := s.GetShowtimes(ctx, movieID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].BasePrice < out[j].BasePrice })
	return out, nil
}

func (s *catalogService) SeatMap(ctx context.Context, showtimeID string) (*response.SeatMapResponse, error) {
	layout, err := s.inventory.Layout(showtimeID)
	if err != nil {
		return nil, inventoryError(err)
	}
	seats, err := s.inventory.Snapshot(showtimeID)
	if err != nil {
		return nil, inventoryError(err)
	}

	available := 0
	for _, row := range seats {
		for _, seat := range row {
			if seat.Available {
				available++
			}
		}
	}

	return &response.SeatMapResponse{
		ShowtimeID: showtimeID,
		Rows:       layout.Rows,
		Cols:       layout.Cols,
		Available:  available,
		Seats:      seats,
	}, nil
}

func (s *catalogService) AvailableSeats(ctx context.Context, showtimeID string, limit int) (*response.SeatListResponse, error) {
	seats, err := s.inventory.Available(showtimeID, limit)
	if err != nil {
		return nil, inventoryError(err)
	}
	return &response.SeatListResponse{ShowtimeID: showtimeID, Seats: seats}, nil
}

// AutoSelectSeats suggests seats without holding them.
func (s *catalogService) AutoSelectSeats(ctx context.Context, showtimeID string, quantity int) (*response.SeatListResponse, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if _, err := s.inventory.Layout(showtimeID); err != nil {
		return nil, inventoryError(err)
	}

	seats := s.inventory.AutoSelect(showtimeID, quantity)
	if len(seats) == 0 {
		return nil, fmt.Errorf("%w: fewer than %d free seats", ErrConflict, quantity)
	}
	return &response.SeatListResponse{ShowtimeID: showtimeID, Seats: seats}, nil
}

func (s *catalogService) findMovie(ctx context.Context, id string) (*entity.Movie, error) {
	movie, err := s.repo.Catalog.FindMovie(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("%w: movie %s", ErrNotFound, id)
	}
	return movie, nil
}

func (s *catalogService) toShowtimeResponses(ctx context.Context, showtimes []*entity.Showtime) []response.ShowtimeResponse {
	out := make([]response.ShowtimeResponse, len(showtimes))
	for i, st := range showtimes {
		out[i] = describeShowtime(ctx, s.repo.Catalog, st, s.log)
	}
	return out
}

func toMovieResponses(movies []*entity.Movie) []response.MovieResponse {
	out := make([]response.MovieResponse, len(movies))
	for i, m := range movies {
		out[i] = response.MovieToResponse(m)
	}
	return out
}
