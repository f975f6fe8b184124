package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cinema-ticketing/internal/data/entity"

	"go.uber.org/zap"
)

// CatalogRepository serves the read-only movie, theater and showtime data
// supplied at startup.
type CatalogRepository interface {
	FindMovie(ctx context.Context, id string) (*entity.Movie, error)
	Movies(ctx context.Context) ([]*entity.Movie, error)
	SearchMovies(ctx context.Context, keyword string) ([]*entity.Movie, error)

	FindTheater(ctx context.Context, id string) (*entity.Theater, error)
	Theaters(ctx context.Context) ([]*entity.Theater, error)

	FindShowtime(ctx context.Context, id string) (*entity.Showtime, error)
	Showtimes(ctx context.Context) ([]*entity.Showtime, error)
	ShowtimesByMovie(ctx context.Context, movieID string) ([]*entity.Showtime, error)
}

type catalogRepository struct {
	movies    map[string]entity.Movie
	theaters  map[string]entity.Theater
	showtimes map[string]entity.Showtime

	movieOrder    []string
	theaterOrder  []string
	showtimeOrder []string

	log *zap.Logger
}

// NewCatalogRepository indexes catalog. Duplicate ids and showtimes referring
// to unknown movies or theaters are rejected.
func NewCatalogRepository(catalog entity.Catalog, log *zap.Logger) (CatalogRepository, error) {
	r := &catalogRepository{
		movies:    make(map[string]entity.Movie, len(catalog.Movies)),
		theaters:  make(map[string]entity.Theater, len(catalog.Theaters)),
		showtimes: make(map[string]entity.Showtime, len(catalog.Showtimes)),
		log:       log.With(zap.String("repository", "catalog")),
	}

	for _, m := range catalog.Movies {
		if m.ID == "" {
			return nil, fmt.Errorf("movie %q has no id", m.Title)
		}
		if _, dup := r.movies[m.ID]; dup {
			return nil, fmt.Errorf("duplicate movie id %s", m.ID)
		}
		r.movies[m.ID] = m
		r.movieOrder = append(r.movieOrder, m.ID)
	}
	for _, t := range catalog.Theaters {
		if t.ID == "" {
			return nil, fmt.Errorf("theater %q has no id", t.Name)
		}
		if _, dup := r.theaters[t.ID]; dup {
			return nil, fmt.Errorf("duplicate theater id %s", t.ID)
		}
		r.theaters[t.ID] = t
		r.theaterOrder = append(r.theaterOrder, t.ID)
	}
	for _, s := range catalog.Showtimes {
		if s.ID == "" {
			return nil, fmt.Errorf("showtime for movie %s has no id", s.MovieID)
		}
		if _, dup := r.showtimes[s.ID]; dup {
			return nil, fmt.Errorf("duplicate showtime id %s", s.ID)
		}
		if _, ok := r.movies[s.MovieID]; !ok {
			return nil, fmt.Errorf("showtime %s references unknown movie %s", s.ID, s.MovieID)
		}
		if _, ok := r.theaters[s.TheaterID]; !ok {
			return nil, fmt.Errorf("showtime %s references unknown theater %s", s.ID, s.TheaterID)
		}
		if s.BasePrice < 0 {
			return nil, fmt.Errorf("showtime %s has negative base price", s.ID)
		}
		r.showtimes[s.ID] = s
		r.showtimeOrder = append(r.showtimeOrder, s.ID)
	}

	r.log.Info("Catalog indexed",
		zap.Int("movies", len(r.movies)),
		zap.Int("theaters", len(r.theaters)),
		zap.Int("showtimes", len(r.showtimes)),
	)
	return r, nil
}

func (r *catalogRepository) FindMovie(ctx context.Context, id string) (*entity.Movie, error) {
	m, ok := r.movies[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *catalogRepository) Movies(ctx context.Context) ([]*entity.Movie, error) {
	out := make([]*entity.Movie, 0, len(r.movieOrder))
	for _, id := range r.movieOrder {
		m := r.movies[id]
		out = append(out, &m)
	}
	return out, nil
}

// SearchMovies matches keyword case-insensitively against titles. An empty
// keyword matches everything.
func (r *catalogRepository) SearchMovies(ctx context.Context, keyword string) ([]*entity.Movie, error) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	out := make([]*entity.Movie, 0)
	for _, id := range r.movieOrder {
		m := r.movies[id]
		if strings.Contains(strings.ToLower(m.Title), kw) {
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *catalogRepository) FindTheater(ctx context.Context, id string) (*entity.Theater, error) {
	t, ok := r.theaters[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *catalogRepository) Theaters(ctx context.Context) ([]*entity.Theater, error) {
	out := make([]*entity.Theater, 0, len(r.theaterOrder))
	for _, id := range r.theaterOrder {
		t := r.theaters[id]
		out = append(out, &t)
	}
	return out, nil
}

func (r *catalogRepository) FindShowtime(ctx context.Context, id string) (*entity.Showtime, error) {
	s, ok := r.showtimes[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *catalogRepository) Showtimes(ctx context.Context) ([]*entity.Showtime, error) {
	return r.showtimesWhere(func(*entity.Showtime) bool { return true }), nil
}

func (r *catalogRepository) ShowtimesByMovie(ctx context.Context, movieID string) ([]*entity.Showtime, error) {
	return r.showtimesWhere(func(s *entity.Showtime) bool { return s.MovieID == movieID }), nil
}

// showtimesWhere returns matches ordered by start time.
func (r *catalogRepository) showtimesWhere(keep func(*entity.Showtime) bool) []*entity.Showtime {
	out := make([]*entity.Showtime, 0)
	for _, id := range r.showtimeOrder {
		s := r.showtimes[id]
		if keep(&s) {
			out = append(out, &s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out
}
