package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// PopularityRepository counts paid bookings per movie.
type PopularityRepository interface {
	Increment(ctx context.Context, movieID string) (int, error)
	Count(ctx context.Context, movieID string) (int, error)
	All(ctx context.Context) (map[string]int, error)
}

type popularityRepository struct {
	mu     sync.Mutex
	counts map[string]int
	log    *zap.Logger
}

func NewPopularityRepository(log *zap.Logger) PopularityRepository {
	return &popularityRepository{
		counts: make(map[string]int),
		log:    log.With(zap.String("repository", "popularity")),
	}
}

func (r *popularityRepository) Increment(ctx context.Context, movieID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counts[movieID]++
	return r.counts[movieID], nil
}

func (r *popularityRepository) Count(ctx context.Context, movieID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[movieID], nil
}

func (r *popularityRepository) All(ctx context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out, nil
}
