package usecase

import (
	"context"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/response"

	"go.uber.org/zap"
)

// lookup resolves a catalog row that only decorates a response. A failed
// lookup is logged and reported as nil.
func lookup[T any](ctx context.Context, log *zap.Logger, kind, id string, find func(context.Context, string) (*T, error)) *T {
	v, err := find(ctx, id)
	if err != nil {
		log.Warn("Catalog lookup failed",
			zap.Error(err),
			zap.String("kind", kind),
			zap.String("id", id),
		)
		return nil
	}
	return v
}

func describeShowtime(ctx context.Context, catalog repository.CatalogRepository, st *entity.Showtime, log *zap.Logger) response.ShowtimeResponse {
	movie := lookup(ctx, log, "movie", st.MovieID, catalog.FindMovie)
	theater := lookup(ctx, log, "theater", st.TheaterID, catalog.FindTheater)
	return response.ShowtimeToResponse(st, movie, theater)
}

func describeBooking(ctx context.Context, catalog repository.CatalogRepository, booking *entity.Booking, log *zap.Logger) response.BookingResponse {
	showtime := lookup(ctx, log, "showtime", booking.ShowtimeID, catalog.FindShowtime)

	var movie *entity.Movie
	var theater *entity.Theater
	if showtime != nil {
		movie = lookup(ctx, log, "movie", showtime.MovieID, catalog.FindMovie)
		theater = lookup(ctx, log, "theater", showtime.TheaterID, catalog.FindTheater)
	}
	return response.BookingToResponse(booking, showtime, movie, theater)
}
