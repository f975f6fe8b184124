package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"go.uber.org/zap"
)

// LoadCatalog reads movies, theaters and showtimes from postgres once at
// startup. The result is served from memory by NewCatalogRepository.
func LoadCatalog(ctx context.Context, db database.PgxIface, log *zap.Logger) (entity.Catalog, error) {
	log = log.With(zap.String("repository", "catalog_pg"))

	var catalog entity.Catalog
	var err error

	if catalog.Movies, err = loadMovies(ctx, db, log); err != nil {
		return entity.Catalog{}, err
	}
	if catalog.Theaters, err = loadTheaters(ctx, db, log); err != nil {
		return entity.Catalog{}, err
	}
	if catalog.Showtimes, err = loadShowtimes(ctx, db, log); err != nil {
		return entity.Catalog{}, err
	}

	log.Info("Catalog loaded from database",
		zap.Int("movies", len(catalog.Movies)),
		zap.Int("theaters", len(catalog.Theaters)),
		zap.Int("showtimes", len(catalog.Showtimes)),
	)
	return catalog, nil
}

func loadMovies(ctx context.Context, db database.PgxIface, log *zap.Logger) ([]entity.Movie, error) {
	query := `
		SELECT id, title, rating, rated
		FROM movies
		ORDER BY id
	`

	rows, err := db.Query(ctx, query)
	if err != nil {
		log.Error("Failed to query movies", zap.Error(err))
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var movies []entity.Movie
	for rows.Next() {
		var m entity.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Rating, &m.Rated); err != nil {
			log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}

func loadTheaters(ctx context.Context, db database.PgxIface, log *zap.Logger) ([]entity.Theater, error) {
	query := `
		SELECT id, name, area, x, y, seat_rows, seat_cols
		FROM theaters
		ORDER BY id
	`

	rows, err := db.Query(ctx, query)
	if err != nil {
		log.Error("Failed to query theaters", zap.Error(err))
		return nil, fmt.Errorf("query theaters: %w", err)
	}
	defer rows.Close()

	var theaters []entity.Theater
	for rows.Next() {
		var t entity.Theater
		if err := rows.Scan(&t.ID, &t.Name, &t.Area, &t.X, &t.Y, &t.SeatRows, &t.SeatCols); err != nil {
			log.Error("Failed to scan theater row", zap.Error(err))
			return nil, fmt.Errorf("scan theater: %w", err)
		}
		theaters = append(theaters, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate theaters: %w", err)
	}
	return theaters, nil
}

func loadShowtimes(ctx context.Context, db database.PgxIface, log *zap.Logger) ([]entity.Showtime, error) {
	query := `
		SELECT id, movie_id, theater_id, starts_at, base_price
		FROM showtimes
		ORDER BY starts_at
	`

	rows, err := db.Query(ctx, query)
	if err != nil {
		log.Error("Failed to query showtimes", zap.Error(err))
		return nil, fmt.Errorf("query showtimes: %w", err)
	}
	defer rows.Close()

	var showtimes []entity.Showtime
	for rows.Next() {
		var s entity.Showtime
		if err := rows.Scan(&s.ID, &s.MovieID, &s.TheaterID, &s.StartsAt, &s.BasePrice); err != nil {
			log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime: %w", err)
		}
		showtimes = append(showtimes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate showtimes: %w", err)
	}
	return showtimes, nil
}
