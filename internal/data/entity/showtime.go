package entity

import "time"

// Showtime is immutable once loaded into the catalog.
type Showtime struct {
	ID        string    `db:"id"`
	MovieID   string    `db:"movie_id"`
	TheaterID string    `db:"theater_id"`
	StartsAt  time.Time `db:"starts_at"`
	BasePrice int       `db:"base_price"`
}

// Catalog is the read-only reference data supplied at startup.
type Catalog struct {
	Movies    []Movie
	Theaters  []Theater
	Showtimes []Showtime
}
