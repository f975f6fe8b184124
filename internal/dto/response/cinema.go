package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/inventory"
)

type TheaterResponse struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Area string  `json:"area,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type NearestTheaterResponse struct {
	TheaterResponse
	Distance float64 `json:"distance"`
}

type ShowtimeResponse struct {
	ID          string    `json:"id"`
	MovieID     string    `json:"movie_id"`
	MovieTitle  string    `json:"movie_title,omitempty"`
	TheaterID   string    `json:"theater_id"`
	TheaterName string    `json:"theater_name,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	BasePrice   int       `json:"base_price"`
}

type SeatMapResponse struct {
	ShowtimeID string                  `json:"showtime_id"`
	Rows       int                     `json:"rows"`
	Cols       int                     `json:"cols"`
	Available  int                     `json:"available"`
	Seats      [][]inventory.SeatState `json:"seats"`
}

type SeatListResponse struct {
	ShowtimeID string   `json:"showtime_id"`
	Seats      []string `json:"seats"`
}

// Helper converters
func TheaterToResponse(t *entity.Theater) TheaterResponse {
	return TheaterResponse{
		ID:   t.ID,
		Name: t.Name,
		Area: t.Area,
		X:    t.X,
		Y:    t.Y,
	}
}

func ShowtimeToResponse(s *entity.Showtime, movie *entity.Movie, theater *entity.Theater) ShowtimeResponse {
	resp := ShowtimeResponse{
		ID:        s.ID,
		MovieID:   s.MovieID,
		TheaterID: s.TheaterID,
		StartsAt:  s.StartsAt,
		BasePrice: s.BasePrice,
	}
	if movie != nil {
		resp.MovieTitle = movie.Title
	}
	if theater != nil {
		resp.TheaterName = theater.Name
	}
	return resp
}
