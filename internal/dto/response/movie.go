package response

import (
	"cinema-ticketing/internal/data/entity"
)

type MovieResponse struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
	Rated  string  `json:"rated"`
}

type PopularMovieResponse struct {
	MovieResponse
	PaidBookings int `json:"paid_bookings"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:     movie.ID,
		Title:  movie.Title,
		Rating: movie.Rating,
		Rated:  movie.Rated,
	}
}
