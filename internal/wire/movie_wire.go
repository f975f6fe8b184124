package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/", movieHandler.GetMovies)                        // ?q= searches titles
		r.Get("/popular", movieHandler.GetPopularMovies)          // ?limit=
		r.Get("/{id}/showtimes", movieHandler.GetMovieShowtimes)  // by start time
		r.Get("/{id}/prices", movieHandler.CompareShowtimePrices) // cheapest first
	})
}
