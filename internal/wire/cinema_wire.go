package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCinema(r chi.Router, cinemaHandler *adaptor.CinemaHandler) {
	// Theaters
	r.Get("/api/theaters", cinemaHandler.GetTheaters)
	r.Get("/api/theaters/nearest", cinemaHandler.GetNearestTheater) // ?x=&y=

	// Showtimes and seats
	r.Route("/api/showtimes", func(r chi.Router) {
		r.Get("/", cinemaHandler.GetShowtimes) // ?movie_id=
		r.Get("/{id}", cinemaHandler.GetShowtime)
		r.Get("/{id}/seats", cinemaHandler.GetSeatMap)
		r.Get("/{id}/seats/available", cinemaHandler.GetAvailableSeats) // ?limit=
		r.Get("/{id}/seats/auto", cinemaHandler.AutoSelectSeats)        // ?quantity=
	})
}
