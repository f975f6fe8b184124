package wire

import (
	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler, adminIDs []string, log *zap.Logger) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Identity(log))
		r.Use(middleware.Admin(adminIDs, log))

		r.Get("/bookings", adminHandler.GetBookings) // ?status=&showtime_id=&page=&per_page=
		r.Get("/stock", adminHandler.GetSeatStock)
		r.Get("/stats", adminHandler.GetStats)
	})
}
