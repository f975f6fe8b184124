package wire

import (
	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	// Every booking route acts on behalf of the forwarded caller
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.Identity(log))

		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/", bookingHandler.GetUserBookings) // ?page=&per_page=

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", bookingHandler.GetBooking)
			r.Post("/pay", bookingHandler.Pay)
			r.Post("/cancel", bookingHandler.CancelBooking)
			r.Get("/refund", bookingHandler.QuoteRefund)
			r.Post("/refund", bookingHandler.RefundBooking)
			r.Get("/tickets", bookingHandler.GetTickets)
		})
	})
}
