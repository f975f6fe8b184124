package wire

import (
	"net/http"

	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring builds handlers over service and mounts every route. adminIDs may
// read the admin reports.
func Wiring(service *usecase.Service, adminIDs []string, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, adminIDs, logger),
	}
}

func setupRouter(handler *adaptor.Handler, adminIDs []string, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware; RequestID first so the logger sees the id
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireMovie(r, handler.Movie)
	wireCinema(r, handler.Cinema)
	wirePricing(r, handler.Pricing)
	wireBooking(r, handler.Booking, logger)
	wireAdmin(r, handler.Admin, adminIDs, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
