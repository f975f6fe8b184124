package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CinemaHandler serves theaters, showtimes and their seat maps.
type CinemaHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCinemaHandler(service usecase.CatalogService, log *zap.Logger) *CinemaHandler {
	return &CinemaHandler{
		service: service,
		log:     log.With(zap.String("handler", "cinema")),
	}
}

// GetTheaters handles GET /api/theaters
func (h *CinemaHandler) GetTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := h.service.ListTheaters(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get theaters")
		return
	}

	utils.ResponseSuccess(w, "success", theaters)
}

// GetNearestTheater handles GET /api/theaters/nearest?x=&y=
func (h *CinemaHandler) GetNearestTheater(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	x, okX := utils.ParseFloat(query.Get("x"))
	y, okY := utils.ParseFloat(query.Get("y"))
	if !okX || !okY {
		utils.ResponseBadRequest(w, "Query params x and y must be numbers", nil)
		return
	}

	theater, err := h.service.NearestTheater(r.Context(), x, y)
	if err != nil {
		handleServiceError(h.log, w, err, "find nearest theater")
		return
	}

	utils.ResponseSuccess(w, "success", theater)
}

// GetShowtimes handles GET /api/showtimes, optionally filtered by ?movie_id=
func (h *CinemaHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	showtimes, err := h.service.GetShowtimes(r.Context(), r.URL.Query().Get("movie_id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// GetShowtime handles GET /api/showtimes/{id}
func (h *CinemaHandler) GetShowtime(w http.ResponseWriter, r *http.Request) {
	showtime, err := h.service.GetShowtime(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}

// GetSeatMap handles GET /api/showtimes/{id}/seats
func (h *CinemaHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	seats, err := h.service.SeatMap(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// GetAvailableSeats handles GET /api/showtimes/{id}/seats/available?limit=
func (h *CinemaHandler) GetAvailableSeats(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 0)

	seats, err := h.service.AvailableSeats(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		handleServiceError(h.log, w, err, "get available seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// AutoSelectSeats handles GET /api/showtimes/{id}/seats/auto?quantity=
func (h *CinemaHandler) AutoSelectSeats(w http.ResponseWriter, r *http.Request) {
	quantity := utils.ParseInt(r.URL.Query().Get("quantity"), 0)

	seats, err := h.service.AutoSelectSeats(r.Context(), chi.URLParam(r, "id"), quantity)
	if err != nil {
		handleServiceError(h.log, w, err, "auto select seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}
