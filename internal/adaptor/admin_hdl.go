package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// GetBookings handles GET /api/admin/bookings?status=&showtime_id=&page=&per_page=
func (h *AdminHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.AdminBookingQuery{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 20),
		},
		Status:     query.Get("status"),
		ShowtimeID: query.Get("showtime_id"),
	}

	bookings, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list all bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetSeatStock handles GET /api/admin/stock
func (h *AdminHandler) GetSeatStock(w http.ResponseWriter, r *http.Request) {
	stock, err := h.service.SeatStock(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get seat stock")
		return
	}

	utils.ResponseSuccess(w, "success", stock)
}

// GetStats handles GET /api/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get booking stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}
