package adaptor

import (
	"net/http"
	"strings"

	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.CatalogService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies, with ?q= for a title search
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	var (
		movies []response.MovieResponse
		err    error
	)

	if keyword := strings.TrimSpace(r.URL.Query().Get("q")); keyword != "" {
		movies, err = h.service.SearchMovies(r.Context(), keyword)
	} else {
		movies, err = h.service.ListMovies(r.Context())
	}
	if err != nil {
		handleServiceError(h.log, w, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetPopularMovies handles GET /api/movies/popular?limit=
func (h *MovieHandler) GetPopularMovies(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 5)

	movies, err := h.service.PopularMovies(r.Context(), limit)
	if err != nil {
		handleServiceError(h.log, w, err, "get popular movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMovieShowtimes handles GET /api/movies/{id}/showtimes
func (h *MovieHandler) GetMovieShowtimes(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	showtimes, err := h.service.GetShowtimes(r.Context(), movieID)
	if err != nil {
		handleServiceError(h.log, w, err, "get movie showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// CompareShowtimePrices handles GET /api/movies/{id}/prices, cheapest first
func (h *MovieHandler) CompareShowtimePrices(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	showtimes, err := h.service.CompareShowtimePrices(r.Context(), movieID)
	if err != nil {
		handleServiceError(h.log, w, err, "compare showtime prices")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}
