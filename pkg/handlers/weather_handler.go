package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hortechia/hortechia-engine/pkg/auth"
	"github.com/hortechia/hortechia-engine/pkg/services"
)

// WeatherHandler handles weather advisory HTTP requests.
type WeatherHandler struct {
	weather services.WeatherService
	logger  *zap.Logger
}

// NewWeatherHandler creates a new weather handler.
func NewWeatherHandler(weather services.WeatherService, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		weather: weather,
		logger:  logger,
	}
}

// RegisterRoutes registers the weather handler's routes on the given mux.
func (h *WeatherHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/weather", authMiddleware.RequireAuth(h.Report))
}

// Report handles GET /api/weather?location=
func (h *WeatherHandler) Report(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "location query parameter is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	report := h.weather.Report(location)

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: report}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
