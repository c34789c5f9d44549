package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hortechia/hortechia-engine/pkg/auth"
	"github.com/hortechia/hortechia-engine/pkg/models"
	"github.com/hortechia/hortechia-engine/pkg/services"
)

// PlantListResponse for GET /api/plants
type PlantListResponse struct {
	Plants []*models.Plant `json:"plants"`
	Total  int             `json:"total"`
}

// PlantHandler handles plant catalog HTTP requests.
type PlantHandler struct {
	plants services.PlantService
	logger *zap.Logger
}

// NewPlantHandler creates a new plant handler.
func NewPlantHandler(plants services.PlantService, logger *zap.Logger) *PlantHandler {
	return &PlantHandler{
		plants: plants,
		logger: logger,
	}
}

// RegisterRoutes registers the plant handler's routes on the given mux.
func (h *PlantHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/plants", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("GET /api/plants/by-difficulty", authMiddleware.RequireAuth(h.ByDifficulty))
	mux.HandleFunc("GET /api/plants/{pid}", authMiddleware.RequireAuth(h.Get))
}

// List handles GET /api/plants
func (h *PlantHandler) List(w http.ResponseWriter, r *http.Request) {
	plants, err := h.plants.List(r.Context())
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	response := PlantListResponse{
		Plants: plants,
		Total:  len(plants),
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/plants/{pid}
func (h *PlantHandler) Get(w http.ResponseWriter, r *http.Request) {
	plantID, ok := ParsePlantID(w, r, h.logger)
	if !ok {
		return
	}

	plant, err := h.plants.Get(r.Context(), plantID)
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: plant}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ByDifficulty handles GET /api/plants/by-difficulty?level=
func (h *PlantHandler) ByDifficulty(w http.ResponseWriter, r *http.Request) {
	level := r.URL.Query().Get("level")

	plants, err := h.plants.GetByDifficulty(r.Context(), level)
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	response := PlantListResponse{
		Plants: plants,
		Total:  len(plants),
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
