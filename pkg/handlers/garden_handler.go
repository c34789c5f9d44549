package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/hortechia/hortechia-engine/pkg/auth"
	"github.com/hortechia/hortechia-engine/pkg/models"
	"github.com/hortechia/hortechia-engine/pkg/services"
)

// GardenRequest for POST /api/gardens and PUT /api/gardens/{gid}
type GardenRequest struct {
	Name          string  `json:"name"`
	Location      string  `json:"location,omitempty"`
	SizeM2        float64 `json:"size_m2"`
	SoilType      string  `json:"soil_type"`
	SunExposure   string  `json:"sun_exposure"`
	HasIrrigation bool    `json:"has_irrigation"`
	Notes         string  `json:"notes,omitempty"`
}

// GardenListResponse for GET /api/gardens
type GardenListResponse struct {
	Gardens []*models.Garden `json:"gardens"`
	Total   int              `json:"total"`
}

// GardenHandler handles garden HTTP requests.
type GardenHandler struct {
	gardens services.GardenService
	logger  *zap.Logger
}

// NewGardenHandler creates a new garden handler.
func NewGardenHandler(gardens services.GardenService, logger *zap.Logger) *GardenHandler {
	return &GardenHandler{
		gardens: gardens,
		logger:  logger,
	}
}

// RegisterRoutes registers the garden handler's routes on the given mux.
func (h *GardenHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/gardens", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /api/gardens", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("GET /api/gardens/{gid}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("PUT /api/gardens/{gid}", authMiddleware.RequireAuth(h.Update))
	mux.HandleFunc("DELETE /api/gardens/{gid}", authMiddleware.RequireAuth(h.Delete))
}

func (r *GardenRequest) toModel() *models.Garden {
	return &models.Garden{
		Name:          r.Name,
		Location:      r.Location,
		SizeM2:        r.SizeM2,
		SoilType:      r.SoilType,
		SunExposure:   r.SunExposure,
		HasIrrigation: r.HasIrrigation,
		Notes:         r.Notes,
	}
}

// List handles GET /api/gardens
func (h *GardenHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	gardens, err := h.gardens.List(r.Context(), userID)
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	response := GardenListResponse{
		Gardens: gardens,
		Total:   len(gardens),
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/gardens
func (h *GardenHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	var req GardenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	created, err := h.gardens.Create(r.Context(), userID, req.toModel())
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: created}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/gardens/{gid}
func (h *GardenHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	gardenID, ok := ParseGardenID(w, r, h.logger)
	if !ok {
		return
	}

	garden, err := h.gardens.Get(r.Context(), userID, gardenID)
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: garden}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/gardens/{gid}
func (h *GardenHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	gardenID, ok := ParseGardenID(w, r, h.logger)
	if !ok {
		return
	}

	var req GardenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	garden := req.toModel()
	garden.ID = gardenID

	updated, err := h.gardens.Update(r.Context(), userID, garden)
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: updated}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/gardens/{gid}
func (h *GardenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	gardenID, ok := ParseGardenID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.gardens.Delete(r.Context(), userID, gardenID); err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Garden deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
