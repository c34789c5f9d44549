package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hortechia/hortechia-engine/pkg/auth"
	"github.com/hortechia/hortechia-engine/pkg/models"
	"github.com/hortechia/hortechia-engine/pkg/services"
)

// CultivationPlanRequest for POST /api/cultivation-plans
type CultivationPlanRequest struct {
	GardenID            string `json:"garden_id"`
	PlantID             string `json:"plant_id"`
	Status              string `json:"status,omitempty"`
	PlantingDate        string `json:"planting_date"`                   // YYYY-MM-DD
	ExpectedHarvestDate string `json:"expected_harvest_date,omitempty"` // YYYY-MM-DD, derived from the plant when omitted
	Notes               string `json:"notes,omitempty"`
}

// CultivationPlanListResponse for GET /api/gardens/{gid}/plans
type CultivationPlanListResponse struct {
	Plans []*models.CultivationPlan `json:"plans"`
	Total int                       `json:"total"`
}

// CultivationPlanHandler handles cultivation plan HTTP requests.
type CultivationPlanHandler struct {
	plans  services.CultivationPlanService
	logger *zap.Logger
}

// NewCultivationPlanHandler creates a new cultivation plan handler.
func NewCultivationPlanHandler(plans services.CultivationPlanService, logger *zap.Logger) *CultivationPlanHandler {
	return &CultivationPlanHandler{
		plans:  plans,
		logger: logger,
	}
}

// RegisterRoutes registers the cultivation plan handler's routes on the given mux.
func (h *CultivationPlanHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/cultivation-plans", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("GET /api/cultivation-plans/{cpid}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("GET /api/gardens/{gid}/plans", authMiddleware.RequireAuth(h.ListByGarden))
}

func (r *CultivationPlanRequest) toModel() (*models.CultivationPlan, string) {
	gardenID, err := uuid.Parse(r.GardenID)
	if err != nil {
		return nil, "garden_id must be a valid UUID"
	}
	plantID, err := uuid.Parse(r.PlantID)
	if err != nil {
		return nil, "plant_id must be a valid UUID"
	}
	plantingDate, err := time.Parse("2006-01-02", r.PlantingDate)
	if err != nil {
		return nil, "planting_date must be YYYY-MM-DD"
	}

	plan := &models.CultivationPlan{
		GardenID:     gardenID,
		PlantID:      plantID,
		Status:       r.Status,
		PlantingDate: plantingDate,
		Notes:        r.Notes,
	}
	if r.ExpectedHarvestDate != "" {
		expected, err := time.Parse("2006-01-02", r.ExpectedHarvestDate)
		if err != nil {
			return nil, "expected_harvest_date must be YYYY-MM-DD"
		}
		plan.ExpectedHarvestDate = expected
	}
	return plan, ""
}

// Create handles POST /api/cultivation-plans
func (h *CultivationPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	var req CultivationPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	plan, problem := req.toModel()
	if problem != "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", problem); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	created, err := h.plans.Create(r.Context(), userID, plan)
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: created}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/cultivation-plans/{cpid}
func (h *CultivationPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	planID, ok := ParsePlanID(w, r, h.logger)
	if !ok {
		return
	}

	plan, err := h.plans.Get(r.Context(), userID, planID)
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: plan}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByGarden handles GET /api/gardens/{gid}/plans
func (h *CultivationPlanHandler) ListByGarden(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	gardenID, ok := ParseGardenID(w, r, h.logger)
	if !ok {
		return
	}

	plans, err := h.plans.ListByGarden(r.Context(), userID, gardenID)
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	response := CultivationPlanListResponse{
		Plans: plans,
		Total: len(plans),
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
