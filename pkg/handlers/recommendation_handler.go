package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hortechia/hortechia-engine/pkg/auth"
	"github.com/hortechia/hortechia-engine/pkg/models"
	"github.com/hortechia/hortechia-engine/pkg/services"
)

// GenerateRequest for POST /api/recommendations/generate
type GenerateRequest struct {
	GardenID string `json:"garden_id"`
}

// UpdateStatusRequest for POST /api/recommendations/{rid}/status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// SubmitFeedbackRequest for POST /api/recommendations/{rid}/feedback
type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// RecommendationListResponse for GET /api/recommendations
type RecommendationListResponse struct {
	Recommendations []*models.Recommendation `json:"recommendations"`
	Total           int                      `json:"total"`
}

// RecommendationHandler handles recommendation HTTP requests.
type RecommendationHandler struct {
	recommendations services.RecommendationService
	feedback        services.FeedbackService
	logger          *zap.Logger
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(
	recommendations services.RecommendationService,
	feedback services.FeedbackService,
	logger *zap.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		feedback:        feedback,
		logger:          logger,
	}
}

// RegisterRoutes registers the recommendation handler's routes on the given mux.
// rateLimit guards the generation endpoint only; reads and transitions are
// not quota-bound.
func (h *RecommendationHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, rateLimit func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("POST /api/recommendations/generate",
		authMiddleware.RequireAuth(rateLimit(h.Generate)))
	mux.HandleFunc("GET /api/recommendations",
		authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /api/recommendations/{rid}/status",
		authMiddleware.RequireAuth(h.UpdateStatus))
	mux.HandleFunc("POST /api/recommendations/{rid}/feedback",
		authMiddleware.RequireAuth(h.SubmitFeedback))
}

// Generate handles POST /api/recommendations/generate
func (h *RecommendationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	gardenID, err := uuid.Parse(req.GardenID)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "garden_id is required and must be a UUID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result, err := h.recommendations.Generate(r.Context(), userID, gardenID)
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/recommendations
func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	recs, err := h.recommendations.List(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	response := RecommendationListResponse{
		Recommendations: recs,
		Total:           len(recs),
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateStatus handles POST /api/recommendations/{rid}/status
func (h *RecommendationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	recID, ok := ParseRecommendationID(w, r, h.logger)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	updated, err := h.recommendations.UpdateStatus(r.Context(), userID, recID, req.Status)
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: updated}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// SubmitFeedback handles POST /api/recommendations/{rid}/feedback
func (h *RecommendationHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	recID, ok := ParseRecommendationID(w, r, h.logger)
	if !ok {
		return
	}

	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	fb, err := h.feedback.Submit(r.Context(), userID, recID, req.Rating, req.Comment)
	if err != nil {
		RespondServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: fb}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
