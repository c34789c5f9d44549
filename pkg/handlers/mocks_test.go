package handlers

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hortechia/hortechia-engine/pkg/auth"
	"github.com/hortechia/hortechia-engine/pkg/models"
	"github.com/hortechia/hortechia-engine/pkg/services"
)

// withUser injects validated claims for userID into the request context, as
// auth.Middleware.RequireAuth would leave them.
func withUser(req *http.Request, userID uuid.UUID) *http.Request {
	claims := &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()}}
	ctx := context.WithValue(req.Context(), auth.ClaimsKey, claims)
	return req.WithContext(ctx)
}

// mockRecommendationService implements services.RecommendationService.
type mockRecommendationService struct {
	generateResult *services.GenerationResult
	generateErr    error
	listResult     []*models.Recommendation
	listErr        error
	updateResult   *models.Recommendation
	updateErr      error

	lastTarget string
}

func (m *mockRecommendationService) Generate(_ context.Context, userID, gardenID uuid.UUID) (*services.GenerationResult, error) {
	return m.generateResult, m.generateErr
}

func (m *mockRecommendationService) List(_ context.Context, userID uuid.UUID, status string) ([]*models.Recommendation, error) {
	return m.listResult, m.listErr
}

func (m *mockRecommendationService) UpdateStatus(_ context.Context, userID, recID uuid.UUID, target string) (*models.Recommendation, error) {
	m.lastTarget = target
	return m.updateResult, m.updateErr
}

// mockFeedbackService implements services.FeedbackService.
type mockFeedbackService struct {
	result *models.Feedback
	err    error

	lastRating  int
	lastComment string
}

func (m *mockFeedbackService) Submit(_ context.Context, userID, recID uuid.UUID, rating int, comment string) (*models.Feedback, error) {
	m.lastRating = rating
	m.lastComment = comment
	return m.result, m.err
}

// mockGardenService implements services.GardenService.
type mockGardenService struct {
	garden  *models.Garden
	gardens []*models.Garden
	err     error
}

func (m *mockGardenService) Create(_ context.Context, ownerID uuid.UUID, garden *models.Garden) (*models.Garden, error) {
	if m.err != nil {
		return nil, m.err
	}
	garden.ID = uuid.New()
	garden.OwnerID = ownerID
	return garden, nil
}

func (m *mockGardenService) Get(_ context.Context, ownerID, gardenID uuid.UUID) (*models.Garden, error) {
	return m.garden, m.err
}

func (m *mockGardenService) List(_ context.Context, ownerID uuid.UUID) ([]*models.Garden, error) {
	return m.gardens, m.err
}

func (m *mockGardenService) Update(_ context.Context, ownerID uuid.UUID, garden *models.Garden) (*models.Garden, error) {
	return m.garden, m.err
}

func (m *mockGardenService) Delete(_ context.Context, ownerID, gardenID uuid.UUID) error {
	return m.err
}

// mockPlantService implements services.PlantService.
type mockPlantService struct {
	plant  *models.Plant
	plants []*models.Plant
	err    error
}

func (m *mockPlantService) List(_ context.Context) ([]*models.Plant, error) {
	return m.plants, m.err
}

func (m *mockPlantService) Get(_ context.Context, plantID uuid.UUID) (*models.Plant, error) {
	return m.plant, m.err
}

func (m *mockPlantService) GetByDifficulty(_ context.Context, level string) ([]*models.Plant, error) {
	return m.plants, m.err
}

// mockCultivationPlanService implements services.CultivationPlanService.
type mockCultivationPlanService struct {
	plan  *models.CultivationPlan
	plans []*models.CultivationPlan
	err   error
}

func (m *mockCultivationPlanService) Create(_ context.Context, userID uuid.UUID, plan *models.CultivationPlan) (*models.CultivationPlan, error) {
	if m.err != nil {
		return nil, m.err
	}
	plan.ID = uuid.New()
	return plan, nil
}

func (m *mockCultivationPlanService) Get(_ context.Context, userID, planID uuid.UUID) (*models.CultivationPlan, error) {
	return m.plan, m.err
}

func (m *mockCultivationPlanService) ListByGarden(_ context.Context, userID, gardenID uuid.UUID) ([]*models.CultivationPlan, error) {
	return m.plans, m.err
}
