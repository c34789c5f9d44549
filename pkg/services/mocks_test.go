package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hortechia/hortechia-engine/pkg/apperrors"
	"github.com/hortechia/hortechia-engine/pkg/models"
)

// mockUserRepository implements repositories.UserRepository.
type mockUserRepository struct {
	users map[uuid.UUID]*models.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockUserRepository) GetByID(_ context.Context, userID uuid.UUID) (*models.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return user, nil
}

// mockGardenRepository implements repositories.GardenRepository.
type mockGardenRepository struct {
	gardens map[uuid.UUID]*models.Garden
}

func newMockGardenRepository() *mockGardenRepository {
	return &mockGardenRepository{gardens: make(map[uuid.UUID]*models.Garden)}
}

func (m *mockGardenRepository) Create(_ context.Context, garden *models.Garden) error {
	if garden.ID == uuid.Nil {
		garden.ID = uuid.New()
	}
	m.gardens[garden.ID] = garden
	return nil
}

func (m *mockGardenRepository) GetByID(_ context.Context, gardenID uuid.UUID) (*models.Garden, error) {
	garden, ok := m.gardens[gardenID]
	if !ok {
		return nil, fmt.Errorf("garden %s: %w", gardenID, apperrors.ErrNotFound)
	}
	return garden, nil
}

func (m *mockGardenRepository) GetByOwner(_ context.Context, ownerID uuid.UUID) ([]*models.Garden, error) {
	var out []*models.Garden
	for _, g := range m.gardens {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockGardenRepository) Update(_ context.Context, garden *models.Garden) error {
	if _, ok := m.gardens[garden.ID]; !ok {
		return fmt.Errorf("garden %s: %w", garden.ID, apperrors.ErrNotFound)
	}
	m.gardens[garden.ID] = garden
	return nil
}

func (m *mockGardenRepository) Delete(_ context.Context, gardenID uuid.UUID) error {
	if _, ok := m.gardens[gardenID]; !ok {
		return fmt.Errorf("garden %s: %w", gardenID, apperrors.ErrNotFound)
	}
	delete(m.gardens, gardenID)
	return nil
}

// mockPlantRepository implements repositories.PlantRepository.
type mockPlantRepository struct {
	plants []*models.Plant
}

func (m *mockPlantRepository) List(_ context.Context) ([]*models.Plant, error) {
	return m.plants, nil
}

func (m *mockPlantRepository) GetByID(_ context.Context, plantID uuid.UUID) (*models.Plant, error) {
	for _, p := range m.plants {
		if p.ID == plantID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("plant %s: %w", plantID, apperrors.ErrNotFound)
}

func (m *mockPlantRepository) GetByDifficulty(_ context.Context, difficulties []string) ([]*models.Plant, error) {
	allowed := make(map[string]bool, len(difficulties))
	for _, d := range difficulties {
		allowed[d] = true
	}
	var out []*models.Plant
	for _, p := range m.plants {
		if allowed[p.Difficulty] {
			out = append(out, p)
		}
	}
	return out, nil
}

// mockRecommendationRepository implements repositories.RecommendationRepository.
type mockRecommendationRepository struct {
	recs    map[uuid.UUID]*models.Recommendation
	created []*models.Recommendation
}

func newMockRecommendationRepository() *mockRecommendationRepository {
	return &mockRecommendationRepository{recs: make(map[uuid.UUID]*models.Recommendation)}
}

func (m *mockRecommendationRepository) Create(_ context.Context, rec *models.Recommendation) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Status == "" {
		rec.Status = models.StatusPending
	}
	m.recs[rec.ID] = rec
	m.created = append(m.created, rec)
	return nil
}

func (m *mockRecommendationRepository) GetByID(_ context.Context, recID uuid.UUID) (*models.Recommendation, error) {
	rec, ok := m.recs[recID]
	if !ok {
		return nil, fmt.Errorf("recommendation %s: %w", recID, apperrors.ErrNotFound)
	}
	return rec, nil
}

func (m *mockRecommendationRepository) GetByUser(_ context.Context, userID uuid.UUID, status string) ([]*models.Recommendation, error) {
	var out []*models.Recommendation
	for _, rec := range m.recs {
		if rec.UserID != userID {
			continue
		}
		if status != "" && rec.Status != status {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (m *mockRecommendationRepository) UpdateStatus(_ context.Context, recID uuid.UUID, newStatus string) (*models.Recommendation, error) {
	rec, ok := m.recs[recID]
	if !ok {
		return nil, fmt.Errorf("recommendation %s: %w", recID, apperrors.ErrNotFound)
	}
	if rec.Status != models.StatusPending {
		return nil, fmt.Errorf("recommendation %s is %s: %w", recID, rec.Status, apperrors.ErrInvalidTransition)
	}
	rec.Status = newStatus
	if newStatus == models.StatusApplied {
		now := time.Now()
		rec.AppliedAt = &now
	}
	return rec, nil
}

// mockCultivationPlanRepository implements repositories.CultivationPlanRepository.
type mockCultivationPlanRepository struct {
	plans map[uuid.UUID]*models.CultivationPlan
}

func newMockCultivationPlanRepository() *mockCultivationPlanRepository {
	return &mockCultivationPlanRepository{plans: make(map[uuid.UUID]*models.CultivationPlan)}
}

func (m *mockCultivationPlanRepository) Create(_ context.Context, plan *models.CultivationPlan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	if plan.Status == "" {
		plan.Status = models.PlanStatusPlanned
	}
	m.plans[plan.ID] = plan
	return nil
}

func (m *mockCultivationPlanRepository) GetByID(_ context.Context, planID uuid.UUID) (*models.CultivationPlan, error) {
	plan, ok := m.plans[planID]
	if !ok {
		return nil, fmt.Errorf("cultivation plan %s: %w", planID, apperrors.ErrNotFound)
	}
	return plan, nil
}

func (m *mockCultivationPlanRepository) GetByGarden(_ context.Context, gardenID uuid.UUID) ([]*models.CultivationPlan, error) {
	var out []*models.CultivationPlan
	for _, plan := range m.plans {
		if plan.GardenID == gardenID {
			out = append(out, plan)
		}
	}
	return out, nil
}

// mockFeedbackRepository implements repositories.FeedbackRepository.
type mockFeedbackRepository struct {
	feedback []*models.Feedback
}

func (m *mockFeedbackRepository) Create(_ context.Context, fb *models.Feedback) error {
	if fb.ID == uuid.Nil {
		fb.ID = uuid.New()
	}
	m.feedback = append(m.feedback, fb)
	return nil
}

func (m *mockFeedbackRepository) GetByRecommendation(_ context.Context, recID uuid.UUID) ([]*models.Feedback, error) {
	var out []*models.Feedback
	for _, fb := range m.feedback {
		if fb.RecommendationID == recID {
			out = append(out, fb)
		}
	}
	return out, nil
}
