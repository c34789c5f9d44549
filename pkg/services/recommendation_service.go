package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hortechia/hortechia-engine/pkg/apperrors"
	"github.com/hortechia/hortechia-engine/pkg/models"
	"github.com/hortechia/hortechia-engine/pkg/recommend"
	"github.com/hortechia/hortechia-engine/pkg/repositories"
)

// GeneratedRecommendation is one surfaced candidate as returned to the
// caller, carrying the persisted record's id alongside the pipeline output.
type GeneratedRecommendation struct {
	ID               uuid.UUID `json:"id"`
	PlantID          uuid.UUID `json:"plant_id"`
	PlantName        string    `json:"plant_name"`
	Confidence       float64   `json:"confidence"`
	Reasons          []string  `json:"reasons"`
	EstimatedHarvest time.Time `json:"estimated_harvest"`
}

// GenerationResult is the outcome of one generation call.
type GenerationResult struct {
	GardenName      string                    `json:"garden_name"`
	Recommendations []GeneratedRecommendation `json:"recommendations"`
	GeneratedAt     time.Time                 `json:"generated_at"`
}

// RecommendationService drives the recommendation pipeline and owns the
// lifecycle of persisted recommendation records.
type RecommendationService interface {
	// Generate runs the pipeline for one of the caller's gardens and
	// persists one pending record per surfaced candidate. A garden that
	// does not exist or is not owned by the caller yields ErrNotFound.
	Generate(ctx context.Context, userID, gardenID uuid.UUID) (*GenerationResult, error)

	// List returns the caller's recommendation records, newest first.
	// An empty status lists all lifecycle states.
	List(ctx context.Context, userID uuid.UUID, status string) ([]*models.Recommendation, error)

	// UpdateStatus transitions one of the caller's pending records to
	// applied or dismissed.
	UpdateStatus(ctx context.Context, userID, recID uuid.UUID, target string) (*models.Recommendation, error)
}

type recommendationService struct {
	users   repositories.UserRepository
	gardens repositories.GardenRepository
	plants  repositories.PlantRepository
	recs    repositories.RecommendationRepository
	engine  *recommend.Engine
	noise   recommend.Noise
	logger  *zap.Logger
}

// NewRecommendationService creates the recommendation service. The noise
// source is injected so tests can pin it; production passes
// recommend.NewUniformNoise with a time-derived seed.
func NewRecommendationService(
	users repositories.UserRepository,
	gardens repositories.GardenRepository,
	plants repositories.PlantRepository,
	recs repositories.RecommendationRepository,
	engine *recommend.Engine,
	noise recommend.Noise,
	logger *zap.Logger,
) RecommendationService {
	return &recommendationService{
		users:   users,
		gardens: gardens,
		plants:  plants,
		recs:    recs,
		engine:  engine,
		noise:   noise,
		logger:  logger.Named("recommendation-service"),
	}
}

func (s *recommendationService) Generate(ctx context.Context, userID, gardenID uuid.UUID) (*GenerationResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user profile: %w", err)
	}

	garden, err := s.gardens.GetByID(ctx, gardenID)
	if err != nil {
		return nil, fmt.Errorf("load garden: %w", err)
	}
	// A garden the caller does not own is reported as absent rather than
	// forbidden, so garden ids cannot be probed.
	if garden.OwnerID != userID {
		return nil, fmt.Errorf("garden %s: %w", gardenID, apperrors.ErrNotFound)
	}

	catalog, err := s.plants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load plant catalog: %w", err)
	}
	plants := make([]models.Plant, len(catalog))
	for i, p := range catalog {
		plants[i] = *p
	}

	now := time.Now()
	scored := s.engine.Recommend(*user, *garden, plants, s.noise, now)

	result := &GenerationResult{
		GardenName:      garden.Name,
		Recommendations: make([]GeneratedRecommendation, 0, len(scored)),
		GeneratedAt:     now,
	}

	for _, item := range scored {
		rec := &models.Recommendation{
			UserID:          userID,
			Type:            models.RecommendationGeneral,
			Title:           fmt.Sprintf("Plant %s", item.Plant.Name),
			Description:     strings.Join(item.Reasons, "\n"),
			ConfidenceScore: item.Confidence,
			Status:          models.StatusPending,
		}
		if err := s.recs.Create(ctx, rec); err != nil {
			return nil, fmt.Errorf("persist recommendation: %w", err)
		}

		result.Recommendations = append(result.Recommendations, GeneratedRecommendation{
			ID:               rec.ID,
			PlantID:          item.Plant.ID,
			PlantName:        item.Plant.Name,
			Confidence:       item.Confidence,
			Reasons:          item.Reasons,
			EstimatedHarvest: item.EstimatedHarvest,
		})
	}

	s.logger.Info("Generated recommendations",
		zap.String("user_id", userID.String()),
		zap.String("garden_id", gardenID.String()),
		zap.Int("count", len(result.Recommendations)))

	return result, nil
}

func (s *recommendationService) List(ctx context.Context, userID uuid.UUID, status string) ([]*models.Recommendation, error) {
	if status != "" && status != models.StatusPending &&
		status != models.StatusApplied && status != models.StatusDismissed {
		return nil, fmt.Errorf("unknown status %q: %w", status, apperrors.ErrValidation)
	}

	recs, err := s.recs.GetByUser(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	return recs, nil
}

func (s *recommendationService) UpdateStatus(ctx context.Context, userID, recID uuid.UUID, target string) (*models.Recommendation, error) {
	if target != models.StatusApplied && target != models.StatusDismissed {
		return nil, fmt.Errorf("status must be %q or %q: %w",
			models.StatusApplied, models.StatusDismissed, apperrors.ErrValidation)
	}

	rec, err := s.recs.GetByID(ctx, recID)
	if err != nil {
		return nil, fmt.Errorf("load recommendation: %w", err)
	}
	if rec.UserID != userID {
		return nil, fmt.Errorf("recommendation %s belongs to another user: %w", recID, apperrors.ErrForbidden)
	}

	updated, err := s.recs.UpdateStatus(ctx, recID, target)
	if err != nil {
		return nil, fmt.Errorf("update recommendation status: %w", err)
	}

	s.logger.Info("Recommendation status updated",
		zap.String("recommendation_id", recID.String()),
		zap.String("status", target))

	return updated, nil
}

// Ensure recommendationService implements RecommendationService at compile time.
var _ RecommendationService = (*recommendationService)(nil)
