package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hortechia/hortechia-engine/pkg/apperrors"
	"github.com/hortechia/hortechia-engine/pkg/audit"
	"github.com/hortechia/hortechia-engine/pkg/models"
	"github.com/hortechia/hortechia-engine/pkg/repositories"
	"github.com/hortechia/hortechia-engine/pkg/validation"
)

// CultivationPlanService tracks plants being grown in a user's gardens.
// Plans are scoped through garden ownership; plans in other users' gardens
// are reported as absent.
type CultivationPlanService interface {
	Create(ctx context.Context, userID uuid.UUID, plan *models.CultivationPlan) (*models.CultivationPlan, error)
	Get(ctx context.Context, userID, planID uuid.UUID) (*models.CultivationPlan, error)
	ListByGarden(ctx context.Context, userID, gardenID uuid.UUID) ([]*models.CultivationPlan, error)
}

type cultivationPlanService struct {
	plans   repositories.CultivationPlanRepository
	gardens repositories.GardenRepository
	plants  repositories.PlantRepository
	auditor *audit.SecurityAuditor
	logger  *zap.Logger
}

// NewCultivationPlanService creates the cultivation plan service.
func NewCultivationPlanService(
	plans repositories.CultivationPlanRepository,
	gardens repositories.GardenRepository,
	plants repositories.PlantRepository,
	logger *zap.Logger,
) CultivationPlanService {
	return &cultivationPlanService{
		plans:   plans,
		gardens: gardens,
		plants:  plants,
		auditor: audit.NewSecurityAuditor(logger),
		logger:  logger.Named("cultivation-plan-service"),
	}
}

// ownedGarden loads a garden and hides gardens owned by other users.
func (s *cultivationPlanService) ownedGarden(ctx context.Context, userID, gardenID uuid.UUID) (*models.Garden, error) {
	garden, err := s.gardens.GetByID(ctx, gardenID)
	if err != nil {
		return nil, fmt.Errorf("get garden: %w", err)
	}
	if garden.OwnerID != userID {
		return nil, fmt.Errorf("garden %s: %w", gardenID, apperrors.ErrNotFound)
	}
	return garden, nil
}

func (s *cultivationPlanService) Create(ctx context.Context, userID uuid.UUID, plan *models.CultivationPlan) (*models.CultivationPlan, error) {
	if plan.Status != "" && !models.ValidPlanStatus(plan.Status) {
		return nil, fmt.Errorf("unknown plan status %q: %w", plan.Status, apperrors.ErrValidation)
	}
	if plan.PlantingDate.IsZero() {
		return nil, fmt.Errorf("planting_date is required: %w", apperrors.ErrValidation)
	}
	if err := validation.ScreenFreeText("notes", plan.Notes); err != nil {
		var injErr *validation.InjectionError
		if errors.As(err, &injErr) {
			s.auditor.LogInjectionAttempt(ctx, injErr)
		}
		return nil, err
	}

	if _, err := s.ownedGarden(ctx, userID, plan.GardenID); err != nil {
		return nil, err
	}

	plant, err := s.plants.GetByID(ctx, plan.PlantID)
	if err != nil {
		return nil, fmt.Errorf("get plant: %w", err)
	}
	if plan.ExpectedHarvestDate.IsZero() {
		plan.ExpectedHarvestDate = plan.PlantingDate.AddDate(0, 0, plant.HarvestTimeDays)
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("create cultivation plan: %w", err)
	}

	s.logger.Info("Cultivation plan created",
		zap.String("plan_id", plan.ID.String()),
		zap.String("garden_id", plan.GardenID.String()),
		zap.String("plant_id", plan.PlantID.String()))

	return plan, nil
}

func (s *cultivationPlanService) Get(ctx context.Context, userID, planID uuid.UUID) (*models.CultivationPlan, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("get cultivation plan: %w", err)
	}
	if _, err := s.ownedGarden(ctx, userID, plan.GardenID); err != nil {
		return nil, fmt.Errorf("cultivation plan %s: %w", planID, apperrors.ErrNotFound)
	}
	return plan, nil
}

func (s *cultivationPlanService) ListByGarden(ctx context.Context, userID, gardenID uuid.UUID) ([]*models.CultivationPlan, error) {
	if _, err := s.ownedGarden(ctx, userID, gardenID); err != nil {
		return nil, err
	}

	plans, err := s.plans.GetByGarden(ctx, gardenID)
	if err != nil {
		return nil, fmt.Errorf("list cultivation plans: %w", err)
	}
	return plans, nil
}

// Ensure cultivationPlanService implements CultivationPlanService at compile time.
var _ CultivationPlanService = (*cultivationPlanService)(nil)
