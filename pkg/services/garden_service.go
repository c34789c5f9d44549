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

// GardenService manages a user's gardens. All operations are scoped to the
// calling user; gardens owned by other users are reported as absent.
type GardenService interface {
	Create(ctx context.Context, ownerID uuid.UUID, garden *models.Garden) (*models.Garden, error)
	Get(ctx context.Context, ownerID, gardenID uuid.UUID) (*models.Garden, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*models.Garden, error)
	Update(ctx context.Context, ownerID uuid.UUID, garden *models.Garden) (*models.Garden, error)
	Delete(ctx context.Context, ownerID, gardenID uuid.UUID) error
}

type gardenService struct {
	gardens repositories.GardenRepository
	auditor *audit.SecurityAuditor
	logger  *zap.Logger
}

// NewGardenService creates the garden service.
func NewGardenService(gardens repositories.GardenRepository, logger *zap.Logger) GardenService {
	return &gardenService{
		gardens: gardens,
		auditor: audit.NewSecurityAuditor(logger),
		logger:  logger.Named("garden-service"),
	}
}

// validate checks user-settable fields and audits injection attempts in
// the free-text notes.
func (s *gardenService) validate(ctx context.Context, garden *models.Garden) error {
	err := validateGarden(garden)
	var injErr *validation.InjectionError
	if errors.As(err, &injErr) {
		s.auditor.LogInjectionAttempt(ctx, injErr)
	}
	return err
}

// validateGarden checks the user-settable fields shared by create and update.
func validateGarden(garden *models.Garden) error {
	if garden.Name == "" {
		return fmt.Errorf("name is required: %w", apperrors.ErrValidation)
	}
	if !models.ValidSoilType(garden.SoilType) {
		return fmt.Errorf("unknown soil type %q: %w", garden.SoilType, apperrors.ErrValidation)
	}
	if !models.ValidSunExposure(garden.SunExposure) {
		return fmt.Errorf("unknown sun exposure %q: %w", garden.SunExposure, apperrors.ErrValidation)
	}
	if garden.SizeM2 < 0 {
		return fmt.Errorf("size must not be negative: %w", apperrors.ErrValidation)
	}
	if err := validation.ScreenFreeText("notes", garden.Notes); err != nil {
		return err
	}
	return nil
}

func (s *gardenService) Create(ctx context.Context, ownerID uuid.UUID, garden *models.Garden) (*models.Garden, error) {
	if err := s.validate(ctx, garden); err != nil {
		return nil, err
	}

	garden.OwnerID = ownerID
	if err := s.gardens.Create(ctx, garden); err != nil {
		return nil, fmt.Errorf("create garden: %w", err)
	}

	s.logger.Info("Garden created",
		zap.String("garden_id", garden.ID.String()),
		zap.String("owner_id", ownerID.String()))

	return garden, nil
}

func (s *gardenService) Get(ctx context.Context, ownerID, gardenID uuid.UUID) (*models.Garden, error) {
	garden, err := s.gardens.GetByID(ctx, gardenID)
	if err != nil {
		return nil, fmt.Errorf("get garden: %w", err)
	}
	if garden.OwnerID != ownerID {
		return nil, fmt.Errorf("garden %s: %w", gardenID, apperrors.ErrNotFound)
	}
	return garden, nil
}

func (s *gardenService) List(ctx context.Context, ownerID uuid.UUID) ([]*models.Garden, error) {
	gardens, err := s.gardens.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list gardens: %w", err)
	}
	return gardens, nil
}

func (s *gardenService) Update(ctx context.Context, ownerID uuid.UUID, garden *models.Garden) (*models.Garden, error) {
	if err := s.validate(ctx, garden); err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, ownerID, garden.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = garden.Name
	existing.Location = garden.Location
	existing.SizeM2 = garden.SizeM2
	existing.SoilType = garden.SoilType
	existing.SunExposure = garden.SunExposure
	existing.HasIrrigation = garden.HasIrrigation
	existing.Notes = garden.Notes

	if err := s.gardens.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update garden: %w", err)
	}
	return existing, nil
}

func (s *gardenService) Delete(ctx context.Context, ownerID, gardenID uuid.UUID) error {
	if _, err := s.Get(ctx, ownerID, gardenID); err != nil {
		return err
	}

	if err := s.gardens.Delete(ctx, gardenID); err != nil {
		return fmt.Errorf("delete garden: %w", err)
	}

	s.logger.Info("Garden deleted", zap.String("garden_id", gardenID.String()))
	return nil
}

// Ensure gardenService implements GardenService at compile time.
var _ GardenService = (*gardenService)(nil)
