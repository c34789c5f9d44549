package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hortechia/hortechia-engine/pkg/apperrors"
	"github.com/hortechia/hortechia-engine/pkg/models"
	"github.com/hortechia/hortechia-engine/pkg/repositories"
)

// PlantService provides read-only access to the plant catalog.
type PlantService interface {
	List(ctx context.Context) ([]*models.Plant, error)
	Get(ctx context.Context, plantID uuid.UUID) (*models.Plant, error)
	GetByDifficulty(ctx context.Context, level string) ([]*models.Plant, error)
}

type plantService struct {
	plants repositories.PlantRepository
}

// NewPlantService creates the plant catalog service.
func NewPlantService(plants repositories.PlantRepository) PlantService {
	return &plantService{plants: plants}
}

func (s *plantService) List(ctx context.Context) ([]*models.Plant, error) {
	plants, err := s.plants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	return plants, nil
}

func (s *plantService) Get(ctx context.Context, plantID uuid.UUID) (*models.Plant, error) {
	plant, err := s.plants.GetByID(ctx, plantID)
	if err != nil {
		return nil, fmt.Errorf("get plant: %w", err)
	}
	return plant, nil
}

func (s *plantService) GetByDifficulty(ctx context.Context, level string) ([]*models.Plant, error) {
	if !models.ValidDifficulty(level) {
		return nil, fmt.Errorf("unknown difficulty %q: %w", level, apperrors.ErrValidation)
	}

	plants, err := s.plants.GetByDifficulty(ctx, []string{level})
	if err != nil {
		return nil, fmt.Errorf("get plants by difficulty: %w", err)
	}
	return plants, nil
}

// Ensure plantService implements PlantService at compile time.
var _ PlantService = (*plantService)(nil)
