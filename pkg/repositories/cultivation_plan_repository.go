package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hortechia/hortechia-engine/pkg/apperrors"
	"github.com/hortechia/hortechia-engine/pkg/database"
	"github.com/hortechia/hortechia-engine/pkg/models"
)

// CultivationPlanRepository defines the interface for cultivation plan data access.
type CultivationPlanRepository interface {
	Create(ctx context.Context, plan *models.CultivationPlan) error
	GetByID(ctx context.Context, planID uuid.UUID) (*models.CultivationPlan, error)
	GetByGarden(ctx context.Context, gardenID uuid.UUID) ([]*models.CultivationPlan, error)
}

// cultivationPlanRepository implements CultivationPlanRepository using PostgreSQL.
type cultivationPlanRepository struct {
	db *database.DB
}

// NewCultivationPlanRepository creates a new cultivation plan repository.
func NewCultivationPlanRepository(db *database.DB) CultivationPlanRepository {
	return &cultivationPlanRepository{db: db}
}

const planColumns = `id, garden_id, plant_id, status, planting_date, expected_harvest_date,
	actual_harvest_date, notes, created_at, updated_at`

// Create inserts a new cultivation plan.
func (r *cultivationPlanRepository) Create(ctx context.Context, plan *models.CultivationPlan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	if plan.Status == "" {
		plan.Status = models.PlanStatusPlanned
	}
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	query := `
		INSERT INTO cultivation_plans (id, garden_id, plant_id, status, planting_date,
			expected_harvest_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		plan.ID,
		plan.GardenID,
		plan.PlantID,
		plan.Status,
		plan.PlantingDate,
		plan.ExpectedHarvestDate,
		plan.Notes,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create cultivation plan: %w", err)
	}

	return nil
}

// GetByID retrieves a cultivation plan by ID.
func (r *cultivationPlanRepository) GetByID(ctx context.Context, planID uuid.UUID) (*models.CultivationPlan, error) {
	query := `SELECT ` + planColumns + ` FROM cultivation_plans WHERE id = $1`

	var plan models.CultivationPlan
	err := r.db.QueryRow(ctx, query, planID).Scan(
		&plan.ID,
		&plan.GardenID,
		&plan.PlantID,
		&plan.Status,
		&plan.PlantingDate,
		&plan.ExpectedHarvestDate,
		&plan.ActualHarvestDate,
		&plan.Notes,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cultivation plan %s: %w", planID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cultivation plan: %w", err)
	}

	return &plan, nil
}

// GetByGarden retrieves all plans for a garden, newest first.
func (r *cultivationPlanRepository) GetByGarden(ctx context.Context, gardenID uuid.UUID) ([]*models.CultivationPlan, error) {
	query := `SELECT ` + planColumns + ` FROM cultivation_plans WHERE garden_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, gardenID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cultivation plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.CultivationPlan
	for rows.Next() {
		var plan models.CultivationPlan
		err := rows.Scan(
			&plan.ID,
			&plan.GardenID,
			&plan.PlantID,
			&plan.Status,
			&plan.PlantingDate,
			&plan.ExpectedHarvestDate,
			&plan.ActualHarvestDate,
			&plan.Notes,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cultivation plan: %w", err)
		}
		plans = append(plans, &plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cultivation plans: %w", err)
	}

	return plans, nil
}

// Ensure cultivationPlanRepository implements CultivationPlanRepository at compile time.
var _ CultivationPlanRepository = (*cultivationPlanRepository)(nil)
