package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hortechia/hortechia-engine/pkg/apperrors"
	"github.com/hortechia/hortechia-engine/pkg/database"
	"github.com/hortechia/hortechia-engine/pkg/models"
)

// PlantRepository defines the interface for plant catalog data access.
// The catalog is seeded by migrations and curated out of band; the engine
// treats it as read-only.
type PlantRepository interface {
	List(ctx context.Context) ([]*models.Plant, error)
	GetByID(ctx context.Context, plantID uuid.UUID) (*models.Plant, error)
	GetByDifficulty(ctx context.Context, difficulties []string) ([]*models.Plant, error)
}

// plantRepository implements PlantRepository using PostgreSQL.
type plantRepository struct {
	db *database.DB
}

// NewPlantRepository creates a new plant repository.
func NewPlantRepository(db *database.DB) PlantRepository {
	return &plantRepository{db: db}
}

const plantColumns = `id, name, scientific_name, description, difficulty, planting_season,
	harvest_time_days, space_required, water_frequency, created_at`

// List retrieves the whole plant catalog ordered by name.
func (r *plantRepository) List(ctx context.Context) ([]*models.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	defer rows.Close()

	return scanPlants(rows)
}

// GetByID retrieves a single catalog entry.
func (r *plantRepository) GetByID(ctx context.Context, plantID uuid.UUID) (*models.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants WHERE id = $1`

	var plant models.Plant
	err := r.db.QueryRow(ctx, query, plantID).Scan(
		&plant.ID,
		&plant.Name,
		&plant.ScientificName,
		&plant.Description,
		&plant.Difficulty,
		&plant.PlantingSeason,
		&plant.HarvestTimeDays,
		&plant.SpaceRequired,
		&plant.WaterFrequency,
		&plant.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("plant %s: %w", plantID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get plant: %w", err)
	}

	return &plant, nil
}

// GetByDifficulty retrieves catalog entries whose difficulty is in the
// given set, ordered by name for stable pagination.
func (r *plantRepository) GetByDifficulty(ctx context.Context, difficulties []string) ([]*models.Plant, error) {
	if len(difficulties) == 0 {
		return nil, nil
	}

	query := `SELECT ` + plantColumns + ` FROM plants WHERE difficulty = ANY($1) ORDER BY name`

	rows, err := r.db.Query(ctx, query, difficulties)
	if err != nil {
		return nil, fmt.Errorf("failed to get plants by difficulty: %w", err)
	}
	defer rows.Close()

	return scanPlants(rows)
}

func scanPlants(rows pgx.Rows) ([]*models.Plant, error) {
	var plants []*models.Plant
	for rows.Next() {
		var plant models.Plant
		err := rows.Scan(
			&plant.ID,
			&plant.Name,
			&plant.ScientificName,
			&plant.Description,
			&plant.Difficulty,
			&plant.PlantingSeason,
			&plant.HarvestTimeDays,
			&plant.SpaceRequired,
			&plant.WaterFrequency,
			&plant.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plant: %w", err)
		}
		plants = append(plants, &plant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plants: %w", err)
	}

	return plants, nil
}

// Ensure plantRepository implements PlantRepository at compile time.
var _ PlantRepository = (*plantRepository)(nil)
