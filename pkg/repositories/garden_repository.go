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

// GardenRepository defines the interface for garden data access.
type GardenRepository interface {
	Create(ctx context.Context, garden *models.Garden) error
	GetByID(ctx context.Context, gardenID uuid.UUID) (*models.Garden, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Garden, error)
	Update(ctx context.Context, garden *models.Garden) error
	Delete(ctx context.Context, gardenID uuid.UUID) error
}

// gardenRepository implements GardenRepository using PostgreSQL.
type gardenRepository struct {
	db *database.DB
}

// NewGardenRepository creates a new garden repository.
func NewGardenRepository(db *database.DB) GardenRepository {
	return &gardenRepository{db: db}
}

const gardenColumns = `id, owner_id, name, location, size_m2, soil_type, sun_exposure,
	has_irrigation, notes, created_at, updated_at`

// Create inserts a new garden.
func (r *gardenRepository) Create(ctx context.Context, garden *models.Garden) error {
	if garden.ID == uuid.Nil {
		garden.ID = uuid.New()
	}
	now := time.Now()
	garden.CreatedAt = now
	garden.UpdatedAt = now

	query := `
		INSERT INTO gardens (id, owner_id, name, location, size_m2, soil_type, sun_exposure,
			has_irrigation, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		garden.ID,
		garden.OwnerID,
		garden.Name,
		garden.Location,
		garden.SizeM2,
		garden.SoilType,
		garden.SunExposure,
		garden.HasIrrigation,
		garden.Notes,
		garden.CreatedAt,
		garden.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create garden: %w", err)
	}

	return nil
}

// GetByID retrieves a garden by ID.
func (r *gardenRepository) GetByID(ctx context.Context, gardenID uuid.UUID) (*models.Garden, error) {
	query := `SELECT ` + gardenColumns + ` FROM gardens WHERE id = $1`

	var garden models.Garden
	err := r.db.QueryRow(ctx, query, gardenID).Scan(
		&garden.ID,
		&garden.OwnerID,
		&garden.Name,
		&garden.Location,
		&garden.SizeM2,
		&garden.SoilType,
		&garden.SunExposure,
		&garden.HasIrrigation,
		&garden.Notes,
		&garden.CreatedAt,
		&garden.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("garden %s: %w", gardenID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get garden: %w", err)
	}

	return &garden, nil
}

// GetByOwner retrieves all gardens belonging to a user.
func (r *gardenRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Garden, error) {
	query := `SELECT ` + gardenColumns + ` FROM gardens WHERE owner_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gardens: %w", err)
	}
	defer rows.Close()

	var gardens []*models.Garden
	for rows.Next() {
		var garden models.Garden
		err := rows.Scan(
			&garden.ID,
			&garden.OwnerID,
			&garden.Name,
			&garden.Location,
			&garden.SizeM2,
			&garden.SoilType,
			&garden.SunExposure,
			&garden.HasIrrigation,
			&garden.Notes,
			&garden.CreatedAt,
			&garden.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan garden: %w", err)
		}
		gardens = append(gardens, &garden)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gardens: %w", err)
	}

	return gardens, nil
}

// Update persists changes to an existing garden.
func (r *gardenRepository) Update(ctx context.Context, garden *models.Garden) error {
	garden.UpdatedAt = time.Now()

	query := `
		UPDATE gardens
		SET name = $1, location = $2, size_m2 = $3, soil_type = $4, sun_exposure = $5,
			has_irrigation = $6, notes = $7, updated_at = $8
		WHERE id = $9`

	result, err := r.db.Exec(ctx, query,
		garden.Name,
		garden.Location,
		garden.SizeM2,
		garden.SoilType,
		garden.SunExposure,
		garden.HasIrrigation,
		garden.Notes,
		garden.UpdatedAt,
		garden.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update garden: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("garden %s: %w", garden.ID, apperrors.ErrNotFound)
	}

	return nil
}

// Delete removes a garden.
func (r *gardenRepository) Delete(ctx context.Context, gardenID uuid.UUID) error {
	query := `DELETE FROM gardens WHERE id = $1`

	result, err := r.db.Exec(ctx, query, gardenID)
	if err != nil {
		return fmt.Errorf("failed to delete garden: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("garden %s: %w", gardenID, apperrors.ErrNotFound)
	}

	return nil
}

// Ensure gardenRepository implements GardenRepository at compile time.
var _ GardenRepository = (*gardenRepository)(nil)
