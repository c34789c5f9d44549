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

// RecommendationRepository defines the interface for recommendation
// record data access. Records are created by the generation pipeline and
// mutated only through UpdateStatus; they are never deleted.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *models.Recommendation) error
	GetByID(ctx context.Context, recID uuid.UUID) (*models.Recommendation, error)
	// GetByUser lists a user's recommendations, newest first. An empty
	// status lists all lifecycle states.
	GetByUser(ctx context.Context, userID uuid.UUID, status string) ([]*models.Recommendation, error)
	// UpdateStatus transitions a pending recommendation to newStatus.
	// The transition is compare-and-swap on status = 'pending', so
	// concurrent callers cannot double-apply. Returns ErrNotFound when
	// the record does not exist and ErrInvalidTransition when it is no
	// longer pending.
	UpdateStatus(ctx context.Context, recID uuid.UUID, newStatus string) (*models.Recommendation, error)
}

// recommendationRepository implements RecommendationRepository using PostgreSQL.
type recommendationRepository struct {
	db *database.DB
}

// NewRecommendationRepository creates a new recommendation repository.
func NewRecommendationRepository(db *database.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

const recommendationColumns = `id, user_id, cultivation_plan_id, recommendation_type, title,
	description, confidence_score, status, created_at, applied_at`

// Create inserts a new recommendation record in the pending state.
func (r *recommendationRepository) Create(ctx context.Context, rec *models.Recommendation) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Status == "" {
		rec.Status = models.StatusPending
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO ai_recommendations (id, user_id, cultivation_plan_id, recommendation_type,
			title, description, confidence_score, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		rec.ID,
		rec.UserID,
		rec.CultivationPlanID,
		rec.Type,
		rec.Title,
		rec.Description,
		rec.ConfidenceScore,
		rec.Status,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create recommendation: %w", err)
	}

	return nil
}

// GetByID retrieves a recommendation by ID.
func (r *recommendationRepository) GetByID(ctx context.Context, recID uuid.UUID) (*models.Recommendation, error) {
	query := `SELECT ` + recommendationColumns + ` FROM ai_recommendations WHERE id = $1`

	rec, err := scanRecommendation(r.db.QueryRow(ctx, query, recID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("recommendation %s: %w", recID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}

	return rec, nil
}

// GetByUser lists a user's recommendations, newest first.
func (r *recommendationRepository) GetByUser(ctx context.Context, userID uuid.UUID, status string) ([]*models.Recommendation, error) {
	query := `SELECT ` + recommendationColumns + ` FROM ai_recommendations WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}
	defer rows.Close()

	var recs []*models.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recommendations: %w", err)
	}

	return recs, nil
}

// UpdateStatus transitions a pending recommendation to newStatus.
// applied_at is set exactly once, on the pending->applied transition.
func (r *recommendationRepository) UpdateStatus(ctx context.Context, recID uuid.UUID, newStatus string) (*models.Recommendation, error) {
	query := `
		UPDATE ai_recommendations
		SET status = $2,
		    applied_at = CASE WHEN $2 = 'applied' THEN NOW() ELSE applied_at END
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + recommendationColumns

	rec, err := scanRecommendation(r.db.QueryRow(ctx, query, recID, newStatus))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update recommendation status: %w", err)
	}

	// The CAS matched nothing: either the record is missing or it has
	// already left the pending state. Look again to tell the two apart.
	var currentStatus string
	err = r.db.QueryRow(ctx, `SELECT status FROM ai_recommendations WHERE id = $1`, recID).Scan(&currentStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("recommendation %s: %w", recID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to check recommendation status: %w", err)
	}

	return nil, fmt.Errorf("recommendation %s is %s: %w", recID, currentStatus, apperrors.ErrInvalidTransition)
}

func scanRecommendation(row pgx.Row) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.CultivationPlanID,
		&rec.Type,
		&rec.Title,
		&rec.Description,
		&rec.ConfidenceScore,
		&rec.Status,
		&rec.CreatedAt,
		&rec.AppliedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Ensure recommendationRepository implements RecommendationRepository at compile time.
var _ RecommendationRepository = (*recommendationRepository)(nil)
