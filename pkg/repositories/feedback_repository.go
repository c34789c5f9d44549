package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hortechia/hortechia-engine/pkg/database"
	"github.com/hortechia/hortechia-engine/pkg/models"
)

// FeedbackRepository defines the interface for feedback data access.
// Feedback rows are immutable; repeated submissions for the same
// recommendation are all retained.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetByRecommendation(ctx context.Context, recID uuid.UUID) ([]*models.Feedback, error)
}

// feedbackRepository implements FeedbackRepository using PostgreSQL.
type feedbackRepository struct {
	db *database.DB
}

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(db *database.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Create inserts a feedback row.
func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	feedback.CreatedAt = time.Now()

	query := `
		INSERT INTO user_feedback (id, user_id, recommendation_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		feedback.ID,
		feedback.UserID,
		feedback.RecommendationID,
		feedback.Rating,
		feedback.Comment,
		feedback.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	return nil
}

// GetByRecommendation retrieves all feedback for a recommendation, oldest first.
func (r *feedbackRepository) GetByRecommendation(ctx context.Context, recID uuid.UUID) ([]*models.Feedback, error) {
	query := `
		SELECT id, user_id, recommendation_id, rating, comment, created_at
		FROM user_feedback
		WHERE recommendation_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, recID)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	defer rows.Close()

	var feedbacks []*models.Feedback
	for rows.Next() {
		var fb models.Feedback
		err := rows.Scan(
			&fb.ID,
			&fb.UserID,
			&fb.RecommendationID,
			&fb.Rating,
			&fb.Comment,
			&fb.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedbacks = append(feedbacks, &fb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}

	return feedbacks, nil
}

// Ensure feedbackRepository implements FeedbackRepository at compile time.
var _ FeedbackRepository = (*feedbackRepository)(nil)
