package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for feedback
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is a user's rating of one recommendation. Immutable once created;
// repeated submissions for the same recommendation are all retained.
type Feedback struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	RecommendationID uuid.UUID `json:"recommendation_id"`
	Rating           int       `json:"rating"` // 1..5
	Comment          string    `json:"comment,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ValidRating reports whether rating is within the accepted range.
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
