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

// FeedbackService captures user feedback on recommendation records.
type FeedbackService interface {
	// Submit appends one immutable feedback row for a recommendation the
	// caller owns. Repeated submissions for the same recommendation are
	// all retained.
	Submit(ctx context.Context, userID, recID uuid.UUID, rating int, comment string) (*models.Feedback, error)
}

type feedbackService struct {
	recs     repositories.RecommendationRepository
	feedback repositories.FeedbackRepository
	auditor  *audit.SecurityAuditor
	logger   *zap.Logger
}

// NewFeedbackService creates the feedback service.
func NewFeedbackService(
	recs repositories.RecommendationRepository,
	feedback repositories.FeedbackRepository,
	logger *zap.Logger,
) FeedbackService {
	return &feedbackService{
		recs:     recs,
		feedback: feedback,
		auditor:  audit.NewSecurityAuditor(logger),
		logger:   logger.Named("feedback-service"),
	}
}

func (s *feedbackService) Submit(ctx context.Context, userID, recID uuid.UUID, rating int, comment string) (*models.Feedback, error) {
	if !models.ValidRating(rating) {
		return nil, fmt.Errorf("rating must be between %d and %d: %w",
			models.MinRating, models.MaxRating, apperrors.ErrValidation)
	}
	if err := validation.ScreenFreeText("comment", comment); err != nil {
		var injErr *validation.InjectionError
		if errors.As(err, &injErr) {
			s.auditor.LogInjectionAttempt(ctx, injErr)
		}
		return nil, err
	}

	rec, err := s.recs.GetByID(ctx, recID)
	if err != nil {
		return nil, fmt.Errorf("load recommendation: %w", err)
	}
	if rec.UserID != userID {
		return nil, fmt.Errorf("recommendation %s belongs to another user: %w", recID, apperrors.ErrForbidden)
	}

	fb := &models.Feedback{
		UserID:           userID,
		RecommendationID: recID,
		Rating:           rating,
		Comment:          comment,
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("persist feedback: %w", err)
	}

	s.logger.Info("Feedback submitted",
		zap.String("recommendation_id", recID.String()),
		zap.Int("rating", rating))

	return fb, nil
}

// Ensure feedbackService implements FeedbackService at compile time.
var _ FeedbackService = (*feedbackService)(nil)
