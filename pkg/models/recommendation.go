package models

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation categories
const (
	RecommendationWatering    = "watering"
	RecommendationFertilizing = "fertilizing"
	RecommendationPruning     = "pruning"
	RecommendationPestControl = "pest_control"
	RecommendationHarvesting  = "harvesting"
	RecommendationGeneral     = "general"
)

// Recommendation lifecycle states. A record starts pending; applied and
// dismissed are terminal.
const (
	StatusPending   = "pending"
	StatusApplied   = "applied"
	StatusDismissed = "dismissed"
)

// Recommendation is a persisted, stateful record of one surfaced candidate
// for one user. Created by the generation pipeline; mutated only by the
// status-transition operation; never deleted by the engine.
//
// ConfidenceScore is always within [0.0, 1.0]. AppliedAt is set exactly once,
// on the pending→applied transition.
type Recommendation struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"user_id"`
	CultivationPlanID *uuid.UUID `json:"cultivation_plan_id,omitempty"`
	Type              string     `json:"recommendation_type"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	ConfidenceScore   float64    `json:"confidence_score"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	AppliedAt         *time.Time `json:"applied_at,omitempty"`
}

// ValidRecommendationType reports whether t is a known category tag.
func ValidRecommendationType(t string) bool {
	switch t {
	case RecommendationWatering, RecommendationFertilizing, RecommendationPruning,
		RecommendationPestControl, RecommendationHarvesting, RecommendationGeneral:
		return true
	}
	return false
}

// TerminalStatus reports whether status permits no further transitions.
func TerminalStatus(status string) bool {
	return status == StatusApplied || status == StatusDismissed
}
