package models

import (
	"time"

	"github.com/google/uuid"
)

// Status values for cultivation plans
const (
	PlanStatusPlanned   = "planned"
	PlanStatusActive    = "active"
	PlanStatusCompleted = "completed"
	PlanStatusFailed    = "failed"
)

// ValidPlanStatus reports whether status is a known cultivation plan status.
func ValidPlanStatus(status string) bool {
	switch status {
	case PlanStatusPlanned, PlanStatusActive, PlanStatusCompleted, PlanStatusFailed:
		return true
	}
	return false
}

// CultivationPlan tracks one plant being grown in one garden.
// Recommendations may optionally reference a plan.
type CultivationPlan struct {
	ID                  uuid.UUID  `json:"id"`
	GardenID            uuid.UUID  `json:"garden_id"`
	PlantID             uuid.UUID  `json:"plant_id"`
	Status              string     `json:"status"`
	PlantingDate        time.Time  `json:"planting_date"`
	ExpectedHarvestDate time.Time  `json:"expected_harvest_date"`
	ActualHarvestDate   *time.Time `json:"actual_harvest_date,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
