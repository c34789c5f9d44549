package models

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty levels for plants in the catalog
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Planting seasons
const (
	SeasonSpring  = "spring"
	SeasonSummer  = "summer"
	SeasonAutumn  = "autumn"
	SeasonWinter  = "winter"
	SeasonAllYear = "all_year"
)

// Plant is one catalog item eligible for recommendation.
// The catalog is read-only from the engine's perspective.
type Plant struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	ScientificName  string    `json:"scientific_name,omitempty"`
	Description     string    `json:"description"`
	Difficulty      string    `json:"difficulty"`
	PlantingSeason  string    `json:"planting_season"`
	HarvestTimeDays int       `json:"harvest_time_days"` // days from planting to harvest
	SpaceRequired   float64   `json:"space_required"`    // m²
	WaterFrequency  int       `json:"water_frequency"`   // watering interval in days
	CreatedAt       time.Time `json:"created_at"`
}

// ValidDifficulty reports whether level is a known difficulty tier.
func ValidDifficulty(level string) bool {
	switch level {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
