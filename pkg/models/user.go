package models

import (
	"time"

	"github.com/google/uuid"
)

// Experience levels for a user profile
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// User is the requesting actor's profile. Account management lives in an
// external service; this engine only reads profiles.
type User struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	Location        string    `json:"location,omitempty"`
	ExperienceLevel string    `json:"experience_level"`
	AvailableSpace  *int      `json:"available_space,omitempty"` // m², optional
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ValidExperienceLevel reports whether level is a known experience tier.
func ValidExperienceLevel(level string) bool {
	switch level {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}
