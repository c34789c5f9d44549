package models

import (
	"time"

	"github.com/google/uuid"
)

// Soil types for gardens
const (
	SoilSandy = "sandy"
	SoilClay  = "clay"
	SoilLoamy = "loamy"
	SoilRocky = "rocky"
)

// Sun exposure categories
const (
	ExposureFullSun    = "full_sun"
	ExposurePartialSun = "partial_sun"
	ExposureShade      = "shade"
)

// Garden is the physical growing space constraining candidate suitability.
// A garden is owned by exactly one user.
type Garden struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	SizeM2        float64   `json:"size_m2"` // 0 means unknown
	SoilType      string    `json:"soil_type"`
	SunExposure   string    `json:"sun_exposure"`
	HasIrrigation bool      `json:"has_irrigation"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidSoilType reports whether soil is a known soil type.
func ValidSoilType(soil string) bool {
	switch soil {
	case SoilSandy, SoilClay, SoilLoamy, SoilRocky:
		return true
	}
	return false
}

// ValidSunExposure reports whether exposure is a known category.
func ValidSunExposure(exposure string) bool {
	switch exposure {
	case ExposureFullSun, ExposurePartialSun, ExposureShade:
		return true
	}
	return false
}
