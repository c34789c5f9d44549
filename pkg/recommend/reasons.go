package recommend

import (
	"fmt"

	"github.com/hortechia/hortechia-engine/pkg/models"
)

// Reasons derives the human-readable justifications for recommending plant
// to user in garden. It is a pure function of its inputs: no randomness, and
// the rules fire in a fixed order so the output is stable for tests and for
// display. Reasons explain the recommendation; they never feed back into the
// score.
func Reasons(user models.User, garden models.Garden, plant models.Plant) []string {
	var reasons []string

	if plant.Difficulty == models.DifficultyEasy && user.ExperienceLevel == models.ExperienceBeginner {
		reasons = append(reasons, "Ideal for beginners")
	}

	if plant.SpaceRequired <= garden.SizeM2 {
		reasons = append(reasons, fmt.Sprintf("Fits your available space (%gm²)", garden.SizeM2))
	}

	if garden.HasIrrigation && plant.WaterFrequency <= 3 {
		reasons = append(reasons, "Compatible with your irrigation system")
	}

	reasons = append(reasons, fmt.Sprintf("Ready to harvest in %d days", plant.HarvestTimeDays))

	return reasons
}
