package recommend

import (
	"reflect"
	"testing"

	"github.com/hortechia/hortechia-engine/pkg/models"
)

func TestReasons_AllRulesFire(t *testing.T) {
	user := testUser(models.ExperienceBeginner)
	garden := testGarden(10, models.ExposureFullSun, true)
	plant := testPlant("Radish", models.DifficultyEasy, 1, 2, 30)

	want := []string{
		"Ideal for beginners",
		"Fits your available space (10m²)",
		"Compatible with your irrigation system",
		"Ready to harvest in 30 days",
	}
	got := Reasons(user, garden, plant)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestReasons_OnlyHarvestNoteForPoorFit(t *testing.T) {
	user := testUser(models.ExperienceAdvanced)
	garden := testGarden(2, models.ExposureShade, false)
	plant := testPlant("Pumpkin", models.DifficultyHard, 4, 5, 110)

	got := Reasons(user, garden, plant)
	want := []string{"Ready to harvest in 110 days"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected only the harvest note, got %v", got)
	}
}

func TestReasons_Deterministic(t *testing.T) {
	user := testUser(models.ExperienceBeginner)
	garden := testGarden(5, models.ExposureFullSun, true)
	plant := testPlant("Basil", models.DifficultyEasy, 0.5, 2, 60)

	first := Reasons(user, garden, plant)
	for i := 0; i < 10; i++ {
		if got := Reasons(user, garden, plant); !reflect.DeepEqual(got, first) {
			t.Fatalf("reasons changed between invocations: %v vs %v", first, got)
		}
	}
}

func TestReasons_NoIrrigationNoteWhenWateringInfrequent(t *testing.T) {
	user := testUser(models.ExperienceBeginner)
	garden := testGarden(10, models.ExposureFullSun, true)
	plant := testPlant("Cactus", models.DifficultyEasy, 0.5, 14, 365)

	for _, reason := range Reasons(user, garden, plant) {
		if reason == "Compatible with your irrigation system" {
			t.Fatal("irrigation note must not fire for 14-day watering interval")
		}
	}
}
