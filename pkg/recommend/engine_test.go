package recommend

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hortechia/hortechia-engine/pkg/models"
)

func testUser(level string) models.User {
	return models.User{ID: uuid.New(), Username: "gardener", ExperienceLevel: level}
}

func testGarden(size float64, exposure string, irrigation bool) models.Garden {
	return models.Garden{
		ID:            uuid.New(),
		Name:          "Test Garden",
		SizeM2:        size,
		SunExposure:   exposure,
		HasIrrigation: irrigation,
	}
}

func testPlant(name, difficulty string, space float64, water, harvest int) models.Plant {
	return models.Plant{
		ID:              uuid.New(),
		Name:            name,
		Difficulty:      difficulty,
		SpaceRequired:   space,
		WaterFrequency:  water,
		HarvestTimeDays: harvest,
	}
}

func TestSelectCandidates_DifficultyByExperience(t *testing.T) {
	catalog := []models.Plant{
		testPlant("Lettuce", models.DifficultyEasy, 0.5, 2, 45),
		testPlant("Tomato", models.DifficultyMedium, 1.0, 2, 80),
		testPlant("Artichoke", models.DifficultyHard, 2.0, 4, 150),
	}
	garden := testGarden(10, models.ExposureFullSun, false)
	engine := NewEngine(DefaultConfig())

	cases := []struct {
		level     string
		wantNames []string
	}{
		{models.ExperienceBeginner, []string{"Lettuce"}},
		{models.ExperienceIntermediate, []string{"Lettuce", "Tomato"}},
		{models.ExperienceAdvanced, []string{"Lettuce", "Tomato", "Artichoke"}},
		{"", []string{"Lettuce"}}, // unknown tier falls back to beginner
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			got := engine.SelectCandidates(testUser(tc.level), garden, catalog)
			if len(got) != len(tc.wantNames) {
				t.Fatalf("expected %d candidates, got %d", len(tc.wantNames), len(got))
			}
			for i, want := range tc.wantNames {
				if got[i].Name != want {
					t.Errorf("candidate %d: expected %q, got %q", i, want, got[i].Name)
				}
			}
		})
	}
}

func TestSelectCandidates_AreaFilter(t *testing.T) {
	catalog := []models.Plant{
		testPlant("Herb", models.DifficultyEasy, 0.5, 2, 30),
		testPlant("Pumpkin", models.DifficultyEasy, 4.0, 3, 110),
	}
	engine := NewEngine(DefaultConfig())

	got := engine.SelectCandidates(testUser(models.ExperienceBeginner), testGarden(2, models.ExposureShade, false), catalog)
	if len(got) != 1 || got[0].Name != "Herb" {
		t.Fatalf("expected only Herb to fit 2m², got %v", got)
	}

	// Unknown area (0) applies no area filter.
	got = engine.SelectCandidates(testUser(models.ExperienceBeginner), testGarden(0, models.ExposureShade, false), catalog)
	if len(got) != 2 {
		t.Fatalf("expected no area filter for unknown size, got %d candidates", len(got))
	}
}

func TestSelectCandidates_PreScoreTruncation(t *testing.T) {
	var catalog []models.Plant
	for i := 0; i < 8; i++ {
		catalog = append(catalog, testPlant(fmt.Sprintf("Plant%d", i), models.DifficultyEasy, 0.5, 2, 30))
	}

	cfg := DefaultConfig()
	cfg.TruncateBeforeScoring = true
	engine := NewEngine(cfg)

	got := engine.SelectCandidates(testUser(models.ExperienceBeginner), testGarden(10, models.ExposureShade, false), catalog)
	if len(got) != 5 {
		t.Fatalf("expected legacy truncation to cap at 5, got %d", len(got))
	}
	for i := range got {
		if got[i].Name != catalog[i].Name {
			t.Errorf("truncation must keep catalog order: index %d got %q", i, got[i].Name)
		}
	}

	// Redesigned default scores everything and caps after ranking.
	got = NewEngine(DefaultConfig()).SelectCandidates(testUser(models.ExperienceBeginner), testGarden(10, models.ExposureShade, false), catalog)
	if len(got) != 8 {
		t.Fatalf("expected all 8 candidates without pre-score truncation, got %d", len(got))
	}
}

func TestScore_UpperClip(t *testing.T) {
	// All bonuses maximal plus the maximal perturbation:
	// 0.5 + 0.3 + 0.2 + 0.15 + 0.1 + 0.1 = 1.35 → clipped to 1.0.
	engine := NewEngine(DefaultConfig())
	user := testUser(models.ExperienceAdvanced)
	garden := testGarden(10, models.ExposureFullSun, true)
	plant := testPlant("Lettuce", models.DifficultyEasy, 1, 2, 45)

	got := engine.Score(user, garden, plant, Fixed(0.1))
	if got != 1.0 {
		t.Fatalf("expected clipped confidence 1.0, got %v", got)
	}
}

func TestScore_LowerClamp(t *testing.T) {
	// hard plant, full-shade small garden, negative draw:
	// 0.5 + 0.3 + 0 + 0 + 0 - 0.1 = 0.7; force below zero is not reachable
	// through the additive model, but the clamp still guards the invariant.
	if got := clamp01(-0.2); got != 0 {
		t.Fatalf("expected lower clamp at 0, got %v", got)
	}
	if got := clamp01(1.2); got != 1 {
		t.Fatalf("expected upper clamp at 1, got %v", got)
	}
}

func TestRecommend_PinnedScenario(t *testing.T) {
	// beginner, 10m² full-sun irrigated garden, one easy plant needing 1m²,
	// watered every 2 days, 30-day harvest, noise pinned to zero:
	// 0.5 + 0.1 + 0.2 + 0.15 + 0.1 = 1.05 → clipped to 1.00.
	engine := NewEngine(DefaultConfig())
	user := testUser(models.ExperienceBeginner)
	garden := testGarden(10, models.ExposureFullSun, true)
	plant := testPlant("Radish", models.DifficultyEasy, 1, 2, 30)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	got := engine.Recommend(user, garden, []models.Plant{plant}, Fixed(0), now)
	if len(got) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(got))
	}

	rec := got[0]
	if rec.Confidence != 1.00 {
		t.Errorf("expected confidence 1.00, got %v", rec.Confidence)
	}

	wantReasons := []string{
		"Ideal for beginners",
		"Fits your available space (10m²)",
		"Compatible with your irrigation system",
		"Ready to harvest in 30 days",
	}
	if len(rec.Reasons) != len(wantReasons) {
		t.Fatalf("expected %d reasons, got %v", len(wantReasons), rec.Reasons)
	}
	for i, want := range wantReasons {
		if rec.Reasons[i] != want {
			t.Errorf("reason %d: expected %q, got %q", i, want, rec.Reasons[i])
		}
	}

	wantHarvest := now.AddDate(0, 0, 30)
	if !rec.EstimatedHarvest.Equal(wantHarvest) {
		t.Errorf("expected harvest date %v, got %v", wantHarvest, rec.EstimatedHarvest)
	}
}

func TestRecommend_NoHalfSpaceBonus(t *testing.T) {
	// Same garden, plant needing 6m²: 6 ≤ 10 passes the area filter and
	// still earns the generic space-fit reason, but 6 > 5 (half of 10) so
	// the 0.15 bonus does not apply: 0.5 + 0.1 + 0.2 + 0 + 0.1 = 0.90.
	engine := NewEngine(DefaultConfig())
	user := testUser(models.ExperienceBeginner)
	garden := testGarden(10, models.ExposureFullSun, true)
	plant := testPlant("Squash", models.DifficultyEasy, 6, 2, 90)

	got := engine.Recommend(user, garden, []models.Plant{plant}, Fixed(0), time.Now())
	if len(got) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(got))
	}
	if got[0].Confidence != 0.90 {
		t.Errorf("expected confidence 0.90, got %v", got[0].Confidence)
	}

	foundSpaceFit := false
	for _, reason := range got[0].Reasons {
		if reason == "Fits your available space (10m²)" {
			foundSpaceFit = true
		}
	}
	if !foundSpaceFit {
		t.Errorf("expected generic space-fit reason, got %v", got[0].Reasons)
	}
}

func TestRecommend_ThresholdAndOrder(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	user := testUser(models.ExperienceBeginner)
	garden := testGarden(10, models.ExposureShade, false)

	catalog := []models.Plant{
		// 0.5 + 0.1 + 0.2 = 0.80, no space bonus (6 > 5)
		testPlant("Squash", models.DifficultyEasy, 6, 5, 90),
		// 0.5 + 0.1 + 0.2 + 0.15 = 0.95
		testPlant("Radish", models.DifficultyEasy, 1, 2, 30),
		// ties with Radish at 0.95; must stay behind it (stable sort)
		testPlant("Lettuce", models.DifficultyEasy, 2, 2, 45),
	}

	got := engine.Recommend(user, garden, catalog, Fixed(0), time.Now())
	if len(got) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(got))
	}

	wantOrder := []string{"Radish", "Lettuce", "Squash"}
	for i, want := range wantOrder {
		if got[i].Plant.Name != want {
			t.Errorf("position %d: expected %q, got %q", i, want, got[i].Plant.Name)
		}
	}

	// Confidence sequence is non-increasing.
	for i := 1; i < len(got); i++ {
		if got[i].Confidence > got[i-1].Confidence {
			t.Errorf("confidence sequence increased at %d: %v > %v", i, got[i].Confidence, got[i-1].Confidence)
		}
	}

	// Raising the threshold drops the weakest candidate.
	cfg := DefaultConfig()
	cfg.Threshold = 0.9
	got = NewEngine(cfg).Recommend(user, garden, catalog, Fixed(0), time.Now())
	if len(got) != 2 {
		t.Fatalf("expected threshold 0.9 to keep 2 candidates, got %d", len(got))
	}
}

func TestRecommend_CapsResultCount(t *testing.T) {
	var catalog []models.Plant
	for i := 0; i < 9; i++ {
		catalog = append(catalog, testPlant(fmt.Sprintf("Plant%d", i), models.DifficultyEasy, 0.5, 2, 30))
	}

	engine := NewEngine(DefaultConfig())
	got := engine.Recommend(testUser(models.ExperienceBeginner), testGarden(10, models.ExposureFullSun, true), catalog, Fixed(0), time.Now())
	if len(got) != 5 {
		t.Fatalf("expected cap of 5 recommendations, got %d", len(got))
	}
}

func TestRecommend_EmptySelectionIsEmptyResult(t *testing.T) {
	catalog := []models.Plant{
		testPlant("Artichoke", models.DifficultyHard, 2, 4, 150),
	}
	engine := NewEngine(DefaultConfig())

	got := engine.Recommend(testUser(models.ExperienceBeginner), testGarden(10, models.ExposureFullSun, true), catalog, Fixed(0), time.Now())
	if len(got) != 0 {
		t.Fatalf("expected empty result for beginner vs hard-only catalog, got %d", len(got))
	}
}

func TestRecommend_SeededNoiseIsReproducible(t *testing.T) {
	catalog := []models.Plant{
		testPlant("Radish", models.DifficultyEasy, 1, 2, 30),
		testPlant("Lettuce", models.DifficultyEasy, 2, 2, 45),
	}
	engine := NewEngine(DefaultConfig())
	user := testUser(models.ExperienceBeginner)
	garden := testGarden(10, models.ExposureFullSun, true)
	now := time.Now()

	first := engine.Recommend(user, garden, catalog, NewUniformNoise(42), now)
	second := engine.Recommend(user, garden, catalog, NewUniformNoise(42), now)

	if len(first) != len(second) {
		t.Fatalf("seeded runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Confidence != second[i].Confidence {
			t.Errorf("seeded runs differ at %d: %v vs %v", i, first[i].Confidence, second[i].Confidence)
		}
	}
}

func TestUniformNoise_Bounds(t *testing.T) {
	noise := NewUniformNoise(7)
	for i := 0; i < 1000; i++ {
		draw := noise.Draw()
		if draw < -noiseAmplitude || draw > noiseAmplitude {
			t.Fatalf("draw %v outside [-%v, %v]", draw, noiseAmplitude, noiseAmplitude)
		}
	}
}
