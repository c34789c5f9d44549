//go:build integration

package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/hortechia/hortechia-engine/pkg/apperrors"
	"github.com/hortechia/hortechia-engine/pkg/models"
	"github.com/hortechia/hortechia-engine/pkg/testhelpers"
)

func TestGardenRepository_CRUD(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	repo := NewGardenRepository(engineDB.DB)
	ctx := context.Background()

	ownerID := insertTestUser(t, engineDB.DB)
	garden := &models.Garden{
		OwnerID:       ownerID,
		Name:          "Back Plot",
		Location:      "Lyon",
		SizeM2:        12.5,
		SoilType:      models.SoilLoamy,
		SunExposure:   models.ExposureFullSun,
		HasIrrigation: true,
	}

	if err := repo.Create(ctx, garden); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, garden.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Back Plot" || got.SizeM2 != 12.5 || !got.HasIrrigation {
		t.Errorf("round-trip mismatch: got %+v", got)
	}

	got.Name = "Front Plot"
	got.HasIrrigation = false
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	updated, err := repo.GetByID(ctx, garden.ID)
	if err != nil {
		t.Fatalf("GetByID after update failed: %v", err)
	}
	if updated.Name != "Front Plot" || updated.HasIrrigation {
		t.Errorf("update not persisted: got %+v", updated)
	}

	owned, err := repo.GetByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("GetByOwner failed: %v", err)
	}
	if len(owned) != 1 {
		t.Errorf("expected 1 garden for owner, got %d", len(owned))
	}

	if err := repo.Delete(ctx, garden.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, garden.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestGardenRepository_NotFound(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	repo := NewGardenRepository(engineDB.DB)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetByID: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, uuid.New()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestPlantRepository_SeededCatalog(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	repo := NewPlantRepository(engineDB.DB)
	ctx := context.Background()

	plants, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(plants) == 0 {
		t.Fatal("expected seeded plant catalog to be non-empty")
	}

	easy, err := repo.GetByDifficulty(ctx, []string{models.DifficultyEasy})
	if err != nil {
		t.Fatalf("GetByDifficulty failed: %v", err)
	}
	for _, p := range easy {
		if p.Difficulty != models.DifficultyEasy {
			t.Errorf("plant %s has difficulty %s, expected easy", p.Name, p.Difficulty)
		}
	}

	all, err := repo.GetByDifficulty(ctx, []string{
		models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard,
	})
	if err != nil {
		t.Fatalf("GetByDifficulty(all) failed: %v", err)
	}
	if len(all) != len(plants) {
		t.Errorf("expected all difficulties to cover the catalog: %d vs %d", len(all), len(plants))
	}
}

func TestFeedbackRepository_CreateAndList(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	recRepo := NewRecommendationRepository(engineDB.DB)
	fbRepo := NewFeedbackRepository(engineDB.DB)
	ctx := context.Background()

	userID := insertTestUser(t, engineDB.DB)
	rec := &models.Recommendation{
		UserID:          userID,
		Type:            models.RecommendationGeneral,
		Title:           "Plant Zucchini",
		ConfidenceScore: 0.7,
	}
	if err := recRepo.Create(ctx, rec); err != nil {
		t.Fatalf("Create recommendation failed: %v", err)
	}

	for _, rating := range []int{4, 5} {
		fb := &models.Feedback{
			UserID:           userID,
			RecommendationID: rec.ID,
			Rating:           rating,
			Comment:          "worked well",
		}
		if err := fbRepo.Create(ctx, fb); err != nil {
			t.Fatalf("Create feedback failed: %v", err)
		}
	}

	feedbacks, err := fbRepo.GetByRecommendation(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByRecommendation failed: %v", err)
	}
	if len(feedbacks) != 2 {
		t.Errorf("expected 2 feedback rows, got %d", len(feedbacks))
	}
}
