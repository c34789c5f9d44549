package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hortechia/hortechia-engine/pkg/apperrors"
	"github.com/hortechia/hortechia-engine/pkg/models"
)

type planFixture struct {
	svc      CultivationPlanService
	plans    *mockCultivationPlanRepository
	ownerID  uuid.UUID
	gardenID uuid.UUID
	plantID  uuid.UUID
}

func newPlanFixture(t *testing.T) *planFixture {
	t.Helper()

	ownerID := uuid.New()
	gardens := newMockGardenRepository()
	garden := validGarden()
	garden.OwnerID = ownerID
	if err := gardens.Create(context.Background(), garden); err != nil {
		t.Fatalf("seed garden: %v", err)
	}

	plant := &models.Plant{
		ID:              uuid.New(),
		Name:            "Lettuce",
		Difficulty:      models.DifficultyEasy,
		HarvestTimeDays: 45,
	}
	plants := &mockPlantRepository{plants: []*models.Plant{plant}}

	plans := newMockCultivationPlanRepository()
	return &planFixture{
		svc:      NewCultivationPlanService(plans, gardens, plants, zap.NewNop()),
		plans:    plans,
		ownerID:  ownerID,
		gardenID: garden.ID,
		plantID:  plant.ID,
	}
}

func (f *planFixture) validPlan() *models.CultivationPlan {
	return &models.CultivationPlan{
		GardenID:     f.gardenID,
		PlantID:      f.plantID,
		PlantingDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestPlanCreate_DerivesHarvestDate(t *testing.T) {
	f := newPlanFixture(t)

	created, err := f.svc.Create(context.Background(), f.ownerID, f.validPlan())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	want := time.Date(2026, 4, 29, 0, 0, 0, 0, time.UTC)
	if !created.ExpectedHarvestDate.Equal(want) {
		t.Errorf("ExpectedHarvestDate = %v, want %v", created.ExpectedHarvestDate, want)
	}
	if created.Status != models.PlanStatusPlanned {
		t.Errorf("Status = %q, want %q", created.Status, models.PlanStatusPlanned)
	}
}

func TestPlanCreate_KeepsExplicitHarvestDate(t *testing.T) {
	f := newPlanFixture(t)

	plan := f.validPlan()
	explicit := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	plan.ExpectedHarvestDate = explicit

	created, err := f.svc.Create(context.Background(), f.ownerID, plan)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !created.ExpectedHarvestDate.Equal(explicit) {
		t.Errorf("ExpectedHarvestDate = %v, want %v", created.ExpectedHarvestDate, explicit)
	}
}

func TestPlanCreate_Validation(t *testing.T) {
	f := newPlanFixture(t)

	tests := []struct {
		name   string
		mutate func(*models.CultivationPlan)
	}{
		{"unknown status", func(p *models.CultivationPlan) { p.Status = "archived" }},
		{"missing planting date", func(p *models.CultivationPlan) { p.PlantingDate = time.Time{} }},
		{"hostile notes", func(p *models.CultivationPlan) { p.Notes = "' OR 1=1 --" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := f.validPlan()
			tt.mutate(plan)
			_, err := f.svc.Create(context.Background(), f.ownerID, plan)
			if !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestPlanCreate_ForeignGardenHidden(t *testing.T) {
	f := newPlanFixture(t)

	_, err := f.svc.Create(context.Background(), uuid.New(), f.validPlan())
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found for foreign garden, got %v", err)
	}
	if len(f.plans.plans) != 0 {
		t.Errorf("expected no plan persisted, got %d", len(f.plans.plans))
	}
}

func TestPlanCreate_UnknownPlant(t *testing.T) {
	f := newPlanFixture(t)

	plan := f.validPlan()
	plan.PlantID = uuid.New()
	_, err := f.svc.Create(context.Background(), f.ownerID, plan)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found for unknown plant, got %v", err)
	}
}

func TestPlanGet_ForeignGardenHidden(t *testing.T) {
	f := newPlanFixture(t)

	created, err := f.svc.Create(context.Background(), f.ownerID, f.validPlan())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := f.svc.Get(context.Background(), f.ownerID, created.ID); err != nil {
		t.Errorf("owner Get failed: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), uuid.New(), created.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found for foreign caller, got %v", err)
	}
}

func TestPlanListByGarden(t *testing.T) {
	f := newPlanFixture(t)

	for i := 0; i < 2; i++ {
		if _, err := f.svc.Create(context.Background(), f.ownerID, f.validPlan()); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	plans, err := f.svc.ListByGarden(context.Background(), f.ownerID, f.gardenID)
	if err != nil {
		t.Fatalf("ListByGarden failed: %v", err)
	}
	if len(plans) != 2 {
		t.Errorf("expected 2 plans, got %d", len(plans))
	}

	if _, err := f.svc.ListByGarden(context.Background(), uuid.New(), f.gardenID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found for foreign caller, got %v", err)
	}
}
