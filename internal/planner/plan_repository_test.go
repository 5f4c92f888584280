package planner

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"nutriplan/internal/database"
)

func newPlanRepo(t *testing.T) *PlanRepository {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewPlanRepository(db.SQL)
}

func TestPlanRepositoryReplace(t *testing.T) {
	ctx := context.Background()
	repo := newPlanRepo(t)

	first := []DayPlan{{Day: "Mon", Meals: map[string]MealSlot{
		"breakfast": {RecipeID: "R1", Reason: "favorite"},
	}}}
	second := []DayPlan{{Day: "Mon", Meals: map[string]MealSlot{
		"breakfast": {RecipeID: "R9", Reason: "fresh pick"},
	}}}

	if _, err := repo.Replace(ctx, "u1", first); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	stored, err := repo.Replace(ctx, "u1", second)
	if err != nil {
		t.Fatalf("Second Replace failed: %v", err)
	}
	if stored.UserID != "u1" || stored.ID == 0 {
		t.Errorf("Unexpected stored plan identity: %+v", stored)
	}

	// One plan per user: a re-read sees only the latest plan.
	got, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Days) != 1 || got.Days[0].Meals["breakfast"].RecipeID != "R9" {
		t.Errorf("Expected latest plan to win, got %+v", got.Days)
	}
}

func TestPlanRepositoryGetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newPlanRepo(t)

	if _, err := repo.Get(ctx, "nobody"); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("Expected ErrPlanNotFound, got %v", err)
	}
}

func TestPlanRepositoryChangeMeal(t *testing.T) {
	ctx := context.Background()
	repo := newPlanRepo(t)

	days := []DayPlan{
		{Day: "Mon", Meals: map[string]MealSlot{
			"breakfast": {RecipeID: "R1", Reason: "favorite"},
			"lunch":     {RecipeID: "R2"},
		}},
	}
	if _, err := repo.Replace(ctx, "u1", days); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	t.Run("Success", func(t *testing.T) {
		updated, err := repo.ChangeMeal(ctx, "u1", "Mon", "lunch", "R5", "lighter option")
		if err != nil {
			t.Fatalf("ChangeMeal failed: %v", err)
		}
		if updated.Days[0].Meals["lunch"].RecipeID != "R5" {
			t.Errorf("Expected lunch slot replaced, got %+v", updated.Days[0].Meals["lunch"])
		}
		if updated.Days[0].Meals["breakfast"].RecipeID != "R1" {
			t.Errorf("Other slots must be untouched, got %+v", updated.Days[0].Meals["breakfast"])
		}

		persisted, err := repo.Get(ctx, "u1")
		if err != nil {
			t.Fatalf("Get after ChangeMeal failed: %v", err)
		}
		if persisted.Days[0].Meals["lunch"].RecipeID != "R5" {
			t.Errorf("Change was not persisted, got %+v", persisted.Days[0].Meals["lunch"])
		}
	})

	t.Run("UnknownDay", func(t *testing.T) {
		if _, err := repo.ChangeMeal(ctx, "u1", "Sun", "lunch", "R5", ""); !errors.Is(err, ErrUnknownDay) {
			t.Fatalf("Expected ErrUnknownDay, got %v", err)
		}
	})

	t.Run("NoStoredPlan", func(t *testing.T) {
		if _, err := repo.ChangeMeal(ctx, "nobody", "Mon", "lunch", "R5", ""); !errors.Is(err, ErrPlanNotFound) {
			t.Fatalf("Expected ErrPlanNotFound, got %v", err)
		}
	})
}
