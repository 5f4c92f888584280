package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	plandb "nutriplan/internal/planner/plan_db"
)

// PlanRepository is a database-backed repository for week plans. The schema
// enforces at most one plan per user.
type PlanRepository struct {
	queries *plandb.Queries
	db      *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{
		queries: plandb.New(d),
		db:      d,
	}
}

// Replace removes any existing plan for the user and inserts the new one.
// Delete and insert are two statements, not a transaction: a concurrent read
// during the window between them may observe no plan. Concurrent replaces for
// the same user race, last insert wins.
func (r *PlanRepository) Replace(ctx context.Context, userID string, days []DayPlan) (*StoredPlan, error) {
	planJSON, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan days: %w", err)
	}

	if err := r.queries.DeleteMealPlanByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to delete existing meal plan: %w", err)
	}

	createdAt := time.Now().UTC()
	id, err := r.queries.InsertMealPlan(ctx, plandb.InsertMealPlanParams{
		UserID:    userID,
		Data:      string(planJSON),
		CreatedAt: createdAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert meal plan: %w", err)
	}

	return &StoredPlan{
		ID:        id,
		UserID:    userID,
		Days:      days,
		CreatedAt: createdAt,
	}, nil
}

// Get retrieves the user's stored plan, or ErrPlanNotFound.
func (r *PlanRepository) Get(ctx context.Context, userID string) (*StoredPlan, error) {
	dbPlan, err := r.queries.GetMealPlanByUserID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get meal plan for user %s: %w", userID, err)
	}

	var days []DayPlan
	if err := json.Unmarshal([]byte(dbPlan.Data), &days); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meal plan JSON: %w", err)
	}

	return &StoredPlan{
		ID:        dbPlan.ID,
		UserID:    dbPlan.UserID,
		Days:      days,
		CreatedAt: dbPlan.CreatedAt,
	}, nil
}

// ChangeMeal mutates exactly one slot of the stored plan and re-saves the
// whole document. The day must already be a key of the plan.
func (r *PlanRepository) ChangeMeal(ctx context.Context, userID, day, mealType, newRecipeID, reason string) (*StoredPlan, error) {
	plan, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	dayIdx := -1
	for i := range plan.Days {
		if plan.Days[i].Day == day {
			dayIdx = i
			break
		}
	}
	if dayIdx == -1 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDay, day)
	}

	if plan.Days[dayIdx].Meals == nil {
		plan.Days[dayIdx].Meals = make(map[string]MealSlot)
	}
	plan.Days[dayIdx].Meals[mealType] = MealSlot{
		RecipeID: newRecipeID,
		Reason:   reason,
	}

	planJSON, err := json.Marshal(plan.Days)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan days: %w", err)
	}

	if err := r.queries.UpdateMealPlanData(ctx, plandb.UpdateMealPlanDataParams{
		Data:   string(planJSON),
		UserID: userID,
	}); err != nil {
		return nil, fmt.Errorf("failed to update meal plan: %w", err)
	}

	return plan, nil
}
