package planner

import (
	"context"
	"fmt"
	"time"

	"nutriplan/internal/llm"
	"nutriplan/internal/logger"
	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
	"nutriplan/internal/shared"
)

// RecipeCatalog is the read-only view of the recipe/ingredient store the
// pipeline depends on.
type RecipeCatalog interface {
	GetByIDs(ctx context.Context, ids []string) ([]recipe.Recipe, error)
	SampleExcluding(ctx context.Context, excludeIDs []string, n int) ([]recipe.Recipe, error)
	IngredientsByIDs(ctx context.Context, ids []string) ([]recipe.Ingredient, error)
}

// ProfileStore reads user profiles.
type ProfileStore interface {
	FindByUser(ctx context.Context, userID string) (*profile.Profile, error)
}

// PlanStore persists week plans.
type PlanStore interface {
	Replace(ctx context.Context, userID string, days []DayPlan) (*StoredPlan, error)
	Get(ctx context.Context, userID string) (*StoredPlan, error)
	ChangeMeal(ctx context.Context, userID, day, mealType, newRecipeID, reason string) (*StoredPlan, error)
}

// MetricsRecorder records LLM call metadata. May be nil.
type MetricsRecorder interface {
	RecordMeta(meta shared.CallMeta) error
}

// Planner runs the meal-plan generation and normalization pipeline.
type Planner struct {
	catalog             RecipeCatalog
	profiles            ProfileStore
	plans               PlanStore
	textGen             llm.TextGenerator
	metrics             MetricsRecorder
	log                 *logger.Logger
	defaultWeeklyBudget float64
}

// NewPlanner creates a new Planner instance.
func NewPlanner(
	catalog RecipeCatalog,
	profiles ProfileStore,
	plans PlanStore,
	textGen llm.TextGenerator,
	metrics MetricsRecorder,
	log *logger.Logger,
	defaultWeeklyBudget float64,
) *Planner {
	return &Planner{
		catalog:             catalog,
		profiles:            profiles,
		plans:               plans,
		textGen:             textGen,
		metrics:             metrics,
		log:                 log,
		defaultWeeklyBudget: defaultWeeklyBudget,
	}
}

// GenerateMealPlan runs the whole pipeline for one user: candidate build,
// prompt, completion, reconcile, persist, materialize. The stored plan is
// only replaced after the response parsed; a parse failure leaves any
// previous plan untouched.
func (p *Planner) GenerateMealPlan(ctx context.Context, userID string, weeklyBudget *float64) (*MaterializedPlan, error) {
	prof, err := p.profiles.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if prof == nil {
		return nil, ErrProfileNotFound
	}

	candidates, err := p.buildCandidateSet(ctx, prof)
	if err != nil {
		return nil, err
	}
	p.log.Info("candidate set built",
		"userId", userID, "liked", len(prof.Likes), "candidates", len(candidates))

	prompt, err := BuildMealPlanPrompt(prof, candidates)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := p.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	p.recordUsage(resp.Usage, time.Since(start))

	draft, err := ParsePlanResponse(resp.Content)
	if err != nil {
		return nil, err
	}

	days, err := p.reconcile(ctx, draft)
	if err != nil {
		return nil, err
	}

	stored, err := p.plans.Replace(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	p.log.Info("meal plan replaced", "userId", userID, "planId", stored.ID, "days", len(days))

	return p.Materialize(ctx, stored, BudgetInputs{
		Override:      weeklyBudget,
		ProfileBudget: prof.Budget,
		Default:       p.defaultWeeklyBudget,
	})
}

// GetPlan returns the user's raw stored plan.
func (p *Planner) GetPlan(ctx context.Context, userID string) (*StoredPlan, error) {
	return p.plans.Get(ctx, userID)
}

// ChangeMeal swaps a single slot of the stored plan. The replacement recipe
// must exist in the catalog.
func (p *Planner) ChangeMeal(ctx context.Context, userID, day, mealType, newRecipeID, reason string) (*StoredPlan, error) {
	if !validMealType(mealType) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMealType, mealType)
	}

	found, err := p.catalog.GetByIDs(ctx, []string{newRecipeID})
	if err != nil {
		return nil, fmt.Errorf("failed to verify recipe: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrRecipeNotFound, newRecipeID)
	}

	return p.plans.ChangeMeal(ctx, userID, day, mealType, newRecipeID, reason)
}

func validMealType(mealType string) bool {
	for _, mt := range MealTypes {
		if mt == mealType {
			return true
		}
	}
	return false
}

func (p *Planner) recordUsage(usage shared.TokenUsage, latency time.Duration) {
	if p.metrics == nil {
		return
	}
	err := p.metrics.RecordMeta(shared.CallMeta{
		CallName: "MealPlanner",
		Usage:    usage,
		Latency:  latency,
	})
	if err != nil {
		p.log.Warn("failed to record llm usage", "error", err)
	}
}
