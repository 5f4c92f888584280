package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nutriplan/internal/recipe"
)

// PlanRecipe is a stored slot expanded to full recipe data, with nested
// nutrient values flattened to plain numbers.
type PlanRecipe struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	MealType        string   `json:"mealType"`
	Calories        float64  `json:"calories"`
	Protein         float64  `json:"protein"`
	Carbs           float64  `json:"carbs"`
	Fat             float64  `json:"fat"`
	PrepTimeMinutes int      `json:"prepTimeMinutes,omitempty"`
	EstimatedPrice  float64  `json:"estimatedPrice,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Reason          string   `json:"reason,omitempty"`
}

// MaterializedDay is one day of the materialized plan.
type MaterializedDay struct {
	Day     string       `json:"day"`
	Recipes []PlanRecipe `json:"recipes"`
}

// GroceryItem is one aggregated grocery-list line.
type GroceryItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// PlanMetadata carries the budget figures and generation timestamp.
type PlanMetadata struct {
	WeeklyBudget float64   `json:"weeklyBudget"`
	DailyBudget  string    `json:"dailyBudget"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

// MaterializedPlan is the response shape of a generated or re-read plan.
// Rebuilt from the stored plan and the catalog on every read, never persisted.
type MaterializedPlan struct {
	Week        []MaterializedDay `json:"week"`
	GroceryList []GroceryItem     `json:"groceryList"`
	Metadata    PlanMetadata      `json:"metadata"`
}

// BudgetInputs are the figures feeding the materialized budget metadata, in
// precedence order: request override, profile budget, configured default.
type BudgetInputs struct {
	Override      *float64
	ProfileBudget float64
	Default       float64
}

// WeeklyBudget resolves the precedence chain.
func (b BudgetInputs) WeeklyBudget() float64 {
	if b.Override != nil {
		return *b.Override
	}
	if b.ProfileBudget > 0 {
		return b.ProfileBudget
	}
	return b.Default
}

// Materialize expands the stored plan into full recipe data plus the week's
// aggregated grocery list. A slot whose recipe no longer exists in the
// catalog is skipped silently; the day itself is still emitted.
func (p *Planner) Materialize(ctx context.Context, stored *StoredPlan, budget BudgetInputs) (*MaterializedPlan, error) {
	var ids []string
	seen := make(map[string]struct{})
	for _, day := range stored.Days {
		for _, slot := range day.Meals {
			if slot.RecipeID == "" {
				continue
			}
			if _, ok := seen[slot.RecipeID]; ok {
				continue
			}
			seen[slot.RecipeID] = struct{}{}
			ids = append(ids, slot.RecipeID)
		}
	}

	recipes, err := p.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plan recipes: %w", err)
	}
	recipeByID := make(map[string]recipe.Recipe, len(recipes))
	for _, r := range recipes {
		recipeByID[r.ID] = r
	}

	var ingredientIDs []string
	seenIngredients := make(map[string]struct{})
	for _, r := range recipes {
		for _, ri := range r.Ingredients {
			if _, ok := seenIngredients[ri.IngredientID]; ok {
				continue
			}
			seenIngredients[ri.IngredientID] = struct{}{}
			ingredientIDs = append(ingredientIDs, ri.IngredientID)
		}
	}
	ingredients, err := p.catalog.IngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plan ingredients: %w", err)
	}
	ingredientByID := make(map[string]recipe.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		ingredientByID[ing.ID] = ing
	}

	grocery := newGroceryAggregator()
	week := make([]MaterializedDay, 0, len(stored.Days))
	for i, dayPlan := range stored.Days {
		// Day labels come from the slot's position, not from parsing the
		// stored day name.
		label := dayPlan.Day
		if i < len(DayLabels) {
			label = DayLabels[i]
		}

		day := MaterializedDay{Day: label, Recipes: []PlanRecipe{}}
		for _, mealType := range MealTypes {
			slot, ok := dayPlan.Meals[mealType]
			if !ok || slot.RecipeID == "" {
				continue
			}
			r, ok := recipeByID[slot.RecipeID]
			if !ok {
				// Deleted from the catalog after the plan was generated.
				continue
			}

			day.Recipes = append(day.Recipes, PlanRecipe{
				ID:              r.ID,
				Name:            r.Name,
				Description:     r.Description,
				MealType:        mealType,
				Calories:        r.Macro("calories"),
				Protein:         r.Macro("protein"),
				Carbs:           r.Macro("carbs"),
				Fat:             r.Macro("fat"),
				PrepTimeMinutes: r.PrepTimeMinutes,
				EstimatedPrice:  r.EstimatedPrice,
				Tags:            r.Tags,
				Reason:          slot.Reason,
			})

			for _, ri := range r.Ingredients {
				ing, ok := ingredientByID[ri.IngredientID]
				if !ok || ing.Name == "" {
					continue
				}
				grocery.add(ing.Name, ri.Amount, ri.Unit)
			}
		}
		week = append(week, day)
	}

	weekly := budget.WeeklyBudget()
	return &MaterializedPlan{
		Week:        week,
		GroceryList: grocery.items(),
		Metadata: PlanMetadata{
			WeeklyBudget: weekly,
			DailyBudget:  fmt.Sprintf("%.2f", weekly/7),
			GeneratedAt:  time.Now().UTC(),
		},
	}, nil
}

// groceryAggregator sums ingredient amounts across the week. Quantities are
// only summed when both the normalized (lowercased) name and the exact unit
// string match; a mismatched unit stays a separate line. No unit conversion.
type groceryAggregator struct {
	byKey   map[string]int
	entries []GroceryItem
}

func newGroceryAggregator() *groceryAggregator {
	return &groceryAggregator{byKey: make(map[string]int)}
}

func (g *groceryAggregator) add(name string, amount float64, unit string) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	key := normalized + "\x00" + unit
	if idx, ok := g.byKey[key]; ok {
		g.entries[idx].Amount += amount
		return
	}
	g.byKey[key] = len(g.entries)
	g.entries = append(g.entries, GroceryItem{Name: normalized, Amount: amount, Unit: unit})
}

func (g *groceryAggregator) items() []GroceryItem {
	if g.entries == nil {
		return []GroceryItem{}
	}
	return g.entries
}
