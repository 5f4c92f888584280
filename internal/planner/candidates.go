package planner

import (
	"context"
	"fmt"

	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

// CandidateIngredient is the name/category pair shown to the model for one
// recipe ingredient. Both fields stay empty when the ingredient reference
// no longer resolves.
type CandidateIngredient struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// CandidateRecipe is the minimal recipe projection included in the prompt.
// Built fresh per generation request, never persisted.
type CandidateRecipe struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Description     string                `json:"description,omitempty"`
	Cuisine         string                `json:"cuisine,omitempty"`
	PrepTimeMinutes int                   `json:"prepTimeMinutes,omitempty"`
	MealType        string                `json:"mealType,omitempty"`
	Calories        float64               `json:"calories"`
	Protein         float64               `json:"protein"`
	Carbs           float64               `json:"carbs"`
	Fat             float64               `json:"fat"`
	Tags            []string              `json:"tags,omitempty"`
	Ingredients     []CandidateIngredient `json:"ingredients"`
	IsLikedByUser   bool                  `json:"isLikedByUser"`
}

// buildCandidateSet assembles the bounded recipe pool shown to the model:
// every liked recipe first, then a random sample excluding dislikes. Liked
// recipes are never filtered out; they are tagged so the model knows about
// them without being forced to reselect them.
func (p *Planner) buildCandidateSet(ctx context.Context, prof *profile.Profile) ([]CandidateRecipe, error) {
	liked, err := p.catalog.GetByIDs(ctx, prof.Likes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch liked recipes: %w", err)
	}

	sampled, err := p.catalog.SampleExcluding(ctx, prof.Dislikes, CandidateSampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to sample candidate recipes: %w", err)
	}

	likedSet := make(map[string]struct{}, len(liked))
	for _, r := range liked {
		likedSet[r.ID] = struct{}{}
	}

	// One ingredient lookup for the whole pool.
	var ingredientIDs []string
	seen := make(map[string]struct{})
	collect := func(recipes []recipe.Recipe) {
		for _, r := range recipes {
			for _, ri := range r.Ingredients {
				if _, ok := seen[ri.IngredientID]; ok {
					continue
				}
				seen[ri.IngredientID] = struct{}{}
				ingredientIDs = append(ingredientIDs, ri.IngredientID)
			}
		}
	}
	collect(liked)
	collect(sampled)

	ingredients, err := p.catalog.IngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate ingredients: %w", err)
	}
	ingredientByID := make(map[string]recipe.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		ingredientByID[ing.ID] = ing
	}

	candidates := make([]CandidateRecipe, 0, len(liked)+len(sampled))
	for _, r := range liked {
		candidates = append(candidates, projectCandidate(r, ingredientByID, true))
	}
	for _, r := range sampled {
		if _, ok := likedSet[r.ID]; ok {
			continue
		}
		candidates = append(candidates, projectCandidate(r, ingredientByID, false))
	}

	return candidates, nil
}

func projectCandidate(r recipe.Recipe, ingredientByID map[string]recipe.Ingredient, liked bool) CandidateRecipe {
	ingredients := make([]CandidateIngredient, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		// A dangling ingredient reference projects to empty fields rather
		// than failing the sample.
		ing := ingredientByID[ri.IngredientID]
		ingredients = append(ingredients, CandidateIngredient{
			Name:     ing.Name,
			Category: ing.Category,
		})
	}

	return CandidateRecipe{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Cuisine:         r.Cuisine,
		PrepTimeMinutes: r.PrepTimeMinutes,
		MealType:        r.MealType,
		Calories:        r.Macro("calories"),
		Protein:         r.Macro("protein"),
		Carbs:           r.Macro("carbs"),
		Fat:             r.Macro("fat"),
		Tags:            r.Tags,
		Ingredients:     ingredients,
		IsLikedByUser:   liked,
	}
}
