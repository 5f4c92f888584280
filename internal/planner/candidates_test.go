package planner

import (
	"context"
	"testing"

	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

func TestBuildCandidateSet(t *testing.T) {
	ctx := context.Background()

	liked := recipe.Recipe{
		ID:   "R1",
		Name: "Oatmeal",
		Ingredients: []recipe.RecipeIngredient{
			{IngredientID: "I1", Amount: 80, Unit: "g"},
			{IngredientID: "GONE", Amount: 1, Unit: "tbsp"},
		},
	}
	sampled := recipe.Recipe{ID: "R3", Name: "Salad"}
	disliked := recipe.Recipe{ID: "R2", Name: "Liver Stew"}

	catalog := &fakeCatalog{
		recipes: map[string]recipe.Recipe{"R1": liked, "R2": disliked, "R3": sampled},
		ingredients: map[string]recipe.Ingredient{
			"I1": {ID: "I1", Name: "Oats", Category: "grains"},
		},
		samplePool: []recipe.Recipe{disliked, sampled},
	}
	p := newTestPlanner(t, catalog, &fakeProfiles{}, &fakePlans{plans: map[string]*StoredPlan{}}, &scriptedTextGenerator{})

	prof := &profile.Profile{
		UserID:   "u1",
		Likes:    []string{"R1"},
		Dislikes: []string{"R2"},
	}

	candidates, err := p.buildCandidateSet(ctx, prof)
	if err != nil {
		t.Fatalf("buildCandidateSet failed: %v", err)
	}

	t.Run("LikedAlwaysIncludedAndTagged", func(t *testing.T) {
		if len(candidates) == 0 || candidates[0].ID != "R1" {
			t.Fatalf("Expected liked recipe first, got %+v", candidates)
		}
		if !candidates[0].IsLikedByUser {
			t.Error("Expected liked recipe to be tagged isLikedByUser")
		}
	})

	t.Run("DislikedNeverSampled", func(t *testing.T) {
		for _, c := range candidates {
			if c.ID == "R2" {
				t.Fatalf("Disliked recipe R2 must not appear in the candidate set")
			}
		}
		if len(catalog.lastExcluded) != 1 || catalog.lastExcluded[0] != "R2" {
			t.Errorf("Expected sampling to exclude dislikes, excluded %v", catalog.lastExcluded)
		}
	})

	t.Run("SampledNotTagged", func(t *testing.T) {
		var found bool
		for _, c := range candidates {
			if c.ID == "R3" {
				found = true
				if c.IsLikedByUser {
					t.Error("Sampled recipe must not be tagged as liked")
				}
			}
		}
		if !found {
			t.Error("Expected sampled recipe R3 in the candidate set")
		}
	})

	t.Run("DanglingIngredientProjectsEmpty", func(t *testing.T) {
		ings := candidates[0].Ingredients
		if len(ings) != 2 {
			t.Fatalf("Expected 2 projected ingredients, got %d", len(ings))
		}
		if ings[0].Name != "Oats" || ings[0].Category != "grains" {
			t.Errorf("Unexpected first ingredient projection: %+v", ings[0])
		}
		if ings[1].Name != "" || ings[1].Category != "" {
			t.Errorf("Expected empty projection for dangling reference, got %+v", ings[1])
		}
	})
}

func TestBuildCandidateSetDedupesLikedFromSample(t *testing.T) {
	ctx := context.Background()

	r1 := recipe.Recipe{ID: "R1", Name: "Oatmeal"}
	catalog := &fakeCatalog{
		recipes:    map[string]recipe.Recipe{"R1": r1},
		samplePool: []recipe.Recipe{r1},
	}
	p := newTestPlanner(t, catalog, &fakeProfiles{}, &fakePlans{plans: map[string]*StoredPlan{}}, &scriptedTextGenerator{})

	candidates, err := p.buildCandidateSet(ctx, &profile.Profile{Likes: []string{"R1"}})
	if err != nil {
		t.Fatalf("buildCandidateSet failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("Expected liked recipe to appear once, got %d entries", len(candidates))
	}
	if !candidates[0].IsLikedByUser {
		t.Error("Expected the single entry to carry the liked tag")
	}
}
