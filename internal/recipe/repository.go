package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	db "nutriplan/internal/recipe/db"
)

// Repository is a database-backed accessor for the recipe and ingredient catalog.
// The planning pipeline treats it as read-only; Save/SaveIngredient exist for
// the seed path.
type Repository struct {
	queries *db.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: db.New(d),
		db:      d,
	}
}

// Save inserts or updates a recipe in the database.
func (r *Repository) Save(ctx context.Context, rec Recipe) error {
	recipeJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe to JSON: %w", err)
	}

	return r.queries.InsertRecipe(ctx, db.InsertRecipeParams{
		ID:        rec.ID,
		Data:      string(recipeJSON),
		UpdatedAt: time.Now().UTC(),
	})
}

// SaveIngredient inserts or updates an ingredient in the database.
func (r *Repository) SaveIngredient(ctx context.Context, ing Ingredient) error {
	ingredientJSON, err := json.Marshal(ing)
	if err != nil {
		return fmt.Errorf("failed to marshal ingredient to JSON: %w", err)
	}

	return r.queries.InsertIngredient(ctx, db.InsertIngredientParams{
		ID:        ing.ID,
		Data:      string(ingredientJSON),
		UpdatedAt: time.Now().UTC(),
	})
}

// Get retrieves a recipe by its ID. Returns nil when the recipe does not exist.
func (r *Repository) Get(ctx context.Context, id string) (*Recipe, error) {
	dbRecipe, err := r.queries.GetRecipeByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	var rec Recipe
	if err := json.Unmarshal([]byte(dbRecipe.Data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe JSON: %w", err)
	}

	return &rec, nil
}

// GetByIDs retrieves multiple recipes by their IDs in one query. IDs that do
// not resolve are simply absent from the result.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	dbRecipes, err := r.queries.GetRecipesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipes by IDs: %w", err)
	}

	return decodeRecipes(dbRecipes)
}

// SampleExcluding returns an approximately uniform random sample of up to n
// recipes, never including any of the excluded IDs.
func (r *Repository) SampleExcluding(ctx context.Context, excludeIDs []string, n int) ([]Recipe, error) {
	if len(excludeIDs) == 0 {
		// sqlc renders an empty slice as NULL and NOT IN (NULL) matches no
		// rows; a blank ID never exists, so this excludes nothing.
		excludeIDs = []string{""}
	}
	dbRecipes, err := r.queries.SampleRecipesExcluding(ctx, db.SampleRecipesExcludingParams{
		ExcludeIds: excludeIDs,
		Limit:      int64(n),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sample recipes: %w", err)
	}

	return decodeRecipes(dbRecipes)
}

// IngredientsByIDs retrieves multiple ingredients by their IDs in one query.
// Dangling references are absent from the result, not an error.
func (r *Repository) IngredientsByIDs(ctx context.Context, ids []string) ([]Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	dbIngredients, err := r.queries.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients by IDs: %w", err)
	}

	var ingredients []Ingredient
	for _, dbIng := range dbIngredients {
		var ing Ingredient
		if err := json.Unmarshal([]byte(dbIng.Data), &ing); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ingredient JSON for ID %s: %w", dbIng.ID, err)
		}
		ing.ID = dbIng.ID
		ingredients = append(ingredients, ing)
	}
	return ingredients, nil
}

// Count returns the number of recipes in the database.
func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.queries.CountRecipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return int(count), nil
}

func decodeRecipes(dbRecipes []db.Recipe) ([]Recipe, error) {
	var recipes []Recipe
	for _, dbRec := range dbRecipes {
		var rec Recipe
		if err := json.Unmarshal([]byte(dbRec.Data), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipe JSON for ID %s: %w", dbRec.ID, err)
		}
		rec.ID = dbRec.ID
		recipes = append(recipes, rec)
	}
	return recipes, nil
}
