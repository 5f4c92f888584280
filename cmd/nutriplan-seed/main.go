package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"nutriplan/internal/config"
	"nutriplan/internal/database"
	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

// fixture is the JSON shape the seed command loads into the catalog.
type fixture struct {
	Ingredients []recipe.Ingredient `json:"ingredients"`
	Recipes     []recipe.Recipe     `json:"recipes"`
	Profiles    []profile.Profile   `json:"profiles"`
}

func main() {
	fixturePath := flag.String("fixture", "fixtures/catalog.json", "path to the catalog fixture JSON")
	flag.Parse()

	ctx := context.Background()

	// Seeding only touches the database, so the full config with its auth and
	// LLM requirements stays out of the way.
	db, err := database.NewDB(config.DatabasePathFromEnv())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	raw, err := os.ReadFile(*fixturePath)
	if err != nil {
		log.Fatalf("Failed to read fixture %s: %v", *fixturePath, err)
	}

	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		log.Fatalf("Failed to parse fixture: %v", err)
	}

	recipeRepo := recipe.NewRepository(db.SQL)
	profileRepo := profile.NewRepository(db.SQL)

	for _, ing := range fx.Ingredients {
		if ing.ID == "" {
			ing.ID = uuid.NewString()
		}
		if err := recipeRepo.SaveIngredient(ctx, ing); err != nil {
			log.Fatalf("Failed to save ingredient %q: %v", ing.Name, err)
		}
	}

	for _, rec := range fx.Recipes {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if err := recipeRepo.Save(ctx, rec); err != nil {
			log.Fatalf("Failed to save recipe %q: %v", rec.Name, err)
		}
	}

	for _, p := range fx.Profiles {
		if p.UserID == "" {
			log.Fatalf("Profile without userId in fixture")
		}
		if err := profileRepo.Upsert(ctx, p); err != nil {
			log.Fatalf("Failed to save profile %q: %v", p.UserID, err)
		}
	}

	count, err := recipeRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count recipes: %v", err)
	}

	fmt.Printf("Seeded %d ingredients, %d recipes, %d profiles (catalog now holds %d recipes).\n",
		len(fx.Ingredients), len(fx.Recipes), len(fx.Profiles), count)
}
