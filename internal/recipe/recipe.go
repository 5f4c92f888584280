package recipe

// Nutrient is a single nutrient value with its unit, e.g. {52, "kcal"}.
type Nutrient struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// RecipeIngredient is one line of a recipe's ingredient list. IngredientID
// references an Ingredient document; the reference may dangle if the
// ingredient was deleted after the recipe was written.
type RecipeIngredient struct {
	IngredientID string  `json:"ingredientId"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
	Optional     bool    `json:"optional,omitempty"`
}

// Recipe is a catalog recipe document.
type Recipe struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	Cuisine         string              `json:"cuisine,omitempty"`
	MealType        string              `json:"mealType,omitempty"`
	PrepTimeMinutes int                 `json:"prepTimeMinutes,omitempty"`
	EstimatedPrice  float64             `json:"estimatedPrice,omitempty"`
	Tags            []string            `json:"tags,omitempty"`
	Nutrients       map[string]Nutrient `json:"nutrients,omitempty"`
	Ingredients     []RecipeIngredient  `json:"ingredients,omitempty"`
	UpdatedAt       string              `json:"updatedAt,omitempty"`
}

// Ingredient is a catalog ingredient document.
type Ingredient struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Category         string              `json:"category,omitempty"`
	NutrientsPer100g map[string]Nutrient `json:"nutrientsPer100g,omitempty"`
	PricePer100g     float64             `json:"pricePer100g,omitempty"`
}

// Macro returns a flat macro value from the recipe's nutrient map,
// defaulting to zero when the key is missing.
func (r Recipe) Macro(key string) float64 {
	if n, ok := r.Nutrients[key]; ok {
		return n.Value
	}
	return 0
}
