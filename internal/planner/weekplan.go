package planner

import "time"

// CandidateSampleSize is how many recipes are randomly sampled into the
// candidate set on top of the user's liked recipes. Shared by generation;
// independent of catalog size.
const CandidateSampleSize = 30

// DayLabels maps day index 0-6 to its label. Shared between generation
// (prompt contract) and materialization (positional day naming).
var DayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// MealTypes are the four fixed slot keys of a day, in output order.
var MealTypes = [4]string{"breakfast", "lunch", "dinner", "snack"}

// DefaultReason is used when the model selected a recipe without saying why.
const DefaultReason = "Selected to match your profile."

// MealSlot is one (day, meal-type) cell of a stored plan. An empty RecipeID
// marks a slot whose identifier failed reconciliation; materialization skips it.
type MealSlot struct {
	RecipeID string `json:"recipeId"`
	Reason   string `json:"reason,omitempty"`
}

// DayPlan holds the slots of a single day, keyed by meal type.
type DayPlan struct {
	Day   string              `json:"day"`
	Meals map[string]MealSlot `json:"meals"`
}

// StoredPlan is the persisted week plan. Exactly one exists per user; it is
// replaced wholesale on regeneration and is the unit of persistence.
type StoredPlan struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Days      []DayPlan `json:"days"`
	CreatedAt time.Time `json:"createdAt"`
}
