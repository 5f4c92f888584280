package planner

import "errors"

var (
	// ErrProfileNotFound aborts generation before any candidate is built.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrPlanNotFound is returned when a user has no stored week plan.
	ErrPlanNotFound = errors.New("meal plan not found")

	// ErrPlanParse wraps any failure to extract a day/meal structure from the
	// model's response. Terminal for the whole generation request.
	ErrPlanParse = errors.New("failed to parse meal plan response")

	// ErrUnknownDay is returned by ChangeMeal when the day is not a key of the
	// stored plan.
	ErrUnknownDay = errors.New("day not present in stored plan")

	// ErrUnknownMealType is returned by ChangeMeal for a meal type outside the
	// four fixed slot keys.
	ErrUnknownMealType = errors.New("unknown meal type")

	// ErrRecipeNotFound is returned by ChangeMeal when the replacement recipe
	// does not exist in the catalog.
	ErrRecipeNotFound = errors.New("recipe not found")
)
