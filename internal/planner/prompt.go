package planner

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"text/template"

	"nutriplan/internal/profile"
)

//go:embed mealplan_prompt.md
var mealPlanPrompt string

// promptData carries the two placeholder values of the prompt template.
// The placeholder names are part of the contract with the template asset.
type promptData struct {
	UserProfile string
	Recipes     string
}

// profileSummary is the deliberate subset of the profile serialized into the
// prompt. Liked/disliked ID sets stay out; they already shaped the candidate
// set. The filtering is a privacy and token-budget decision.
type profileSummary struct {
	Age                int           `json:"age,omitempty"`
	Gender             string        `json:"gender,omitempty"`
	HeightCM           float64       `json:"heightCm,omitempty"`
	WeightKG           float64       `json:"weightKg,omitempty"`
	ActivityLevel      string        `json:"activityLevel,omitempty"`
	Goals              profile.Goals `json:"goals,omitempty"`
	Diet               string        `json:"diet,omitempty"`
	FoodPreferences    []string      `json:"foodPreferences,omitempty"`
	Allergies          []string      `json:"allergies,omitempty"`
	Intolerances       []string      `json:"intolerances,omitempty"`
	WeeklyBudget       float64       `json:"weeklyBudget,omitempty"`
	BodyFatPercentage  float64       `json:"bodyFatPercentage,omitempty"`
	WaistCircumference float64       `json:"waistCircumference,omitempty"`
	SleepQuality       string        `json:"sleepQuality,omitempty"`
	CookingSkill       string        `json:"cookingSkill,omitempty"`
	Conditions         []string      `json:"conditions,omitempty"`
	Medications        []string      `json:"medications,omitempty"`
}

func summarizeProfile(p *profile.Profile) profileSummary {
	return profileSummary{
		Age:                p.Age,
		Gender:             p.Gender,
		HeightCM:           p.HeightCM,
		WeightKG:           p.WeightKG,
		ActivityLevel:      p.ActivityLevel,
		Goals:              p.Goal,
		Diet:               p.Diet,
		FoodPreferences:    p.FoodPreferences,
		Allergies:          p.Allergies,
		Intolerances:       p.Intolerances,
		WeeklyBudget:       p.Budget,
		BodyFatPercentage:  p.BodyFatPercentage,
		WaistCircumference: p.WaistCircumference,
		SleepQuality:       p.SleepQuality,
		CookingSkill:       p.CookingSkill,
		Conditions:         p.Conditions,
		Medications:        p.Medications,
	}
}

// BuildMealPlanPrompt renders the prompt template with the JSON-serialized
// profile summary and candidate list. Substitution is literal; there is no
// escaping beyond JSON serialization.
func BuildMealPlanPrompt(p *profile.Profile, candidates []CandidateRecipe) (string, error) {
	profileJSON, err := json.Marshal(summarizeProfile(p))
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile summary: %w", err)
	}

	recipesJSON, err := json.Marshal(candidates)
	if err != nil {
		return "", fmt.Errorf("failed to marshal candidate recipes: %w", err)
	}

	tmpl, err := template.New("mealplan").Parse(mealPlanPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{
		UserProfile: string(profileJSON),
		Recipes:     string(recipesJSON),
	}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
