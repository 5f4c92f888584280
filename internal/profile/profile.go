package profile

import (
	"encoding/json"
)

// Goals decodes from either a single JSON string or an array of strings;
// older profile documents stored a single goal.
type Goals []string

func (g *Goals) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*g = nil
		} else {
			*g = Goals{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*g = Goals(many)
	return nil
}

// Profile is a user's quiz profile. The planning pipeline only reads it.
type Profile struct {
	UserID             string   `json:"userId"`
	Age                int      `json:"age,omitempty"`
	Gender             string   `json:"gender,omitempty"`
	HeightCM           float64  `json:"height,omitempty"`
	WeightKG           float64  `json:"weight,omitempty"`
	ActivityLevel      string   `json:"activityLevel,omitempty"`
	StressLevel        string   `json:"stressLevel,omitempty"`
	Goal               Goals    `json:"goal,omitempty"`
	Diet               string   `json:"diet,omitempty"`
	FoodPreferences    []string `json:"foodPreferences,omitempty"`
	Allergies          []string `json:"allergies,omitempty"`
	Intolerances       []string `json:"intolerances,omitempty"`
	Budget             float64  `json:"budget,omitempty"`
	BodyFatPercentage  float64  `json:"bodyFatPercentage,omitempty"`
	WaistCircumference float64  `json:"waistCircumference,omitempty"`
	SleepQuality       string   `json:"sleepQuality,omitempty"`
	CookingSkill       string   `json:"cookingSkill,omitempty"`
	Conditions         []string `json:"conditions,omitempty"`
	Medications        []string `json:"medications,omitempty"`
	Likes              []string `json:"likes,omitempty"`
	Dislikes           []string `json:"dislikes,omitempty"`
}
