package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// slotRef is the normalized form of one slot value in the model's response.
// The raw value may be a bare recipe ID string or an object carrying
// {id|_id, reason}; normalizeSlotRef is the single place that union is decoded.
type slotRef struct {
	ID     string
	Reason string
}

// DraftDay is one day of the parsed, not-yet-reconciled plan.
type DraftDay struct {
	Day   string
	Slots map[string]slotRef
}

// PlanDraft is the parsed model output, ordered by canonical day position.
// Untrusted until reconciled against the catalog.
type PlanDraft struct {
	Days []DraftDay
}

// ParsePlanResponse strictly parses the model's response text. Any failure
// here is terminal for the generation request; there is no partial-credit
// recovery from malformed or prose-wrapped output.
func ParsePlanResponse(raw string) (*PlanDraft, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanParse, err)
	}

	// The day structure may sit at the top level or nested one level under a
	// known key; both shapes are accepted.
	for _, key := range []string{"mealPlan", "plan"} {
		nested, ok := top[key]
		if !ok {
			continue
		}
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(nested, &inner); err == nil {
			top = inner
		}
		break
	}

	dayByLabel := make(map[string]json.RawMessage, len(top))
	for key, value := range top {
		if label, ok := normalizeDayKey(key); ok {
			dayByLabel[label] = value
		}
	}

	draft := &PlanDraft{}
	for _, label := range DayLabels {
		rawDay, ok := dayByLabel[label]
		if !ok {
			continue
		}

		var meals map[string]json.RawMessage
		if err := json.Unmarshal(rawDay, &meals); err != nil {
			return nil, fmt.Errorf("%w: day %q is not an object", ErrPlanParse, label)
		}

		day := DraftDay{Day: label, Slots: make(map[string]slotRef)}
		for _, mealType := range MealTypes {
			rawSlot, ok := meals[mealType]
			if !ok {
				// Missing meal-type keys are simply omitted for that day.
				continue
			}
			ref, ok := normalizeSlotRef(rawSlot)
			if !ok {
				continue
			}
			day.Slots[mealType] = ref
		}
		draft.Days = append(draft.Days, day)
	}

	if len(draft.Days) == 0 {
		return nil, fmt.Errorf("%w: no recognizable day structure", ErrPlanParse)
	}

	return draft, nil
}

// normalizeDayKey maps a response day key onto a canonical label. Full
// weekday names are accepted by prefix ("Monday" -> "Mon").
func normalizeDayKey(key string) (string, bool) {
	trimmed := strings.TrimSpace(key)
	for _, label := range DayLabels {
		if strings.EqualFold(trimmed, label) || strings.HasPrefix(strings.ToLower(trimmed), strings.ToLower(label)) {
			return label, true
		}
	}
	return "", false
}

func normalizeSlotRef(raw json.RawMessage) (slotRef, bool) {
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		if id == "" {
			return slotRef{}, false
		}
		return slotRef{ID: id}, true
	}

	var obj struct {
		ID       string `json:"id"`
		LegacyID string `json:"_id"`
		Reason   string `json:"reason"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return slotRef{}, false
	}

	ref := slotRef{ID: obj.ID, Reason: obj.Reason}
	if ref.ID == "" {
		ref.ID = obj.LegacyID
	}
	if ref.ID == "" {
		return slotRef{}, false
	}
	return ref, true
}

// reconcile resolves every referenced recipe ID against the catalog in one
// batch query and builds the week-plan day structure. An identifier that
// fails to resolve leaves its slot unresolved (empty recipe ID); it never
// aborts the request.
func (p *Planner) reconcile(ctx context.Context, draft *PlanDraft) ([]DayPlan, error) {
	var ids []string
	seen := make(map[string]struct{})
	for _, day := range draft.Days {
		for _, ref := range day.Slots {
			if _, ok := seen[ref.ID]; ok {
				continue
			}
			seen[ref.ID] = struct{}{}
			ids = append(ids, ref.ID)
		}
	}

	resolved, err := p.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plan recipes: %w", err)
	}
	exists := make(map[string]struct{}, len(resolved))
	for _, r := range resolved {
		exists[r.ID] = struct{}{}
	}

	days := make([]DayPlan, 0, len(draft.Days))
	for _, draftDay := range draft.Days {
		day := DayPlan{Day: draftDay.Day, Meals: make(map[string]MealSlot)}
		for mealType, ref := range draftDay.Slots {
			slot := MealSlot{Reason: ref.Reason}
			if slot.Reason == "" {
				slot.Reason = DefaultReason
			}
			if _, ok := exists[ref.ID]; ok {
				slot.RecipeID = ref.ID
			} else {
				p.log.Warn("dropping unresolved recipe reference",
					"recipeId", ref.ID, "day", draftDay.Day, "mealType", mealType)
			}
			day.Meals[mealType] = slot
		}
		days = append(days, day)
	}

	return days, nil
}
