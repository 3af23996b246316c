package main

import (
	"errors"
	"math"
)

var (
	errUnknownPersona  = errors.New("unknown persona")
	errUnknownGoalType = errors.New("unknown goal type")
)

// parseGoalType validates a caller-supplied goal type override.
func parseGoalType(s string) (goalType, error) {
	gt := goalType(s)
	if !validGoalTypes[gt] {
		return "", errUnknownGoalType
	}
	return gt, nil
}

// maintainBandKG: weight deltas under 2 kg count as maintenance everywhere —
// the resolver, and the caloric adjustment below.
const maintainBandKG = 2.0

// resolveGoalType picks the goal type from the weight delta and persona.
// Diabetes has a single fixed policy (always maintain) — a deliberate product
// decision, preserved as-is.
func resolveGoalType(currentKG, targetKG float64, p persona) goalType {
	if math.Abs(targetKG-currentKG) < maintainBandKG {
		return goalMaintain
	}
	switch p {
	case personaGym:
		if targetKG > currentKG {
			return goalBulk
		}
		return goalCut
	case personaGeneral:
		if targetKG > currentKG {
			return goalWeightGain
		}
		return goalWeightLoss
	default: // diabetes
		return goalMaintain
	}
}

// Caloric target clamps. Ceiling is relative to TDEE; the floor depends on
// persona (diabetes gets the higher medical floor).
const (
	calorieCeilingFactor = 1.4
	calorieFloorDefault  = 1200
	calorieFloorDiabetes = 1400
)

// personaCalorieFloor returns the minimum safe daily calorie target.
func personaCalorieFloor(p persona) int {
	if p == personaDiabetes {
		return calorieFloorDiabetes
	}
	return calorieFloorDefault
}

// caloricTarget applies the deficit/surplus policy to TDEE. The ordering is a
// behavioral contract: raw adjustment from the weight delta, then persona
// scaling, then a single clamp to [floor, tdee*1.4], then rounding.
func caloricTarget(tdee int, currentKG, targetKG float64, p persona, gt goalType) int {
	delta := targetKG - currentKG

	var adjustment float64
	switch {
	case math.Abs(delta) < maintainBandKG:
		adjustment = 0
	case delta < 0:
		// Losing: weekly rate capped at 1 kg/week.
		weeklyRate := math.Min(math.Abs(delta)*0.1, 1.0)
		adjustment = -500 * weeklyRate
	default:
		// Gaining: weekly rate capped at 0.5 kg/week.
		weeklyRate := math.Min(delta*0.1, 0.5)
		adjustment = 500 * weeklyRate
	}

	// Persona scaling after the raw adjustment, before the clamp.
	if p == personaDiabetes {
		adjustment *= 0.8
	}
	if p == personaGym && gt == goalBulk {
		adjustment *= 1.2
	}

	raw := float64(tdee) + adjustment
	floor := float64(personaCalorieFloor(p))
	ceiling := float64(tdee) * calorieCeilingFactor
	if raw < floor {
		raw = floor
	}
	if raw > ceiling {
		raw = ceiling
	}
	return int(math.Round(raw))
}

/* ─── Orchestration ──────────────────────────────────────────────────── */

// computeNutritionGoals is the single pipeline behind both public entry
// points: validate → BMR → (static|activity) TDEE → resolve goal type →
// caloric target → macro allocation → assemble. Pure — no I/O, no shared
// state; identical inputs yield identical outputs.
func computeNutritionGoals(p userProfile, activity *activitySample, goalOverride string) (nutritionGoals, error) {
	vp, err := validateProfile(p)
	if err != nil {
		return nutritionGoals{}, err
	}
	if activity != nil {
		if err := validateActivitySample(*activity); err != nil {
			return nutritionGoals{}, err
		}
	}

	bmr := mifflinStJeorBMR(vp.WeightKG, vp.HeightCM, vp.Age, vp.Gender)

	var (
		tdee            int
		activityMult    *float64
		isActivityBased bool
	)
	if activity != nil {
		t, m := activityTDEE(bmr, *activity)
		tdee, activityMult, isActivityBased = t, &m, true
	} else {
		tdee = staticTDEE(bmr, defaultActivityMultiplier)
	}

	gt := resolveGoalType(vp.WeightKG, vp.TargetWeightKG, vp.Persona)
	if goalOverride != "" {
		gt, err = parseGoalType(goalOverride)
		if err != nil {
			return nutritionGoals{}, err
		}
	}

	calories := caloricTarget(tdee, vp.WeightKG, vp.TargetWeightKG, vp.Persona, gt)

	carbsG, proteinG, fatG, split, err := allocateMacros(calories, vp.Persona, gt)
	if err != nil {
		return nutritionGoals{}, err
	}

	return nutritionGoals{
		UserID:             p.UserID,
		DailyCalories:      calories,
		DailyCarbsG:        carbsG,
		DailyFatsG:         fatG,
		DailyProteinsG:     proteinG,
		BMR:                bmr,
		TDEE:               tdee,
		CarbsPct:           split.Carbs,
		ProteinPct:         split.Protein,
		FatPct:             split.Fat,
		GoalType:           string(gt),
		ActivityMultiplier: activityMult,
		IsActivityBased:    isActivityBased,
		MacroPercentages:   split,
	}, nil
}

// computeGoals is the static-activity entry point: TDEE uses the default
// "moderately active" multiplier. goalOverride may be "" to use the resolver.
func computeGoals(p userProfile, goalOverride string) (nutritionGoals, error) {
	return computeNutritionGoals(p, nil, goalOverride)
}

// computeGoalsWithActivity is the activity-aware entry point: TDEE is derived
// from the supplied device-activity aggregate.
func computeGoalsWithActivity(p userProfile, a activitySample, goalOverride string) (nutritionGoals, error) {
	return computeNutritionGoals(p, &a, goalOverride)
}
