package main

import "math"

// Activity multiplier bounds. Every TDEE path clamps its multiplier into
// [sedentaryMultiplier, maxActivityMultiplier] exactly once, at the end.
const (
	sedentaryMultiplier       = 1.2
	defaultActivityMultiplier = 1.55 // "moderately active" — used when no activity data exists
	maxActivityMultiplier     = 2.0
)

// Per-unit contributions for the activity-aware multiplier.
const (
	stepContribution    = 0.0001 // per step above stepBaseline
	stepBaseline        = 2000
	minuteContribution  = 0.005 // per active minute above minuteBaseline
	minuteBaseline      = 30
	sessionContribution = 0.05 // scaled by weekly sessions / 7 (daily average)
	calorieContribution = 0.1  // scaled by exercise calories / BMR
)

// clampMultiplier bounds an activity multiplier to [1.2, 2.0].
func clampMultiplier(m float64) float64 {
	if m < sedentaryMultiplier {
		return sedentaryMultiplier
	}
	if m > maxActivityMultiplier {
		return maxActivityMultiplier
	}
	return m
}

// mifflinStJeorBMR computes basal metabolic rate via Mifflin-St Jeor,
// rounded to the nearest calorie. The gender offsets are +5 (male) and
// -161 (female); any other value gets -78, the numeric midpoint of the two —
// a product simplification, not a medical claim.
func mifflinStJeorBMR(weightKG, heightCM float64, age int, gender string) int {
	base := 10*weightKG + 6.25*heightCM - 5*float64(age)
	switch gender {
	case "male":
		base += 5
	case "female":
		base -= 161
	default:
		base -= 78
	}
	return int(math.Round(base))
}

// staticTDEE scales BMR by a fixed activity multiplier, clamped to the valid
// range. Pass defaultActivityMultiplier when the user has no activity data.
func staticTDEE(bmr int, multiplier float64) int {
	return int(math.Round(float64(bmr) * clampMultiplier(multiplier)))
}

// activityTDEE derives the multiplier from a device-activity aggregate.
// Starting from the sedentary base, four independent additive terms apply in
// order: steps above 2000, active minutes above 30, the daily average of
// weekly exercise sessions, and reported exercise calories dampened relative
// to BMR. The sum is clamped once at the end — never per term, which would
// change results.
func activityTDEE(bmr int, a activitySample) (tdee int, multiplier float64) {
	m := sedentaryMultiplier
	if a.Steps > stepBaseline {
		m += stepContribution * float64(a.Steps-stepBaseline)
	}
	if a.ActiveMinutes > minuteBaseline {
		m += minuteContribution * float64(a.ActiveMinutes-minuteBaseline)
	}
	m += sessionContribution * (float64(a.WeeklyExerciseSessions) / 7)
	m += calorieContribution * (float64(a.ExerciseCalories) / float64(bmr))

	m = clampMultiplier(m)
	return int(math.Round(float64(bmr) * m)), m
}
