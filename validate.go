package main

import (
	"fmt"
	"strings"
)

/* ─── Typed enums ────────────────────────────────────────────────────── */

// persona selects which goal policy and macro rules apply to a user.
type persona string

const (
	personaDiabetes persona = "diabetes"
	personaGym      persona = "gym"
	personaGeneral  persona = "general"
)

// goalType is a persona-scoped label selecting a macro template and the
// caloric adjustment policy.
type goalType string

const (
	goalMaintain   goalType = "maintain"
	goalBulk       goalType = "bulk"
	goalCut        goalType = "cut"
	goalWeightLoss goalType = "weight_loss"
	goalWeightGain goalType = "weight_gain"
)

var validGenders = map[string]bool{"male": true, "female": true, "other": true}

var validPersonas = map[persona]bool{
	personaDiabetes: true,
	personaGym:      true,
	personaGeneral:  true,
}

var validGoalTypes = map[goalType]bool{
	goalMaintain:   true,
	goalBulk:       true,
	goalCut:        true,
	goalWeightLoss: true,
	goalWeightGain: true,
}

/* ─── Validation error ───────────────────────────────────────────────── */

// validationError aggregates every offending field into one failure — callers
// see the full list, not just the first problem. Messages are formatted as
// "<field>: <human message>".
type validationError struct {
	Messages []string
}

func (e *validationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

/* ─── Biometric bounds ───────────────────────────────────────────────── */

const (
	minAge      = 12
	maxAge      = 120
	minHeightCM = 120.0
	maxHeightCM = 250.0
	minWeightKG = 30.0
	maxWeightKG = 300.0
)

// validatedProfile is a fully-typed profile snapshot: every field present and
// inside its declared range. Only validateProfile constructs one.
type validatedProfile struct {
	Age            int
	Gender         string
	HeightCM       float64
	WeightKG       float64
	TargetWeightKG float64
	Persona        persona
}

// validateProfile checks every biometric field of p against its declared range
// and enum set, collecting one message per violation. Returns a zero
// validatedProfile and a *validationError when anything is off; on success the
// returned snapshot is safe to feed straight into the calculation pipeline.
func validateProfile(p userProfile) (validatedProfile, error) {
	var msgs []string
	var out validatedProfile

	if p.Age == nil {
		msgs = append(msgs, "age: is required")
	} else if *p.Age < minAge || *p.Age > maxAge {
		msgs = append(msgs, fmt.Sprintf("age: must be between %d and %d", minAge, maxAge))
	} else {
		out.Age = *p.Age
	}

	if p.Gender == nil {
		msgs = append(msgs, "gender: is required")
	} else if !validGenders[*p.Gender] {
		msgs = append(msgs, "gender: must be one of: male, female, other")
	} else {
		out.Gender = *p.Gender
	}

	if p.HeightCM == nil {
		msgs = append(msgs, "height_cm: is required")
	} else if *p.HeightCM < minHeightCM || *p.HeightCM > maxHeightCM {
		msgs = append(msgs, fmt.Sprintf("height_cm: must be between %.0f and %.0f", minHeightCM, maxHeightCM))
	} else {
		out.HeightCM = *p.HeightCM
	}

	if p.WeightKG == nil {
		msgs = append(msgs, "weight_kg: is required")
	} else if *p.WeightKG < minWeightKG || *p.WeightKG > maxWeightKG {
		msgs = append(msgs, fmt.Sprintf("weight_kg: must be between %.0f and %.0f", minWeightKG, maxWeightKG))
	} else {
		out.WeightKG = *p.WeightKG
	}

	if p.TargetWeightKG == nil {
		msgs = append(msgs, "target_weight_kg: is required")
	} else if *p.TargetWeightKG < minWeightKG || *p.TargetWeightKG > maxWeightKG {
		msgs = append(msgs, fmt.Sprintf("target_weight_kg: must be between %.0f and %.0f", minWeightKG, maxWeightKG))
	} else {
		out.TargetWeightKG = *p.TargetWeightKG
	}

	if p.Persona == nil {
		msgs = append(msgs, "persona: is required")
	} else if !validPersonas[persona(*p.Persona)] {
		msgs = append(msgs, "persona: must be one of: diabetes, gym, general")
	} else {
		out.Persona = persona(*p.Persona)
	}

	if len(msgs) > 0 {
		return validatedProfile{}, &validationError{Messages: msgs}
	}
	return out, nil
}

// validateActivitySample rejects negative activity fields with the same
// aggregated error shape as validateProfile.
func validateActivitySample(a activitySample) error {
	var msgs []string
	if a.Steps < 0 {
		msgs = append(msgs, "steps: must not be negative")
	}
	if a.ActiveMinutes < 0 {
		msgs = append(msgs, "active_minutes: must not be negative")
	}
	if a.ExerciseCalories < 0 {
		msgs = append(msgs, "exercise_calories: must not be negative")
	}
	if a.WeeklyExerciseSessions < 0 {
		msgs = append(msgs, "weekly_exercise_sessions: must not be negative")
	}
	if len(msgs) > 0 {
		return &validationError{Messages: msgs}
	}
	return nil
}
