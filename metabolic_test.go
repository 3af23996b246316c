package main

import (
	"math"
	"testing"
)

/* ─── BMR tests ──────────────────────────────────────────────────────── */

// TestMifflinStJeorBMR verifies each gender offset branch independently
// against hand-computed values: base = 10*70 + 6.25*175 - 5*30 = 1643.75,
// then +5 / -161 / -78.
func TestMifflinStJeorBMR(t *testing.T) {
	cases := []struct {
		gender string
		want   int
	}{
		{"male", 1649},
		{"female", 1483},
		{"other", 1566},
	}

	for _, tc := range cases {
		t.Run(tc.gender, func(t *testing.T) {
			got := mifflinStJeorBMR(70, 175, 30, tc.gender)
			if got != tc.want {
				t.Errorf("BMR(70, 175, 30, %q) = %d, want %d", tc.gender, got, tc.want)
			}
		})
	}
}

// TestMifflinStJeorBMR_UnrecognizedGender verifies that any gender string
// outside male/female takes the midpoint offset, same as "other".
func TestMifflinStJeorBMR_UnrecognizedGender(t *testing.T) {
	if got, want := mifflinStJeorBMR(70, 175, 30, "unspecified"), 1566; got != want {
		t.Errorf("BMR with unrecognized gender = %d, want %d", got, want)
	}
}

/* ─── Static TDEE tests ──────────────────────────────────────────────── */

// TestStaticTDEE_Default pins the default moderately-active multiplier:
// round(1649 * 1.55) = 2556.
func TestStaticTDEE_Default(t *testing.T) {
	if got := staticTDEE(1649, defaultActivityMultiplier); got != 2556 {
		t.Errorf("staticTDEE(1649, 1.55) = %d, want 2556", got)
	}
}

// TestStaticTDEE_ClampsMultiplier verifies out-of-range multipliers are pulled
// into [1.2, 2.0] before scaling.
func TestStaticTDEE_ClampsMultiplier(t *testing.T) {
	cases := []struct {
		name       string
		multiplier float64
		want       int
	}{
		{"below floor", 0.5, 1200}, // 1000 * 1.2
		{"above ceiling", 3.0, 2000},
		{"in range", 1.5, 1500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := staticTDEE(1000, tc.multiplier); got != tc.want {
				t.Errorf("staticTDEE(1000, %v) = %d, want %d", tc.multiplier, got, tc.want)
			}
		})
	}
}

/* ─── Activity-aware TDEE tests ──────────────────────────────────────── */

// TestActivityTDEE_MultiFactor pins a non-trivial example where all four
// additive terms contribute and the sum stays inside the clamp:
// 1.2 + 0.0001*(6000-2000) + 0.005*(90-30) + 0.05*(7/7) + 0.1*(400/1600)
// = 1.2 + 0.4 + 0.3 + 0.05 + 0.025 = 1.975; tdee = round(1600*1.975) = 3160.
func TestActivityTDEE_MultiFactor(t *testing.T) {
	sample := activitySample{Steps: 6000, ActiveMinutes: 90, ExerciseCalories: 400, WeeklyExerciseSessions: 7}
	tdee, m := activityTDEE(1600, sample)
	if math.Abs(m-1.975) > 1e-9 {
		t.Errorf("multiplier = %v, want 1.975", m)
	}
	if tdee != 3160 {
		t.Errorf("tdee = %d, want 3160", tdee)
	}
}

// TestActivityTDEE_PartialFactors pins a second example with fractional
// session contribution: 1.2 + 0.2 + 0.075 + 0.05*(3/7) + 0.1*(320/1600)
// ≈ 1.516428; tdee = round(1600 * 1.516428...) = 2426.
func TestActivityTDEE_PartialFactors(t *testing.T) {
	sample := activitySample{Steps: 4000, ActiveMinutes: 45, ExerciseCalories: 320, WeeklyExerciseSessions: 3}
	tdee, m := activityTDEE(1600, sample)
	want := 1.2 + 0.2 + 0.075 + 0.05*(3.0/7.0) + 0.02
	if math.Abs(m-want) > 1e-9 {
		t.Errorf("multiplier = %v, want %v", m, want)
	}
	if tdee != 2426 {
		t.Errorf("tdee = %d, want 2426", tdee)
	}
}

// TestActivityTDEE_BelowBaselines verifies that steps under 2000 and active
// minutes under 30 contribute nothing — the multiplier stays sedentary.
func TestActivityTDEE_BelowBaselines(t *testing.T) {
	sample := activitySample{Steps: 1500, ActiveMinutes: 20}
	tdee, m := activityTDEE(1600, sample)
	if m != sedentaryMultiplier {
		t.Errorf("multiplier = %v, want %v", m, sedentaryMultiplier)
	}
	if tdee != 1920 { // round(1600 * 1.2)
		t.Errorf("tdee = %d, want 1920", tdee)
	}
}

// TestActivityTDEE_PathologicalInputsClamp verifies the single final clamp
// holds for absurd device data — a million steps and active minutes cannot
// push the multiplier past 2.0.
func TestActivityTDEE_PathologicalInputsClamp(t *testing.T) {
	sample := activitySample{
		Steps:                  1_000_000,
		ActiveMinutes:          1_000_000,
		ExerciseCalories:       50_000,
		WeeklyExerciseSessions: 100,
	}
	tdee, m := activityTDEE(1600, sample)
	if m != maxActivityMultiplier {
		t.Errorf("multiplier = %v, want clamped to %v", m, maxActivityMultiplier)
	}
	if tdee != 3200 {
		t.Errorf("tdee = %d, want 3200", tdee)
	}
}

// TestActivityTDEE_MultiplierAlwaysInRange sweeps a grid of inputs and checks
// the output multiplier never leaves [1.2, 2.0].
func TestActivityTDEE_MultiplierAlwaysInRange(t *testing.T) {
	for _, steps := range []int{0, 2000, 10_000, 500_000} {
		for _, minutes := range []int{0, 30, 120, 10_000} {
			for _, sessions := range []int{0, 3, 7, 50} {
				for _, cal := range []int{0, 300, 5000} {
					sample := activitySample{Steps: steps, ActiveMinutes: minutes, ExerciseCalories: cal, WeeklyExerciseSessions: sessions}
					_, m := activityTDEE(1500, sample)
					if m < sedentaryMultiplier || m > maxActivityMultiplier {
						t.Fatalf("multiplier %v out of range for sample %+v", m, sample)
					}
				}
			}
		}
	}
}
