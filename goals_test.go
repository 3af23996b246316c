package main

import (
	"errors"
	"reflect"
	"testing"
)

// testProfile builds a complete userProfile value for engine tests.
func testProfile(age int, gender string, heightCM, weightKG, targetKG float64, p string) userProfile {
	return userProfile{
		Age:            &age,
		Gender:         &gender,
		HeightCM:       &heightCM,
		WeightKG:       &weightKG,
		TargetWeightKG: &targetKG,
		Persona:        &p,
	}
}

/* ─── Goal resolver tests ────────────────────────────────────────────── */

func TestResolveGoalType(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		target   float64
		persona  persona
		want     goalType
	}{
		{"within maintain band", 70, 70.5, personaGym, goalMaintain},
		{"gym gaining", 70, 80, personaGym, goalBulk},
		{"gym losing", 80, 70, personaGym, goalCut},
		{"general gaining", 70, 80, personaGeneral, goalWeightGain},
		{"general losing", 80, 70, personaGeneral, goalWeightLoss},
		{"diabetes always maintains", 80, 70, personaDiabetes, goalMaintain},
		{"diabetes gaining still maintains", 70, 90, personaDiabetes, goalMaintain},
		{"band is strict", 70, 72, personaGym, goalBulk}, // delta exactly 2 is outside the band
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveGoalType(tc.current, tc.target, tc.persona)
			if got != tc.want {
				t.Errorf("resolveGoalType(%v, %v, %q) = %q, want %q",
					tc.current, tc.target, tc.persona, got, tc.want)
			}
		})
	}
}

/* ─── Caloric target tests ───────────────────────────────────────────── */

// TestCaloricTarget covers the adjustment policy: rate caps, persona scaling,
// and the maintain band. Ordering (raw adjustment → persona scale → clamp)
// is part of the contract, so expectations are computed by that exact path.
func TestCaloricTarget(t *testing.T) {
	cases := []struct {
		name    string
		tdee    int
		current float64
		target  float64
		persona persona
		goal    goalType
		want    int
	}{
		// |delta| < 2 → no adjustment.
		{"maintain band", 2500, 70, 71, personaGeneral, goalMaintain, 2500},
		// delta -10 → rate min(1.0, 1.0) = 1.0 → -500.
		{"loss at rate cap", 2500, 80, 70, personaGeneral, goalWeightLoss, 2000},
		// delta -5 → rate 0.5 → -250.
		{"moderate loss", 2500, 80, 75, personaGeneral, goalWeightLoss, 2250},
		// delta +10 → rate min(1.0, 0.5) = 0.5 → +250.
		{"gain at rate cap", 2500, 70, 80, personaGeneral, goalWeightGain, 2750},
		// delta +3 → rate 0.3 → +150.
		{"moderate gain", 2500, 70, 73, personaGeneral, goalWeightGain, 2650},
		// gym bulk scales the surplus by 1.2: +250 → +300.
		{"gym bulk surplus scaling", 2500, 70, 80, personaGym, goalBulk, 2800},
		// gym cut gets no scaling.
		{"gym cut unscaled", 2500, 80, 70, personaGym, goalCut, 2000},
		// diabetes scales the deficit by 0.8: -250 → -200.
		{"diabetes conservative deficit", 2240, 80, 75, personaDiabetes, goalMaintain, 2040},
		// raw 900 clamps up to the diabetes floor.
		{"diabetes floor clamp", 1300, 100, 80, personaDiabetes, goalMaintain, 1400},
		// raw 1100 clamps up to the default floor.
		{"default floor clamp", 1600, 100, 80, personaGeneral, goalWeightLoss, 1200},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := caloricTarget(tc.tdee, tc.current, tc.target, tc.persona, tc.goal)
			if got != tc.want {
				t.Errorf("caloricTarget(%d, %v, %v, %q, %q) = %d, want %d",
					tc.tdee, tc.current, tc.target, tc.persona, tc.goal, got, tc.want)
			}
		})
	}
}

/* ─── Orchestrator tests ─────────────────────────────────────────────── */

// TestComputeGoals_DiabetesScenario is the end-to-end pin: age 45, female,
// 165cm, 80kg, target 75kg, diabetes. BMR 1445, TDEE 2240, goal maintain,
// deficit -250 scaled by 0.8 → 2040 calories with the 40/30/30 split.
func TestComputeGoals_DiabetesScenario(t *testing.T) {
	p := testProfile(45, "female", 165, 80, 75, "diabetes")
	g, err := computeGoals(p, "")
	if err != nil {
		t.Fatalf("computeGoals returned error: %v", err)
	}

	if g.BMR != 1445 {
		t.Errorf("BMR = %d, want 1445", g.BMR)
	}
	if g.TDEE != 2240 {
		t.Errorf("TDEE = %d, want 2240", g.TDEE)
	}
	if g.GoalType != "maintain" {
		t.Errorf("goal type = %q, want maintain", g.GoalType)
	}
	if g.DailyCalories != 2040 {
		t.Errorf("daily calories = %d, want 2040", g.DailyCalories)
	}
	if g.DailyCalories < calorieFloorDiabetes {
		t.Errorf("daily calories %d below diabetes floor", g.DailyCalories)
	}
	want := macroSplit{Carbs: 40, Protein: 30, Fat: 30}
	if g.MacroPercentages != want {
		t.Errorf("macro split = %+v, want %+v", g.MacroPercentages, want)
	}
	if g.DailyCarbsG != 204 || g.DailyProteinsG != 153 || g.DailyFatsG != 68 {
		t.Errorf("grams = carbs %d / protein %d / fat %d, want 204 / 153 / 68",
			g.DailyCarbsG, g.DailyProteinsG, g.DailyFatsG)
	}
	if g.IsActivityBased || g.ActivityMultiplier != nil {
		t.Error("static path should not report activity data")
	}
}

// TestComputeGoals_Idempotent verifies two identical calls yield identical
// results — the engine holds no hidden state.
func TestComputeGoals_Idempotent(t *testing.T) {
	p := testProfile(30, "male", 180, 85, 78, "gym")
	first, err1 := computeGoals(p, "")
	second, err2 := computeGoals(p, "")
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}

// TestComputeGoalsWithActivity verifies the activity-aware path reports the
// multiplier and flag, and that the same sample is deterministic.
func TestComputeGoalsWithActivity(t *testing.T) {
	p := testProfile(30, "male", 180, 85, 85, "general")
	sample := activitySample{Steps: 9000, ActiveMinutes: 60, ExerciseCalories: 350, WeeklyExerciseSessions: 4}

	g, err := computeGoalsWithActivity(p, sample, "")
	if err != nil {
		t.Fatalf("computeGoalsWithActivity returned error: %v", err)
	}
	if !g.IsActivityBased {
		t.Error("expected is_activity_based = true")
	}
	if g.ActivityMultiplier == nil {
		t.Fatal("expected activity multiplier to be set")
	}
	if *g.ActivityMultiplier < sedentaryMultiplier || *g.ActivityMultiplier > maxActivityMultiplier {
		t.Errorf("multiplier %v out of range", *g.ActivityMultiplier)
	}

	again, err := computeGoalsWithActivity(p, sample, "")
	if err != nil {
		t.Fatalf("second call returned error: %v", err)
	}
	if !reflect.DeepEqual(g, again) {
		t.Errorf("repeated activity-aware calls differ: %+v vs %+v", g, again)
	}
}

// TestComputeGoals_GoalOverride verifies a valid override replaces the
// resolver's pick, and an unknown override is a named domain error.
func TestComputeGoals_GoalOverride(t *testing.T) {
	p := testProfile(30, "male", 180, 85, 85, "gym") // resolver would say maintain

	g, err := computeGoals(p, "bulk")
	if err != nil {
		t.Fatalf("computeGoals with override returned error: %v", err)
	}
	if g.GoalType != "bulk" {
		t.Errorf("goal type = %q, want bulk", g.GoalType)
	}

	_, err = computeGoals(p, "shred")
	if !errors.Is(err, errUnknownGoalType) {
		t.Errorf("expected errUnknownGoalType, got %v", err)
	}
}

// TestComputeGoals_InvalidProfile verifies the aggregated validation failure
// aborts the pipeline before anything is computed.
func TestComputeGoals_InvalidProfile(t *testing.T) {
	p := testProfile(8, "male", 180, 85, 85, "gym") // age below minimum
	_, err := computeGoals(p, "")
	var ve *validationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *validationError, got %v", err)
	}
}

// TestComputeGoals_NegativeActivityRejected verifies the activity-aware entry
// point hard-fails on negative sample fields instead of computing anyway.
func TestComputeGoals_NegativeActivityRejected(t *testing.T) {
	p := testProfile(30, "male", 180, 85, 85, "general")
	sample := activitySample{Steps: -100, ActiveMinutes: 30}
	_, err := computeGoalsWithActivity(p, sample, "")
	var ve *validationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *validationError, got %v", err)
	}
}

// TestComputeGoals_Invariants sweeps realistic profiles across personas and
// weight deltas and checks the numeric contract downstream consumers rely on:
// persona floor, TDEE ceiling, percentage sum, non-negative grams.
func TestComputeGoals_Invariants(t *testing.T) {
	genders := []string{"male", "female", "other"}
	personas := []string{"diabetes", "gym", "general"}
	weights := []float64{55, 70, 95, 130}
	targets := []float64{50, 70, 100, 140}

	for _, gender := range genders {
		for _, per := range personas {
			for _, w := range weights {
				for _, target := range targets {
					p := testProfile(35, gender, 170, w, target, per)
					g, err := computeGoals(p, "")
					if err != nil {
						t.Fatalf("computeGoals(%v→%v, %s, %s) failed: %v", w, target, per, gender, err)
					}
					floor := calorieFloorDefault
					if per == "diabetes" {
						floor = calorieFloorDiabetes
					}
					if g.DailyCalories < floor {
						t.Errorf("%s %v→%v: calories %d below floor %d", per, w, target, g.DailyCalories, floor)
					}
					if float64(g.DailyCalories) > float64(g.TDEE)*calorieCeilingFactor {
						t.Errorf("%s %v→%v: calories %d above tdee*1.4 (%d)", per, w, target, g.DailyCalories, g.TDEE)
					}
					if sum := g.CarbsPct + g.ProteinPct + g.FatPct; sum != 100 {
						t.Errorf("%s %v→%v: percentages sum to %d", per, w, target, sum)
					}
					if g.DailyCarbsG < 0 || g.DailyProteinsG < 0 || g.DailyFatsG < 0 {
						t.Errorf("%s %v→%v: negative gram value in %+v", per, w, target, g)
					}
				}
			}
		}
	}
}
