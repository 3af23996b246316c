package main

import (
	"errors"
	"testing"
)

// TestAllocateMacros_GymBulk pins the worked example: 3000 kcal on the 40/35/25
// template → 300g carbs, 263g protein, 83g fat.
func TestAllocateMacros_GymBulk(t *testing.T) {
	carbs, protein, fat, split, err := allocateMacros(3000, personaGym, goalBulk)
	if err != nil {
		t.Fatalf("allocateMacros returned error: %v", err)
	}
	if carbs != 300 || protein != 263 || fat != 83 {
		t.Errorf("grams = %d / %d / %d, want 300 / 263 / 83", carbs, protein, fat)
	}
	want := macroSplit{Carbs: 40, Protein: 35, Fat: 25}
	if split != want {
		t.Errorf("split = %+v, want %+v", split, want)
	}
}

// TestMacroTemplatesSumTo100 guards the static table: every split must
// allocate exactly the full calorie budget.
func TestMacroTemplatesSumTo100(t *testing.T) {
	for key, split := range macroTemplates {
		if sum := split.Carbs + split.Protein + split.Fat; sum != 100 {
			t.Errorf("template %s/%s sums to %d", key.persona, key.goal, sum)
		}
	}
}

// TestMacroTemplates_CoverResolverOutput verifies that whatever goal type the
// resolver emits for a persona has a direct template entry — the maintain
// fallback should only ever fire for caller-supplied overrides.
func TestMacroTemplates_CoverResolverOutput(t *testing.T) {
	deltas := []float64{-10, 0, 10}
	for p := range validPersonas {
		for _, d := range deltas {
			gt := resolveGoalType(70, 70+d, p)
			if _, ok := macroTemplates[macroKey{p, gt}]; !ok {
				t.Errorf("no template for resolver output %s/%s (delta %v)", p, gt, d)
			}
		}
	}
}

// TestAllocateMacros_MaintainFallback verifies an override combination with no
// template entry falls back to the persona's maintain split.
func TestAllocateMacros_MaintainFallback(t *testing.T) {
	_, _, _, split, err := allocateMacros(2000, personaDiabetes, goalBulk)
	if err != nil {
		t.Fatalf("allocateMacros returned error: %v", err)
	}
	if want := macroTemplates[macroKey{personaDiabetes, goalMaintain}]; split != want {
		t.Errorf("split = %+v, want maintain fallback %+v", split, want)
	}
}

func TestAllocateMacros_UnknownPersona(t *testing.T) {
	_, _, _, _, err := allocateMacros(2000, persona("keto"), goalMaintain)
	if !errors.Is(err, errUnknownPersona) {
		t.Errorf("expected errUnknownPersona, got %v", err)
	}
}
