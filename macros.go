package main

import "math"

// Atwater factors: kcal per gram when converting calories to macro grams.
const (
	carbCaloriesPerGram    = 4
	proteinCaloriesPerGram = 4
	fatCaloriesPerGram     = 9
)

// macroSplit is a percentage split of daily calories. Every template in
// macroTemplates sums to exactly 100 (enforced by a test).
type macroSplit struct {
	Carbs   int `json:"carbs"`
	Protein int `json:"protein"`
	Fat     int `json:"fat"`
}

// macroKey identifies a template by explicit tagged pair rather than nested
// string maps, so lookups can't silently mix persona and goal strings.
type macroKey struct {
	persona persona
	goal    goalType
}

// macroTemplates is the static (persona, goal) → split table. Loaded once,
// never mutated. Each persona must have an entry for every goal type
// resolveGoalType can emit for it, plus a "maintain" entry used as the
// fallback for override-supplied combinations.
var macroTemplates = map[macroKey]macroSplit{
	{personaDiabetes, goalMaintain}: {Carbs: 40, Protein: 30, Fat: 30},

	{personaGym, goalBulk}:     {Carbs: 40, Protein: 35, Fat: 25},
	{personaGym, goalCut}:      {Carbs: 35, Protein: 40, Fat: 25},
	{personaGym, goalMaintain}: {Carbs: 40, Protein: 30, Fat: 30},

	{personaGeneral, goalMaintain}:   {Carbs: 50, Protein: 20, Fat: 30},
	{personaGeneral, goalWeightLoss}: {Carbs: 40, Protein: 30, Fat: 30},
	{personaGeneral, goalWeightGain}: {Carbs: 50, Protein: 25, Fat: 25},
}

// allocateMacros converts a daily calorie target into macro grams using the
// (persona, goal) template, falling back to the persona's "maintain" template
// when the exact combination has no entry. An unknown persona is a domain
// error — there is no sensible fallback across personas.
func allocateMacros(calories int, p persona, gt goalType) (carbsG, proteinG, fatG int, split macroSplit, err error) {
	if !validPersonas[p] {
		return 0, 0, 0, macroSplit{}, errUnknownPersona
	}
	split, ok := macroTemplates[macroKey{p, gt}]
	if !ok {
		split = macroTemplates[macroKey{p, goalMaintain}]
	}

	cal := float64(calories)
	carbsG = int(math.Round(cal * float64(split.Carbs) / 100 / carbCaloriesPerGram))
	proteinG = int(math.Round(cal * float64(split.Protein) / 100 / proteinCaloriesPerGram))
	fatG = int(math.Round(cal * float64(split.Fat) / 100 / fatCaloriesPerGram))
	return carbsG, proteinG, fatG, split, nil
}
