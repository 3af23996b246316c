package main

// goalAudit is the post-computation plausibility report. Warnings never block
// the goals — the numbers stay usable, callers decide whether to surface them.
type goalAudit struct {
	IsValid  bool     `json:"is_valid"`
	Warnings []string `json:"warnings"`
}

// auditWeightFallbackKG is used for the protein-per-kg check when the weight
// is missing or implausible.
const auditWeightFallbackKG = 70.0

// auditGoals runs the medical-safety plausibility checks over a computed (or
// stored) goals record. Pure; safe on any record regardless of origin, so
// rules overlap the engine's own clamps on purpose.
func auditGoals(g nutritionGoals, p persona, weightKG float64) goalAudit {
	warnings := []string{}

	if g.DailyCalories < calorieFloorDefault {
		warnings = append(warnings, "daily calories below recommended minimum")
	}
	if float64(g.DailyCalories) > float64(g.TDEE)*1.5 {
		warnings = append(warnings, "daily calories significantly above maintenance")
	}

	w := weightKG
	if w <= 0 {
		w = auditWeightFallbackKG
	}
	if float64(g.DailyProteinsG)/w < 0.8 {
		warnings = append(warnings, "protein may be insufficient")
	}

	if p == personaDiabetes && g.CarbsPct > 45 {
		warnings = append(warnings, "carbohydrate percentage may be too high")
	}

	return goalAudit{IsValid: len(warnings) == 0, Warnings: warnings}
}
