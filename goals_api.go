package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// calculateGoals runs the nutrition goals engine for the authenticated user
// and persists the result. POST /api/goals/calculate.
// Body: { "goal_type"?: string, "use_activity"?: bool }.
// use_activity selects the activity-aware TDEE path fed from the most recent
// activity_log row; without one the request fails rather than silently falling
// back to the static multiplier.
func (h *Handler) calculateGoals(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body calculateGoalsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	var activity *activitySample
	if body.UseActivity {
		entry, err := queryOne[activityEntry](h.db, c,
			`SELECT * FROM activity_log
			 WHERE user_id = @userID
			 ORDER BY date DESC LIMIT 1`,
			pgx.NamedArgs{"userID": userID})
		if err != nil {
			apiError(c, http.StatusBadRequest, "no activity data recorded")
			return
		}
		s := entry.sample()
		activity = &s
	}

	goals, err := computeNutritionGoals(p, activity, body.GoalType)
	if err != nil {
		var ve *validationError
		switch {
		case errors.As(err, &ve):
			apiValidationError(c, http.StatusUnprocessableEntity, ve)
		case errors.Is(err, errUnknownGoalType):
			apiError(c, http.StatusBadRequest, "goal_type must be one of: maintain, bulk, cut, weight_loss, weight_gain")
		case errors.Is(err, errUnknownPersona):
			apiError(c, http.StatusBadRequest, "persona must be one of: diabetes, gym, general")
		default:
			apiError(c, http.StatusInternalServerError, "failed to calculate goals")
		}
		return
	}

	stored, err := h.storeGoals(c, goals)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to store goals")
		return
	}

	// Warnings are soft findings — the goals are valid and already persisted.
	weight := 0.0
	if p.WeightKG != nil {
		weight = *p.WeightKG
	}
	audit := auditGoals(stored, persona(*p.Persona), weight)

	c.JSON(http.StatusOK, gin.H{"goals": stored, "audit": audit})
}

// storeGoals upserts the one-per-user nutrition_goals row and returns the
// stored version with the nested percentage view populated.
func (h *Handler) storeGoals(c *gin.Context, g nutritionGoals) (nutritionGoals, error) {
	stored, err := queryOne[nutritionGoals](h.db, c,
		`INSERT INTO nutrition_goals
			(user_id, daily_calories, daily_carbs_g, daily_fats_g, daily_proteins_g,
			 bmr, tdee, carbs_pct, protein_pct, fat_pct, goal_type,
			 activity_multiplier, is_activity_based, updated_at)
		 VALUES
			(@userID, @dailyCalories, @dailyCarbsG, @dailyFatsG, @dailyProteinsG,
			 @bmr, @tdee, @carbsPct, @proteinPct, @fatPct, @goalType,
			 @activityMultiplier, @isActivityBased, now())
		 ON CONFLICT (user_id) DO UPDATE SET
			daily_calories = EXCLUDED.daily_calories,
			daily_carbs_g = EXCLUDED.daily_carbs_g,
			daily_fats_g = EXCLUDED.daily_fats_g,
			daily_proteins_g = EXCLUDED.daily_proteins_g,
			bmr = EXCLUDED.bmr,
			tdee = EXCLUDED.tdee,
			carbs_pct = EXCLUDED.carbs_pct,
			protein_pct = EXCLUDED.protein_pct,
			fat_pct = EXCLUDED.fat_pct,
			goal_type = EXCLUDED.goal_type,
			activity_multiplier = EXCLUDED.activity_multiplier,
			is_activity_based = EXCLUDED.is_activity_based,
			updated_at = now()
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": g.UserID, "dailyCalories": g.DailyCalories,
			"dailyCarbsG": g.DailyCarbsG, "dailyFatsG": g.DailyFatsG,
			"dailyProteinsG": g.DailyProteinsG, "bmr": g.BMR, "tdee": g.TDEE,
			"carbsPct": g.CarbsPct, "proteinPct": g.ProteinPct, "fatPct": g.FatPct,
			"goalType": g.GoalType, "activityMultiplier": g.ActivityMultiplier,
			"isActivityBased": g.IsActivityBased,
		})
	if err != nil {
		return nutritionGoals{}, err
	}
	stored.syncPercentages()
	return stored, nil
}

// getGoals returns the stored nutrition goals for the authenticated user.
// GET /api/goals. 404 until the first calculation has run.
func (h *Handler) getGoals(c *gin.Context) {
	userID := c.GetInt("user_id")

	g, err := queryOne[nutritionGoals](h.db, c,
		"SELECT * FROM nutrition_goals WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "goals not found")
		return
	}
	g.syncPercentages()

	c.JSON(http.StatusOK, g)
}

// getBMI classifies the authenticated user's BMI from the stored profile.
// GET /api/bmi. Needs weight and height; anything else can be missing.
func (h *Handler) getBMI(c *gin.Context) {
	userID := c.GetInt("user_id")

	p, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	if p.WeightKG == nil || p.HeightCM == nil {
		apiError(c, http.StatusBadRequest, "profile weight and height are required")
		return
	}

	c.JSON(http.StatusOK, classifyBMI(*p.WeightKG, *p.HeightCM))
}
