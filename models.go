package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// userProfile maps to user_profiles. One row per user holding the biometric
// snapshot the goals engine consumes. All biometric fields are pointers so a
// freshly-created row works before onboarding is finished — the engine's
// validator turns missing fields into per-field error messages.
type userProfile struct {
	UserID         int        `json:"user_id" db:"user_id"`
	Age            *int       `json:"age" db:"age"`
	Gender         *string    `json:"gender" db:"gender"`
	HeightCM       *float64   `json:"height_cm" db:"height_cm"`
	WeightKG       *float64   `json:"weight_kg" db:"weight_kg"`
	TargetWeightKG *float64   `json:"target_weight_kg" db:"target_weight_kg"`
	Persona        *string    `json:"persona" db:"persona"`
	GoalsAuto      bool       `json:"goals_auto" db:"goals_auto"`
	CreatedAt      *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at" db:"updated_at"`
}

// activitySample is one day of device-derived activity, as consumed by the
// activity-aware TDEE path. Supplied per calculation; the activity_log table
// is only the import buffer for the most recent sample.
type activitySample struct {
	Steps                  int `json:"steps"`
	ActiveMinutes          int `json:"active_minutes"`
	ExerciseCalories       int `json:"exercise_calories"`
	WeeklyExerciseSessions int `json:"weekly_exercise_sessions"`
}

// activityEntry maps to activity_log (UNIQUE(user_id, date)).
type activityEntry struct {
	ID                     int        `json:"id" db:"id"`
	UserID                 int        `json:"user_id" db:"user_id"`
	Date                   DateOnly   `json:"date" db:"date"`
	Steps                  int        `json:"steps" db:"steps"`
	ActiveMinutes          int        `json:"active_minutes" db:"active_minutes"`
	ExerciseCalories       int        `json:"exercise_calories" db:"exercise_calories"`
	WeeklyExerciseSessions int        `json:"weekly_exercise_sessions" db:"weekly_exercise_sessions"`
	CreatedAt              *time.Time `json:"created_at" db:"created_at"`
}

// sample extracts the engine-facing aggregate from a stored row.
func (e activityEntry) sample() activitySample {
	return activitySample{
		Steps:                  e.Steps,
		ActiveMinutes:          e.ActiveMinutes,
		ExerciseCalories:       e.ExerciseCalories,
		WeeklyExerciseSessions: e.WeeklyExerciseSessions,
	}
}

// nutritionGoals maps to nutrition_goals (one row per user, upserted on every
// calculation). Percentages are stored as flat columns; MacroPercentages is the
// nested JSON view and must be refreshed after a DB scan via syncPercentages.
type nutritionGoals struct {
	UserID             int        `json:"-" db:"user_id"`
	DailyCalories      int        `json:"daily_calories" db:"daily_calories"`
	DailyCarbsG        int        `json:"daily_carbs_g" db:"daily_carbs_g"`
	DailyFatsG         int        `json:"daily_fats_g" db:"daily_fats_g"`
	DailyProteinsG     int        `json:"daily_proteins_g" db:"daily_proteins_g"`
	BMR                int        `json:"bmr" db:"bmr"`
	TDEE               int        `json:"tdee" db:"tdee"`
	CarbsPct           int        `json:"-" db:"carbs_pct"`
	ProteinPct         int        `json:"-" db:"protein_pct"`
	FatPct             int        `json:"-" db:"fat_pct"`
	GoalType           string     `json:"goal_type" db:"goal_type"`
	ActivityMultiplier *float64   `json:"activity_multiplier,omitempty" db:"activity_multiplier"`
	IsActivityBased    bool       `json:"is_activity_based" db:"is_activity_based"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty" db:"updated_at"`

	// Derived from the pct columns for the JSON response; not a column.
	MacroPercentages macroSplit `json:"macro_percentages" db:"-"`
}

// syncPercentages rebuilds the nested macro_percentages view from the flat
// columns. Call after scanning a row; the engine sets both sides itself.
func (g *nutritionGoals) syncPercentages() {
	g.MacroPercentages = macroSplit{Carbs: g.CarbsPct, Protein: g.ProteinPct, Fat: g.FatPct}
}

// mealLogItem maps to meal_log_items. Nullable numeric fields use pointers
// so pgx can scan NULLs and JSON omits them naturally.
type mealLogItem struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Date      DateOnly   `json:"date" db:"date"`
	ItemName  string     `json:"item_name" db:"item_name"`
	MealType  string     `json:"meal_type" db:"meal_type"`
	Qty       *float64   `json:"qty" db:"qty"`
	Uom       *string    `json:"uom" db:"uom"`
	Calories  int        `json:"calories" db:"calories"`
	ProteinG  *float64   `json:"protein_g" db:"protein_g"`
	CarbsG    *float64   `json:"carbs_g" db:"carbs_g"`
	FatG      *float64   `json:"fat_g" db:"fat_g"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// weightEntry maps to weight_log (UNIQUE(user_id, date)). Metric units.
type weightEntry struct {
	ID       int      `json:"id" db:"id"`
	UserID   int      `json:"user_id" db:"user_id"`
	Date     DateOnly `json:"date" db:"date"`
	WeightKG float64  `json:"weight_kg" db:"weight_kg"`
}

/* ─── Request / response shapes ──────────────────────────────────────── */

// patchProfileRequest is the request body for PATCH /api/profile.
// All fields are pointers — only non-nil fields get written to the database.
type patchProfileRequest struct {
	Age            *int     `json:"age"`
	Gender         *string  `json:"gender"`
	HeightCM       *float64 `json:"height_cm"`
	WeightKG       *float64 `json:"weight_kg"`
	TargetWeightKG *float64 `json:"target_weight_kg"`
	Persona        *string  `json:"persona"`
	GoalsAuto      *bool    `json:"goals_auto"`
}

// calculateGoalsRequest is the request body for POST /api/goals/calculate.
// goal_type overrides the resolver; use_activity selects the activity-aware
// pipeline fed from the latest activity_log row.
type calculateGoalsRequest struct {
	GoalType    string `json:"goal_type"`
	UseActivity bool   `json:"use_activity"`
}

// createMealLogItemRequest is the request body for POST /api/meal-log/items.
type createMealLogItemRequest struct {
	Date     string   `json:"date"`
	ItemName string   `json:"item_name"`
	MealType string   `json:"meal_type"`
	Qty      *float64 `json:"qty"`
	Uom      *string  `json:"uom"`
	Calories int      `json:"calories"`
	ProteinG *float64 `json:"protein_g"`
	CarbsG   *float64 `json:"carbs_g"`
	FatG     *float64 `json:"fat_g"`
}

// dayDBRow is the shape of each row returned by the per-day GROUP BY queries.
// Used only for scanning; responses use daySummary.
type dayDBRow struct {
	Date     DateOnly `db:"date"`
	Calories int      `db:"calories"`
	ProteinG float64  `db:"protein_g"`
	CarbsG   float64  `db:"carbs_g"`
	FatG     float64  `db:"fat_g"`
}

// daySummary is one day's entry in the week-summary and progress responses.
// Targets come from the stored nutrition_goals row; HasGoals is false (and all
// target/left fields zero) when the user has never calculated goals.
type daySummary struct {
	Date          DateOnly `json:"date"`
	CalorieTarget int      `json:"calorie_target"`
	Calories      int      `json:"calories"`
	CaloriesLeft  int      `json:"calories_left"`
	ProteinG      float64  `json:"protein_g"`
	CarbsG        float64  `json:"carbs_g"`
	FatG          float64  `json:"fat_g"`
	HasData       bool     `json:"has_data"`
}

// dailySummary is the response shape for GET /api/meal-log/daily.
type dailySummary struct {
	Date         string          `json:"date"`
	Items        []mealLogItem   `json:"items"`
	Calories     int             `json:"calories"`
	ProteinG     float64         `json:"protein_g"`
	CarbsG       float64         `json:"carbs_g"`
	FatG         float64         `json:"fat_g"`
	HasGoals     bool            `json:"has_goals"`
	Goals        *nutritionGoals `json:"goals,omitempty"`
	CaloriesLeft int             `json:"calories_left"`
	ProteinLeftG float64         `json:"protein_left_g"`
	CarbsLeftG   float64         `json:"carbs_left_g"`
	FatLeftG     float64         `json:"fat_left_g"`
}

// progressStats aggregates a progress range: days tracked, days at or under
// the calorie target, and average daily intake.
type progressStats struct {
	DaysTracked  int `json:"days_tracked"`
	DaysOnTarget int `json:"days_on_target"`
	AvgCalories  int `json:"avg_calories"`
}

// progressResponse is the response shape for GET /api/meal-log/progress.
type progressResponse struct {
	Days  []daySummary  `json:"days"`
	Stats progressStats `json:"stats"`
}
