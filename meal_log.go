package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// validMealTypes is the set of allowed values for the meal_log_meal_type enum.
// Reject unknown values with 400 rather than letting the DB return a cryptic 500.
// Exercise is not a meal — burned calories live in activity_log.
var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

// loadGoals fetches the stored nutrition_goals row, or nil when the user has
// never calculated goals. Summaries degrade to zero targets in that case.
func (h *Handler) loadGoals(c *gin.Context, userID int) *nutritionGoals {
	g, err := queryOne[nutritionGoals](h.db, c,
		"SELECT * FROM nutrition_goals WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil
	}
	g.syncPercentages()
	return &g
}

// getDailySummary returns meal log items and totals against the stored
// nutrition goals for a given date.
// GET /api/meal-log/daily?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailySummary(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	// Validate date format before querying — an invalid value silently returns no rows.
	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	items, err := queryMany[mealLogItem](h.db, c,
		`SELECT * FROM meal_log_items
		 WHERE user_id = @userID AND date = @date
		 ORDER BY created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch items")
		return
	}
	// Ensure items is an empty array (not null) in JSON
	if items == nil {
		items = []mealLogItem{}
	}

	var calories int
	var proteinG, carbsG, fatG float64
	for _, item := range items {
		calories += item.Calories
		if item.ProteinG != nil {
			proteinG += *item.ProteinG
		}
		if item.CarbsG != nil {
			carbsG += *item.CarbsG
		}
		if item.FatG != nil {
			fatG += *item.FatG
		}
	}

	summary := dailySummary{
		Date:     date,
		Items:    items,
		Calories: calories,
		ProteinG: proteinG,
		CarbsG:   carbsG,
		FatG:     fatG,
	}

	// Remaining budget comes from the engine-computed goals row; a user who has
	// never calculated goals still gets their raw totals back.
	if goals := h.loadGoals(c, userID); goals != nil {
		summary.HasGoals = true
		summary.Goals = goals
		summary.CaloriesLeft = goals.DailyCalories - calories
		summary.ProteinLeftG = float64(goals.DailyProteinsG) - proteinG
		summary.CarbsLeftG = float64(goals.DailyCarbsG) - carbsG
		summary.FatLeftG = float64(goals.DailyFatsG) - fatG
	}

	c.JSON(http.StatusOK, summary)
}

// currentMonday returns the Monday of the current week at midnight UTC.
// Uses AddDate to safely handle month/year boundaries — direct day subtraction
// can produce day=0 or negative, which time.Date normalizes but is confusing.
func currentMonday() time.Time {
	now := time.Now().UTC()
	weekday := int(now.Weekday()) // 0=Sun
	if weekday == 0 {
		weekday = 7 // treat Sunday as day 7 so Mon=1..Sun=7
	}
	daysBack := weekday - 1
	return now.AddDate(0, 0, -daysBack).Truncate(24 * time.Hour)
}

// getWeekSummary returns per-day totals for the Mon–Sun week containing
// week_start. Days with no logged items are included with has_data=false.
// GET /api/meal-log/week-summary?week_start=YYYY-MM-DD (defaults to current week).
func (h *Handler) getWeekSummary(c *gin.Context) {
	userID := c.GetInt("user_id")

	// Parse week_start; default to the current Monday.
	var weekStart time.Time
	if s := c.Query("week_start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid week_start, expected YYYY-MM-DD")
			return
		}
		weekStart = t
	} else {
		weekStart = currentMonday()
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	var calorieTarget int
	if goals := h.loadGoals(c, userID); goals != nil {
		calorieTarget = goals.DailyCalories
	}

	rows, err := queryMany[dayDBRow](h.db, c,
		`SELECT
			date,
			SUM(calories) AS calories,
			COALESCE(SUM(protein_g), 0) AS protein_g,
			COALESCE(SUM(carbs_g),   0) AS carbs_g,
			COALESCE(SUM(fat_g),     0) AS fat_g
		 FROM meal_log_items
		 WHERE user_id = @userID AND date >= @weekStart AND date <= @weekEnd
		 GROUP BY date`,
		pgx.NamedArgs{
			"userID":    userID,
			"weekStart": weekStart.Format("2006-01-02"),
			"weekEnd":   weekEnd.Format("2006-01-02"),
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch week data")
		return
	}

	// Index DB rows by date string for O(1) merge.
	rowByDate := make(map[string]dayDBRow, len(rows))
	for _, r := range rows {
		rowByDate[r.Date.Time.Format("2006-01-02")] = r
	}

	// Build a full 7-day response, filling zeros for days with no data.
	result := make([]daySummary, 7)
	for i := 0; i < 7; i++ {
		d := weekStart.AddDate(0, 0, i)
		dateStr := d.Format("2006-01-02")
		day := daySummary{
			Date:          DateOnly{d},
			CalorieTarget: calorieTarget,
		}
		if row, ok := rowByDate[dateStr]; ok {
			day.HasData = true
			day.Calories = row.Calories
			day.ProteinG = row.ProteinG
			day.CarbsG = row.CarbsG
			day.FatG = row.FatG
		}
		day.CaloriesLeft = calorieTarget - day.Calories
		result[i] = day
	}

	c.JSON(http.StatusOK, result)
}

// getProgress returns per-day totals and aggregate stats for an arbitrary date range.
// GET /api/meal-log/progress?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Only days with logged items are returned (no gap-filling — the frontend handles that).
func (h *Handler) getProgress(c *gin.Context) {
	userID := c.GetInt("user_id")
	start := c.Query("start")
	end := c.Query("end")

	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	var calorieTarget int
	if goals := h.loadGoals(c, userID); goals != nil {
		calorieTarget = goals.DailyCalories
	}

	rows, err := queryMany[dayDBRow](h.db, c,
		`SELECT
			date,
			SUM(calories) AS calories,
			COALESCE(SUM(protein_g), 0) AS protein_g,
			COALESCE(SUM(carbs_g),   0) AS carbs_g,
			COALESCE(SUM(fat_g),     0) AS fat_g
		 FROM meal_log_items
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 GROUP BY date
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch progress data")
		return
	}

	days := make([]daySummary, 0, len(rows))
	var stats progressStats
	for _, row := range rows {
		days = append(days, daySummary{
			Date:          row.Date,
			CalorieTarget: calorieTarget,
			Calories:      row.Calories,
			CaloriesLeft:  calorieTarget - row.Calories,
			ProteinG:      row.ProteinG,
			CarbsG:        row.CarbsG,
			FatG:          row.FatG,
			HasData:       true,
		})
		stats.DaysTracked++
		if calorieTarget > 0 && row.Calories <= calorieTarget {
			stats.DaysOnTarget++
		}
		stats.AvgCalories += row.Calories
	}

	// Convert the total to an average.
	if stats.DaysTracked > 0 {
		stats.AvgCalories /= stats.DaysTracked
	}

	c.JSON(http.StatusOK, progressResponse{Days: days, Stats: stats})
}

// getEarliestLogDate returns the earliest date the user has a meal log entry.
// GET /api/meal-log/earliest-date. Used by the frontend to compute the "All Time" range start.
// Returns { "date": "YYYY-MM-DD" } or { "date": null } if no entries exist.
func (h *Handler) getEarliestLogDate(c *gin.Context) {
	userID := c.GetInt("user_id")

	// SELECT MIN returns a nullable date — use *string to handle the NULL case.
	var result struct {
		Date *string `db:"date"`
	}
	rows, err := h.db.Query(c,
		`SELECT TO_CHAR(MIN(date), 'YYYY-MM-DD') AS date
		 FROM meal_log_items WHERE user_id = @userID`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch earliest date")
		return
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&result.Date); err != nil {
			apiError(c, http.StatusInternalServerError, "failed to scan earliest date")
			return
		}
	}
	if err := rows.Err(); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to read earliest date")
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": result.Date})
}

// createMealLogItem inserts a new meal log entry.
// POST /api/meal-log/items. Defaults date to today if omitted.
func (h *Handler) createMealLogItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createMealLogItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.ItemName == "" {
		apiError(c, http.StatusBadRequest, "item_name is required")
		return
	}
	if body.MealType == "" {
		apiError(c, http.StatusBadRequest, "meal_type is required")
		return
	}
	// Validate type against the enum; prevents a cryptic 500 from the DB constraint.
	if !validMealTypes[body.MealType] {
		apiError(c, http.StatusBadRequest, "meal_type must be one of: breakfast, lunch, dinner, snack")
		return
	}
	if body.Date == "" {
		body.Date = time.Now().Format("2006-01-02")
	}

	item, err := queryOne[mealLogItem](h.db, c,
		`INSERT INTO meal_log_items (user_id, date, item_name, meal_type, qty, uom, calories, protein_g, carbs_g, fat_g)
		 VALUES (@userID, @date, @itemName, @mealType, @qty, @uom, @calories, @proteinG, @carbsG, @fatG)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": body.Date, "itemName": body.ItemName,
			"mealType": body.MealType, "qty": body.Qty, "uom": body.Uom,
			"calories": body.Calories, "proteinG": body.ProteinG,
			"carbsG": body.CarbsG, "fatG": body.FatG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// updateMealLogItem updates an existing meal log entry.
// PUT /api/meal-log/items/:id. Uses COALESCE so omitted fields keep their current value.
func (h *Handler) updateMealLogItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body struct {
		Date     *string  `json:"date"`
		ItemName *string  `json:"item_name"`
		MealType *string  `json:"meal_type"`
		Qty      *float64 `json:"qty"`
		Uom      *string  `json:"uom"`
		Calories *int     `json:"calories"`
		ProteinG *float64 `json:"protein_g"`
		CarbsG   *float64 `json:"carbs_g"`
		FatG     *float64 `json:"fat_g"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.MealType != nil && !validMealTypes[*body.MealType] {
		apiError(c, http.StatusBadRequest, "meal_type must be one of: breakfast, lunch, dinner, snack")
		return
	}

	item, err := queryOne[mealLogItem](h.db, c,
		`UPDATE meal_log_items SET
			date = COALESCE(@date, date),
			item_name = COALESCE(@itemName, item_name),
			meal_type = COALESCE(@mealType, meal_type),
			qty = COALESCE(@qty, qty),
			uom = COALESCE(@uom, uom),
			calories = COALESCE(@calories, calories),
			protein_g = COALESCE(@proteinG, protein_g),
			carbs_g = COALESCE(@carbsG, carbs_g),
			fat_g = COALESCE(@fatG, fat_g),
			updated_at = now()
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "userID": userID,
			"date": body.Date, "itemName": body.ItemName, "mealType": body.MealType,
			"qty": body.Qty, "uom": body.Uom, "calories": body.Calories,
			"proteinG": body.ProteinG, "carbsG": body.CarbsG, "fatG": body.FatG,
		})
	if err != nil {
		apiError(c, http.StatusNotFound, "item not found")
		return
	}

	c.JSON(http.StatusOK, item)
}

// deleteMealLogItem removes a meal log entry. Returns 204 on success.
// DELETE /api/meal-log/items/:id.
func (h *Handler) deleteMealLogItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM meal_log_items WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete item")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "item not found")
		return
	}

	c.Status(http.StatusNoContent)
}
