package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// upsertActivityEntry creates or updates the device-activity aggregate for a
// date. POST /api/activity-log. Body: { "date"?, "steps", "active_minutes",
// "exercise_calories", "weekly_exercise_sessions" } — date defaults to today.
// The UNIQUE(user_id, date) constraint means posting the same date updates in
// place, so repeated device syncs are idempotent.
func (h *Handler) upsertActivityEntry(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		Date string `json:"date"`
		activitySample
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		body.Date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	var ve *validationError
	if err := validateActivitySample(body.activitySample); errors.As(err, &ve) {
		apiValidationError(c, http.StatusBadRequest, ve)
		return
	}

	entry, err := queryOne[activityEntry](h.db, c,
		`INSERT INTO activity_log
			(user_id, date, steps, active_minutes, exercise_calories, weekly_exercise_sessions)
		 VALUES (@userID, @date, @steps, @activeMinutes, @exerciseCalories, @weeklySessions)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			steps = EXCLUDED.steps,
			active_minutes = EXCLUDED.active_minutes,
			exercise_calories = EXCLUDED.exercise_calories,
			weekly_exercise_sessions = EXCLUDED.weekly_exercise_sessions
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": body.Date, "steps": body.Steps,
			"activeMinutes": body.ActiveMinutes, "exerciseCalories": body.ExerciseCalories,
			"weeklySessions": body.WeeklyExerciseSessions,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to upsert activity entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// getActivityLog returns activity entries within [start, end].
// GET /api/activity-log?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Returns an empty array (not null) if no entries exist in the range.
func (h *Handler) getActivityLog(c *gin.Context) {
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

	entries, err := queryMany[activityEntry](h.db, c,
		`SELECT * FROM activity_log
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch activity log")
		return
	}
	if entries == nil {
		entries = []activityEntry{}
	}

	c.JSON(http.StatusOK, entries)
}
