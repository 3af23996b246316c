package main

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// getProfile returns the biometric profile for the authenticated user.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	p, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	c.JSON(http.StatusOK, p)
}

// patchProfile updates only the provided profile fields.
// PATCH /api/profile. Uses pointer fields in the request body to distinguish
// "not provided" from zero — only non-nil fields get updated. When goals_auto
// is set after the update and the profile is complete, the goals engine runs
// and the stored nutrition_goals row is refreshed; an incomplete profile just
// skips the recomputation.
func (h *Handler) patchProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	// Validate enums before saving — a bad persona silently breaks every
	// future goals calculation with no visible error.
	if body.Gender != nil && !validGenders[*body.Gender] {
		apiError(c, http.StatusBadRequest, "gender must be one of: male, female, other")
		return
	}
	if body.Persona != nil && !validPersonas[persona(*body.Persona)] {
		apiError(c, http.StatusBadRequest, "persona must be one of: diabetes, gym, general")
		return
	}

	// Build SET clause dynamically — only update fields the client actually sent
	setClauses := []string{}
	args := pgx.NamedArgs{"userID": userID}

	if body.Age != nil {
		setClauses = append(setClauses, "age = @age")
		args["age"] = *body.Age
	}
	if body.Gender != nil {
		setClauses = append(setClauses, "gender = @gender")
		args["gender"] = *body.Gender
	}
	if body.HeightCM != nil {
		setClauses = append(setClauses, "height_cm = @heightCM")
		args["heightCM"] = *body.HeightCM
	}
	if body.WeightKG != nil {
		setClauses = append(setClauses, "weight_kg = @weightKG")
		args["weightKG"] = *body.WeightKG
	}
	if body.TargetWeightKG != nil {
		setClauses = append(setClauses, "target_weight_kg = @targetWeightKG")
		args["targetWeightKG"] = *body.TargetWeightKG
	}
	if body.Persona != nil {
		setClauses = append(setClauses, "persona = @persona")
		args["persona"] = *body.Persona
	}
	if body.GoalsAuto != nil {
		setClauses = append(setClauses, "goals_auto = @goalsAuto")
		args["goalsAuto"] = *body.GoalsAuto
	}

	if len(setClauses) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	query := "UPDATE user_profiles SET " +
		strings.Join(setClauses, ", ") +
		", updated_at = now() WHERE user_id = @userID RETURNING *"

	p, err := queryOne[userProfile](h.db, c, query, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "profile not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update profile")
		}
		return
	}

	// If goals_auto is on, recompute and persist goals from the fresh profile.
	// A validation failure here is normal (onboarding not finished) — skip quietly.
	var goals *nutritionGoals
	if p.GoalsAuto {
		g, err := computeGoals(p, "")
		if err == nil {
			stored, storeErr := h.storeGoals(c, g)
			if storeErr != nil {
				log.Printf("[patchProfile] auto-goals upsert failed for user %d: %v", userID, storeErr)
			} else {
				goals = &stored
			}
		} else {
			var ve *validationError
			if !errors.As(err, &ve) {
				log.Printf("[patchProfile] auto-goals compute failed for user %d: %v", userID, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"profile": p, "goals": goals})
}
