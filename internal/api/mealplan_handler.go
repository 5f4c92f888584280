package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nutriplan/internal/logger"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
)

// PlannerService is the surface of the planning pipeline the handlers use.
type PlannerService interface {
	GenerateMealPlan(ctx context.Context, userID string, weeklyBudget *float64) (*planner.MaterializedPlan, error)
	GetPlan(ctx context.Context, userID string) (*planner.StoredPlan, error)
	ChangeMeal(ctx context.Context, userID, day, mealType, newRecipeID, reason string) (*planner.StoredPlan, error)
}

// UsageReader reads daily LLM usage rollups.
type UsageReader interface {
	GetDailyUsage(days int) ([]metrics.DailyUsage, error)
}

// MealPlanHandler exposes the meal-plan pipeline over HTTP.
type MealPlanHandler struct {
	planner PlannerService
	usage   UsageReader
	log     *logger.Logger
}

// NewMealPlanHandler creates the handler.
func NewMealPlanHandler(p PlannerService, usage UsageReader, log *logger.Logger) *MealPlanHandler {
	return &MealPlanHandler{planner: p, usage: usage, log: log}
}

type generateRequest struct {
	WeeklyBudget *float64 `json:"weeklyBudget"`
}

// Generate runs the full pipeline and answers with the materialized plan.
func (h *MealPlanHandler) Generate(c *gin.Context) {
	userID := currentUserID(c)

	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	plan, err := h.planner.GenerateMealPlan(c.Request.Context(), userID, req.WeeklyBudget)
	if err != nil {
		if errors.Is(err, planner.ErrProfileNotFound) {
			RespondError(c, http.StatusNotFound, err)
			return
		}
		h.log.Error("meal plan generation failed", "userId", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, err)
		return
	}

	RespondOK(c, plan)
}

// GetWeekPlan returns the raw stored plan, not materialized.
func (h *MealPlanHandler) GetWeekPlan(c *gin.Context) {
	userID := currentUserID(c)

	plan, err := h.planner.GetPlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, planner.ErrPlanNotFound) {
			RespondError(c, http.StatusNotFound, err)
			return
		}
		h.log.Error("failed to load week plan", "userId", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, err)
		return
	}

	RespondOK(c, plan)
}

type changeMealRequest struct {
	Day         string `json:"day"`
	MealType    string `json:"mealType"`
	NewRecipeID string `json:"newRecipeId"`
	Reason      string `json:"reason"`
}

// ChangeMeal swaps a single slot of the stored plan.
func (h *MealPlanHandler) ChangeMeal(c *gin.Context) {
	userID := currentUserID(c)

	var req changeMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Day == "" || req.MealType == "" || req.NewRecipeID == "" {
		RespondError(c, http.StatusBadRequest, errors.New("day, mealType and newRecipeId are required"))
		return
	}

	plan, err := h.planner.ChangeMeal(c.Request.Context(), userID, req.Day, req.MealType, req.NewRecipeID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, planner.ErrPlanNotFound):
			RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, planner.ErrUnknownDay),
			errors.Is(err, planner.ErrUnknownMealType),
			errors.Is(err, planner.ErrRecipeNotFound):
			RespondError(c, http.StatusBadRequest, err)
		default:
			h.log.Error("failed to change meal", "userId", userID, "error", err)
			RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	RespondOK(c, plan)
}

// Usage returns daily LLM usage rollups for the last N days (default 7).
func (h *MealPlanHandler) Usage(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			RespondError(c, http.StatusBadRequest, errors.New("days must be a positive integer"))
			return
		}
		days = parsed
	}

	usage, err := h.usage.GetDailyUsage(days)
	if err != nil {
		h.log.Error("failed to load usage", "error", err)
		RespondError(c, http.StatusInternalServerError, err)
		return
	}

	RespondOK(c, usage)
}
