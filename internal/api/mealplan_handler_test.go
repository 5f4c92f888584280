package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"nutriplan/internal/logger"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
)

const testSecret = "test-secret"

type mockPlanner struct {
	generateFn   func(ctx context.Context, userID string, weeklyBudget *float64) (*planner.MaterializedPlan, error)
	getPlanFn    func(ctx context.Context, userID string) (*planner.StoredPlan, error)
	changeMealFn func(ctx context.Context, userID, day, mealType, newRecipeID, reason string) (*planner.StoredPlan, error)
}

func (m *mockPlanner) GenerateMealPlan(ctx context.Context, userID string, weeklyBudget *float64) (*planner.MaterializedPlan, error) {
	return m.generateFn(ctx, userID, weeklyBudget)
}

func (m *mockPlanner) GetPlan(ctx context.Context, userID string) (*planner.StoredPlan, error) {
	return m.getPlanFn(ctx, userID)
}

func (m *mockPlanner) ChangeMeal(ctx context.Context, userID, day, mealType, newRecipeID, reason string) (*planner.StoredPlan, error) {
	return m.changeMealFn(ctx, userID, day, mealType, newRecipeID, reason)
}

type mockUsage struct {
	rows     []metrics.DailyUsage
	err      error
	lastDays int
}

func (m *mockUsage) GetDailyUsage(days int) ([]metrics.DailyUsage, error) {
	m.lastDays = days
	return m.rows, m.err
}

func newTestRouter(t *testing.T, p PlannerService, usage UsageReader) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	handler := NewMealPlanHandler(p, usage, log)
	return NewRouter(testSecret, handler, log)
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("Response is not an envelope: %v\nbody: %s", err, w.Body.String())
	}
	return env
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(t, &mockPlanner{}, &mockUsage{})

	t.Run("NoToken", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/mealplan", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", w.Code)
		}
		if env := decodeEnvelope(t, w); env.Success {
			t.Error("Expected success=false envelope")
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/mealplan", "not-a-jwt", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"})
		signed, _ := token.SignedString([]byte("other-secret"))
		w := doRequest(router, http.MethodGet, "/api/v1/mealplan", signed, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("HealthzIsOpen", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/healthz", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
	})
}

func TestGenerate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotUser string
		var gotBudget *float64
		p := &mockPlanner{
			generateFn: func(_ context.Context, userID string, weeklyBudget *float64) (*planner.MaterializedPlan, error) {
				gotUser = userID
				gotBudget = weeklyBudget
				return &planner.MaterializedPlan{
					Week:        []planner.MaterializedDay{{Day: "Mon", Recipes: []planner.PlanRecipe{}}},
					GroceryList: []planner.GroceryItem{},
					Metadata:    planner.PlanMetadata{WeeklyBudget: 140, DailyBudget: "20.00"},
				}, nil
			},
		}
		router := newTestRouter(t, p, &mockUsage{})

		w := doRequest(router, http.MethodPost, "/api/v1/mealplan/generate", signToken(t, "u1"),
			map[string]float64{"weeklyBudget": 140})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if gotUser != "u1" {
			t.Errorf("Expected token subject as user ID, got %q", gotUser)
		}
		if gotBudget == nil || *gotBudget != 140 {
			t.Errorf("Expected weekly budget override 140, got %v", gotBudget)
		}
		env := decodeEnvelope(t, w)
		if !env.Success || env.Data == nil {
			t.Errorf("Expected success envelope with data, got %+v", env)
		}
	})

	t.Run("NoBodyMeansNoOverride", func(t *testing.T) {
		var gotBudget *float64
		p := &mockPlanner{
			generateFn: func(_ context.Context, _ string, weeklyBudget *float64) (*planner.MaterializedPlan, error) {
				gotBudget = weeklyBudget
				return &planner.MaterializedPlan{}, nil
			},
		}
		router := newTestRouter(t, p, &mockUsage{})

		w := doRequest(router, http.MethodPost, "/api/v1/mealplan/generate", signToken(t, "u1"), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if gotBudget != nil {
			t.Errorf("Expected nil budget override, got %v", *gotBudget)
		}
	})

	t.Run("ProfileNotFound", func(t *testing.T) {
		p := &mockPlanner{
			generateFn: func(_ context.Context, _ string, _ *float64) (*planner.MaterializedPlan, error) {
				return nil, planner.ErrProfileNotFound
			},
		}
		router := newTestRouter(t, p, &mockUsage{})

		w := doRequest(router, http.MethodPost, "/api/v1/mealplan/generate", signToken(t, "u1"), nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", w.Code)
		}
		if env := decodeEnvelope(t, w); env.Success {
			t.Error("Expected success=false envelope")
		}
	})

	t.Run("PipelineFailure", func(t *testing.T) {
		p := &mockPlanner{
			generateFn: func(_ context.Context, _ string, _ *float64) (*planner.MaterializedPlan, error) {
				return nil, errors.New("model unavailable")
			},
		}
		router := newTestRouter(t, p, &mockUsage{})

		w := doRequest(router, http.MethodPost, "/api/v1/mealplan/generate", signToken(t, "u1"), nil)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("Expected 500, got %d", w.Code)
		}
	})
}

func TestGetWeekPlan(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		p := &mockPlanner{
			getPlanFn: func(_ context.Context, userID string) (*planner.StoredPlan, error) {
				return &planner.StoredPlan{UserID: userID, Days: []planner.DayPlan{{Day: "Mon"}}}, nil
			},
		}
		router := newTestRouter(t, p, &mockUsage{})

		w := doRequest(router, http.MethodGet, "/api/v1/mealplan", signToken(t, "u1"), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		p := &mockPlanner{
			getPlanFn: func(_ context.Context, _ string) (*planner.StoredPlan, error) {
				return nil, planner.ErrPlanNotFound
			},
		}
		router := newTestRouter(t, p, &mockUsage{})

		w := doRequest(router, http.MethodGet, "/api/v1/mealplan", signToken(t, "u1"), nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", w.Code)
		}
	})
}

func TestChangeMealEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		p := &mockPlanner{
			changeMealFn: func(_ context.Context, userID, day, mealType, newRecipeID, reason string) (*planner.StoredPlan, error) {
				if day != "Mon" || mealType != "lunch" || newRecipeID != "R5" || reason != "lighter" {
					return nil, errors.New("unexpected arguments")
				}
				return &planner.StoredPlan{UserID: userID}, nil
			},
		}
		router := newTestRouter(t, p, &mockUsage{})

		w := doRequest(router, http.MethodPut, "/api/v1/mealplan/meal", signToken(t, "u1"),
			map[string]string{"day": "Mon", "mealType": "lunch", "newRecipeId": "R5", "reason": "lighter"})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("MissingFields", func(t *testing.T) {
		router := newTestRouter(t, &mockPlanner{}, &mockUsage{})

		w := doRequest(router, http.MethodPut, "/api/v1/mealplan/meal", signToken(t, "u1"),
			map[string]string{"day": "Mon"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("ValidationErrorsAre400", func(t *testing.T) {
		for _, serviceErr := range []error{planner.ErrUnknownDay, planner.ErrUnknownMealType, planner.ErrRecipeNotFound} {
			p := &mockPlanner{
				changeMealFn: func(_ context.Context, _, _, _, _, _ string) (*planner.StoredPlan, error) {
					return nil, serviceErr
				},
			}
			router := newTestRouter(t, p, &mockUsage{})

			w := doRequest(router, http.MethodPut, "/api/v1/mealplan/meal", signToken(t, "u1"),
				map[string]string{"day": "Mon", "mealType": "lunch", "newRecipeId": "R5"})
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400 for %v, got %d", serviceErr, w.Code)
			}
		}
	})

	t.Run("NoStoredPlanIs404", func(t *testing.T) {
		p := &mockPlanner{
			changeMealFn: func(_ context.Context, _, _, _, _, _ string) (*planner.StoredPlan, error) {
				return nil, planner.ErrPlanNotFound
			},
		}
		router := newTestRouter(t, p, &mockUsage{})

		w := doRequest(router, http.MethodPut, "/api/v1/mealplan/meal", signToken(t, "u1"),
			map[string]string{"day": "Mon", "mealType": "lunch", "newRecipeId": "R5"})
		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", w.Code)
		}
	})
}

func TestUsageEndpoint(t *testing.T) {
	t.Run("DefaultWindow", func(t *testing.T) {
		usage := &mockUsage{rows: []metrics.DailyUsage{}}
		router := newTestRouter(t, &mockPlanner{}, usage)

		w := doRequest(router, http.MethodGet, "/api/v1/usage", signToken(t, "u1"), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if usage.lastDays != 7 {
			t.Errorf("Expected default 7-day window, got %d", usage.lastDays)
		}
	})

	t.Run("ExplicitWindow", func(t *testing.T) {
		usage := &mockUsage{}
		router := newTestRouter(t, &mockPlanner{}, usage)

		w := doRequest(router, http.MethodGet, "/api/v1/usage?days=30", signToken(t, "u1"), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if usage.lastDays != 30 {
			t.Errorf("Expected 30-day window, got %d", usage.lastDays)
		}
	})

	t.Run("BadWindow", func(t *testing.T) {
		router := newTestRouter(t, &mockPlanner{}, &mockUsage{})

		w := doRequest(router, http.MethodGet, "/api/v1/usage?days=zero", signToken(t, "u1"), nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
	})
}
