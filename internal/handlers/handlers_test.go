package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/config"
	"jobboard/internal/logger"
	"jobboard/internal/metrics"
	"jobboard/internal/models"
	job_memory "jobboard/internal/repository/job/memory"
	user_memory "jobboard/internal/repository/user/memory"
	"jobboard/internal/router"
	"jobboard/internal/services"
	"jobboard/internal/session"
)

// fixture wires the complete engine on in-memory stores so API behavior can
// be exercised exactly as an external caller sees it.
type fixture struct {
	engine *gin.Engine
	jobs   *job_memory.Repository
	users  *user_memory.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New("test")
	jobs := job_memory.NewJobRepository()
	users := user_memory.NewUserRepository()

	cfg := &config.Config{
		Env: "test",
		App: config.App{URL: "http://localhost:8080"},
		Session: config.Session{
			CookieName: "jobboard_session",
			TTLMinutes: 60,
			Store:      "memory",
		},
	}

	engine := router.New(router.Deps{
		Config:      cfg,
		Log:         log,
		JobService:  services.NewJobService(jobs, log),
		AuthService: services.NewAuthService(users, log),
		Sessions:    session.NewManager(session.NewMemoryStore(time.Hour), cfg.Session.CookieName, time.Hour, log),
		Metrics:     metrics.NewProvider(),
	})

	return &fixture{engine: engine, jobs: jobs, users: users}
}

func (f *fixture) createUser(t *testing.T, name, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := f.users.CreateUser(context.Background(), &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) login(t *testing.T, email string) string {
	t.Helper()

	resp := f.do(t, "POST", "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": "password",
	})
	require.Equal(t, 200, resp.Code, resp.Body.String())

	token, _ := decode(t, resp)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (f *fixture) do(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	f.engine.ServeHTTP(resp, req)
	return resp
}

// decode parses a JSON response body keeping numbers as json.Number so
// decimal fields can be compared without float drift.
func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var out map[string]any
	require.NoError(t, dec.Decode(&out), "body was not a JSON object")
	return out
}

func jobPayload(title string) map[string]any {
	now := time.Now()
	return map[string]any{
		"title":           title,
		"location":        "Kuala Lumpur",
		"employment_type": models.FullTime,
		"description":     "Own backend services end to end.",
		"salary_min":      "3500.50",
		"salary_max":      "5500.00",
		"currency":        "MYR",
		"status":          models.StatusOpen,
		"posted_at":       now.Add(time.Hour).Format(models.DateTimeLayout),
		"expires_at":      now.Add(30 * 24 * time.Hour).Format(models.DateTimeLayout),
	}
}
