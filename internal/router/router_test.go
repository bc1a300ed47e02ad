package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-jobboard-api/config"
	"github.com/oksasatya/go-jobboard-api/internal/application"
	"github.com/oksasatya/go-jobboard-api/internal/container"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/internal/infrastructure/memory"
	"github.com/oksasatya/go-jobboard-api/internal/interface/middleware"
	"github.com/oksasatya/go-jobboard-api/pkg/helpers"
	"github.com/oksasatya/go-jobboard-api/pkg/validation"
)

type envelope struct {
	Status  int                        `json:"status"`
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
	Error   json.RawMessage            `json:"error"`
}

type api struct {
	t      *testing.T
	engine *gin.Engine
	c      *container.Container
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	cfg := &config.Config{
		AppName:        "job-executive",
		Env:            "test",
		Storage:        container.StorageMemory,
		JWTSecret:      "router-test-secret",
		JWTExpiresIn:   time.Hour,
		BcryptCost:     4,
		ClientURL:      "http://client.test",
		UploadMaxBytes: 1 << 20,
	}
	c := container.NewInMemory(cfg, helpers.NewNopLogger(), memory.New())
	t.Cleanup(func() { c.Close(context.Background()) })

	engine := gin.New()
	engine.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	reg := NewRegistry(engine)
	InitModules(reg, c)
	reg.RegisterAll()
	return &api{t: t, engine: engine, c: c}
}

// account stores a verified user and returns a bearer token for it.
func (a *api) account(email string, role entity.Role) (*entity.User, string) {
	a.t.Helper()
	hash, err := helpers.HashPassword("secret123", 4)
	require.NoError(a.t, err)
	u := &entity.User{Email: email, Password: hash, Name: "User " + email, Role: role, IsVerified: true}
	require.NoError(a.t, a.c.Users.Create(context.Background(), u))
	tok, _, err := a.c.JWT.Issue(u.ID)
	require.NoError(a.t, err)
	return u, tok
}

func (a *api) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func jobBody(title string) map[string]any {
	return map[string]any{
		"title":        title,
		"description":  "Build and run our Go services in production.",
		"company":      "Acme",
		"salary":       "$120k",
		"location":     "Berlin",
		"type":         "FULL_TIME",
		"category":     "Engineering",
		"requirements": "Three years of Go experience",
	}
}

func TestHealthAndUnknownRoute(t *testing.T) {
	a := newAPI(t)
	code, env := a.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, env = a.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "route not found", env.Message)
}

func TestRegisterVerifyLogin(t *testing.T) {
	a := newAPI(t)
	body := map[string]any{"email": "Jane@Example.com", "password": "secret123", "name": "Jane"}

	code, env := a.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, code, env.Message)
	user := decode[entity.PublicUser](t, env.Data["user"])
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, entity.RoleSeeker, user.Role)
	assert.False(t, user.IsVerified)

	code, _ = a.do(http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = a.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "jane@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusForbidden, code, "unverified accounts cannot sign in")

	stored, err := a.c.Users.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.VerificationToken)

	code, env = a.do(http.MethodPost, "/api/auth/verify-email", "", map[string]any{"token": *stored.VerificationToken})
	require.Equal(t, http.StatusOK, code, env.Message)
	token := decode[string](t, env.Data["token"])

	code, env = a.do(http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, decode[entity.PublicUser](t, env.Data["user"]).IsVerified)

	code, _ = a.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "jane@example.com", "password": "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = a.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "jane@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusOK, code)
}

func TestJobListHugePage(t *testing.T) {
	a := newAPI(t)
	code, env := a.do(http.MethodGet, "/api/jobs?page=92233720368547760&limit=100", "", nil)
	require.Equal(t, http.StatusOK, code)
	p := decode[helpers.Pagination](t, env.Data["pagination"])
	assert.Equal(t, helpers.MaxPage, p.Current)
	assert.Empty(t, decode[[]entity.Job](t, env.Data["jobs"]))
}

func TestRegisterValidation(t *testing.T) {
	a := newAPI(t)
	code, env := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "not-an-email", "password": "123", "name": "J", "role": "ADMIN",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	details := decode[map[string]string](t, env.Error)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Contains(t, details, "name")
	assert.Equal(t, "must be one of: EMPLOYER, SEEKER", details["role"])
}

func TestJobOwnership(t *testing.T) {
	a := newAPI(t)
	_, e1 := a.account("e1@example.com", entity.RoleEmployer)
	_, e2 := a.account("e2@example.com", entity.RoleEmployer)
	_, seeker := a.account("seeker@example.com", entity.RoleSeeker)

	code, _ := a.do(http.MethodPost, "/api/jobs", "", jobBody("Backend Engineer"))
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = a.do(http.MethodPost, "/api/jobs", seeker, jobBody("Backend Engineer"))
	assert.Equal(t, http.StatusForbidden, code)

	code, env := a.do(http.MethodPost, "/api/jobs", e1, jobBody("Go"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, decode[map[string]string](t, env.Error), "title")

	code, env = a.do(http.MethodPost, "/api/jobs", e1, jobBody("       "))
	assert.Equal(t, http.StatusBadRequest, code, "blank titles are rejected after trimming")
	assert.Contains(t, decode[map[string]string](t, env.Error), "title")

	code, env = a.do(http.MethodPost, "/api/jobs", e1, jobBody("Backend Engineer"))
	require.Equal(t, http.StatusCreated, code, env.Message)
	job := decode[entity.Job](t, env.Data["job"])
	assert.Equal(t, entity.DefaultExperience, job.Experience)

	code, _ = a.do(http.MethodPut, "/api/jobs/"+job.ID, e2, map[string]any{"title": "Hijacked job title"})
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = a.do(http.MethodDelete, "/api/jobs/"+job.ID, e2, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = a.do(http.MethodGet, "/api/jobs/"+job.ID, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Backend Engineer", decode[entity.Job](t, env.Data["job"]).Title)

	code, env = a.do(http.MethodPatch, "/api/jobs/"+job.ID+"/toggle", e1, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "job deactivated successfully", env.Message)

	code, env = a.do(http.MethodGet, "/api/jobs", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]entity.Job](t, env.Data["jobs"]))

	code, _ = a.do(http.MethodGet, "/api/jobs?type=GIG", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestApplicationFlow(t *testing.T) {
	a := newAPI(t)
	emp, empTok := a.account("emp@example.com", entity.RoleEmployer)
	_, other := a.account("other@example.com", entity.RoleEmployer)
	_, seeker := a.account("seeker@example.com", entity.RoleSeeker)
	job, err := a.c.JobService.Create(context.Background(), emp.ID, application.JobInput{
		Title: "Backend Engineer", Company: "Acme", Type: entity.JobRemote,
	})
	require.NoError(t, err)

	code, env := a.do(http.MethodPost, "/api/applications/job/"+job.ID+"/apply", seeker, nil)
	require.Equal(t, http.StatusCreated, code, env.Message)
	app := decode[entity.Application](t, env.Data["application"])
	assert.Equal(t, entity.StatusApplied, app.Status)

	code, env = a.do(http.MethodPost, "/api/applications/job/"+job.ID+"/apply", seeker, map[string]any{"coverLetter": "Please consider me again"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "you have already applied for this job", env.Message)

	code, _ = a.do(http.MethodPost, "/api/applications/job/"+job.ID+"/apply", empTok, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = a.do(http.MethodPut, "/api/applications/"+app.ID+"/status", other, map[string]any{"status": "REVIEWED"})
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = a.do(http.MethodPut, "/api/applications/"+app.ID+"/status", empTok, map[string]any{"status": "MAYBE"})
	assert.Equal(t, http.StatusBadRequest, code)
	code, env = a.do(http.MethodPut, "/api/applications/"+app.ID+"/status", empTok, map[string]any{"status": "REVIEWED"})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = a.do(http.MethodGet, "/api/applications/job/"+job.ID, empTok, nil)
	require.Equal(t, http.StatusOK, code)
	apps := decode[[]entity.Application](t, env.Data["applications"])
	require.Len(t, apps, 1)
	assert.Equal(t, entity.StatusReviewed, apps[0].Status)

	code, env = a.do(http.MethodGet, "/api/applications/my-applications", seeker, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]entity.Application](t, env.Data["applications"]), 1)
	assert.Equal(t, 1, decode[helpers.Pagination](t, env.Data["pagination"]).TotalResults)

	code, env = a.do(http.MethodGet, "/api/applications/stats", seeker, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, decode[int](t, env.Data["totalApplications"]))
}

func TestAdminRoutes(t *testing.T) {
	a := newAPI(t)
	admin, adminTok := a.account("admin@example.com", entity.RoleAdmin)
	seekerUser, seeker := a.account("seeker@example.com", entity.RoleSeeker)

	code, _ := a.do(http.MethodGet, "/api/admin/dashboard", seeker, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env := a.do(http.MethodGet, "/api/admin/dashboard", adminTok, nil)
	require.Equal(t, http.StatusOK, code)
	stats := decode[map[string]int](t, env.Data["stats"])
	assert.Equal(t, 2, stats["totalUsers"])

	code, _ = a.do(http.MethodDelete, "/api/admin/users/"+admin.ID, adminTok, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = a.do(http.MethodPatch, "/api/admin/users/"+seekerUser.ID, adminTok, map[string]any{"action": "change-role", "role": "EMPLOYER"})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, _ = a.do(http.MethodDelete, "/api/admin/users/"+seekerUser.ID, adminTok, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = a.do(http.MethodGet, "/api/auth/check", seeker, nil)
	assert.Equal(t, http.StatusUnauthorized, code, "tokens of deleted users stop working")
}

func TestUserSelfOrAdmin(t *testing.T) {
	a := newAPI(t)
	alice, aliceTok := a.account("alice@example.com", entity.RoleSeeker)
	_, bobTok := a.account("bob@example.com", entity.RoleSeeker)

	code, _ := a.do(http.MethodPut, "/api/users/"+alice.ID, bobTok, map[string]any{"name": "Mallory"})
	assert.Equal(t, http.StatusNotFound, code)
	code, env := a.do(http.MethodPut, "/api/users/"+alice.ID, aliceTok, map[string]any{"bio": "Gopher"})
	require.Equal(t, http.StatusOK, code, env.Message)
	code, env = a.do(http.MethodPut, "/api/auth/profile", aliceTok, map[string]any{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, decode[map[string]string](t, env.Error), "name")

	code, _ = a.do(http.MethodGet, "/api/users", aliceTok, nil)
	assert.Equal(t, http.StatusForbidden, code)
}
