package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/studylog-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/studylog-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/studylog-engine/internal/config"
	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
	"github.com/comitanigiacomo/studylog-engine/internal/core/services"
	"github.com/comitanigiacomo/studylog-engine/internal/core/view"
)

type failingEntryRepo struct {
	*repository.InMemoryLogEntryRepository
}

func (failingEntryRepo) ListRecent(ctx context.Context, userID string, limit int) ([]domain.LogEntry, error) {
	return nil, errors.New("connection reset")
}

type routerApp struct {
	router *gin.Engine
	tokens *services.TokenService
	users  *repository.InMemoryUserRepository
}

func setupRouter(t *testing.T, entryRepo domain.LogEntryRepository) *routerApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewInMemoryUserRepository()
	tokens := services.NewTokenService("router-secret", "router-test", time.Hour, users, nil)
	authSvc := services.NewAuthService(users, tokens)
	entrySvc := services.NewEntryService(entryRepo, nil, 10)

	ui := view.DefaultCopy()
	ui.Title = "Revision Log"

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(authSvc, nil, ""),
		EntryHandler:     adapterHTTP.NewEntryHandler(entrySvc),
		SummaryHandler:   adapterHTTP.NewSummaryHandler(services.NewSummaryService(entryRepo, users), services.NewExportService(entryRepo)),
		DashboardHandler: adapterHTTP.NewDashboardHandler(authSvc, entrySvc, ui),
		DatesHandler:     adapterHTTP.NewDatesHandler(),
		TokenValidator:   tokens,
		RateLimit:        config.RateLimitConfig{Requests: 100, Window: time.Minute},
		StartTime:        time.Now(),
	})

	return &routerApp{router: router, tokens: tokens, users: users}
}

func (a *routerApp) signIn(t *testing.T, id string) string {
	t.Helper()
	u, err := domain.NewUser(id, id+"@studylog.app")
	require.NoError(t, err)
	require.NoError(t, a.users.Create(context.Background(), u))

	token, err := a.tokens.GenerateToken(id)
	require.NoError(t, err)
	return "Bearer " + token
}

func (a *routerApp) get(path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeDashboard(t *testing.T, w *httptest.ResponseRecorder) view.Dashboard {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var d view.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	return d
}

func TestDashboardHandler(t *testing.T) {
	t.Run("Signed out", func(t *testing.T) {
		app := setupRouter(t, repository.NewInMemoryLogEntryRepository())

		d := decodeDashboard(t, app.get("/api/v1/dashboard", ""))
		assert.Equal(t, view.StatusSignedOut, d.Status)
		assert.Equal(t, "Revision Log", d.Title)
		assert.Nil(t, d.Table)
	})

	t.Run("Invalid token renders signed out", func(t *testing.T) {
		app := setupRouter(t, repository.NewInMemoryLogEntryRepository())

		d := decodeDashboard(t, app.get("/api/v1/dashboard", "Bearer not-a-jwt"))
		assert.Equal(t, view.StatusSignedOut, d.Status)
	})

	t.Run("Empty log", func(t *testing.T) {
		app := setupRouter(t, repository.NewInMemoryLogEntryRepository())
		bearer := app.signIn(t, "dash-empty")

		d := decodeDashboard(t, app.get("/api/v1/dashboard", bearer))
		assert.Equal(t, view.StatusEmpty, d.Status)
		assert.Equal(t, "dash-empty@studylog.app", d.SignedInAs)
		assert.Equal(t, view.DefaultCopy().EmptyNoData, d.Message)
	})

	t.Run("Ready with notes and expanded lanes", func(t *testing.T) {
		repo := repository.NewInMemoryLogEntryRepository()
		app := setupRouter(t, repo)
		bearer := app.signIn(t, "dash-ready")

		for _, p := range []string{"Art", "Biology", "Chemistry"} {
			e := domain.NewLogEntry("dash-ready", "Review", p, 60, domain.Date{Year: 2024, Month: time.May, Day: 2})
			e.Notes = "chapter 3"
			require.NoError(t, repo.Create(context.Background(), e))
		}

		collapsed := decodeDashboard(t, app.get("/api/v1/dashboard", bearer))
		assert.Equal(t, view.StatusReady, collapsed.Status)
		require.NotNil(t, collapsed.Table)
		assert.Equal(t, "3 entries", collapsed.Table.CountLabel)
		assert.NotContains(t, collapsed.Table.Columns, "Notes")
		require.NotNil(t, collapsed.Projects)
		assert.Len(t, collapsed.Projects.Lanes, 1)
		assert.Equal(t, 2, collapsed.Projects.MoreCount)

		expanded := decodeDashboard(t, app.get("/api/v1/dashboard?notes=true&expanded=1", bearer))
		assert.Contains(t, expanded.Table.Columns, "Notes")
		assert.Equal(t, "chapter 3", expanded.Table.Rows[0].Notes)
		assert.Equal(t, "02/05/2024", expanded.Table.Rows[0].Date)
		assert.Len(t, expanded.Projects.Lanes, 3)
		assert.Equal(t, "Art", expanded.Projects.Lanes[0].Project)
	})

	t.Run("Load failure", func(t *testing.T) {
		app := setupRouter(t, failingEntryRepo{repository.NewInMemoryLogEntryRepository()})
		bearer := app.signIn(t, "dash-fail")

		d := decodeDashboard(t, app.get("/api/v1/dashboard", bearer))
		assert.Equal(t, view.StatusError, d.Status)
		assert.Equal(t, view.DefaultCopy().LoadFailed, d.Message)
	})
}

func TestRouter(t *testing.T) {
	app := setupRouter(t, repository.NewInMemoryLogEntryRepository())

	t.Run("Health reports missing backends", func(t *testing.T) {
		w := app.get("/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"unreachable"`)
	})

	t.Run("Protected routes need a token", func(t *testing.T) {
		for _, path := range []string{"/api/v1/entries", "/api/v1/summary", "/api/v1/export", "/api/v1/me"} {
			assert.Equal(t, http.StatusUnauthorized, app.get(path, "").Code, path)
		}
	})

	t.Run("Public routes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, app.get("/api/v1/dates/today", "").Code)
		assert.Equal(t, http.StatusServiceUnavailable, app.get("/api/v1/auth/oauth/google", "").Code)
	})

	t.Run("Signed-in flow", func(t *testing.T) {
		bearer := app.signIn(t, "router-user")
		assert.Equal(t, http.StatusOK, app.get("/api/v1/me", bearer).Code)
		assert.Equal(t, http.StatusOK, app.get("/api/v1/entries", bearer).Code)
	})

	t.Run("CORS preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/entries", nil)
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Timezone")
	})

	t.Run("Swagger document", func(t *testing.T) {
		w := app.get("/swagger/doc.json", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/dates/normalize")
	})
}
