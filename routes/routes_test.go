package routes

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/matchday-predictor/handlers"
	"github.com/Dosada05/matchday-predictor/models"
	"github.com/Dosada05/matchday-predictor/repositories"
	"github.com/Dosada05/matchday-predictor/services"
	"github.com/Dosada05/matchday-predictor/storage"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptySource struct{}

func (emptySource) Fetch(context.Context, models.LeagueSource) (models.Schedule, error) {
	return models.Schedule{}, nil
}

func (emptySource) FetchAll(context.Context, []models.LeagueSource) (map[string]models.Schedule, error) {
	return map[string]models.Schedule{}, nil
}

func newRouter(t *testing.T) *chi.Mux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	snaps := services.NewSnapshotService(storage.NewMemoryStore(""), repositories.NewMemorySnapshotRefRepository(), logger)
	cfg := &models.TournamentConfig{GroupStage: models.GroupStageConfig{Groups: map[string][]string{
		"A": {"Mexico", "Korea", "Ghana", "Peru"},
	}}}
	ts := services.NewTournamentService(cfg, snaps, logger)
	ls := services.NewLeagueService([]models.LeagueSource{{Code: "UEL", SnapshotName: "UEL_matches"}}, emptySource{}, snaps, time.Hour, logger)

	router := chi.NewRouter()
	SetupRoutes(router, logger, []string{"http://localhost:3000"}, handlers.NewFifaHandler(ts, snaps), handlers.NewLeagueHandler(ls))
	return router
}

func TestHealthRoutes(t *testing.T) {
	router := newRouter(t)

	for _, path := range []string{"/", "/health"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("Content-Type"))
	}
}

func TestAPIRoutesMounted(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/fifa2026/init", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leagues", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/fifa2026/save_final", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/fifa2026/init", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/fifa2026/init", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
