package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/matchday-predictor/models"
	"github.com/Dosada05/matchday-predictor/repositories"
	"github.com/Dosada05/matchday-predictor/services"
	"github.com/Dosada05/matchday-predictor/storage"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	schedule models.Schedule
}

func (s staticSource) Fetch(context.Context, models.LeagueSource) (models.Schedule, error) {
	return s.schedule, nil
}

func (s staticSource) FetchAll(_ context.Context, sources []models.LeagueSource) (map[string]models.Schedule, error) {
	out := make(map[string]models.Schedule, len(sources))
	for _, src := range sources {
		out[src.Code] = s.schedule
	}
	return out, nil
}

func testConfig() *models.TournamentConfig {
	return &models.TournamentConfig{
		GroupStage: models.GroupStageConfig{Groups: map[string][]string{
			"A": {"Mexico", "Korea", "Playoff X", "Ghana"},
			"B": {"Spain", "Japan", "Peru", "Chile"},
		}},
		Knockouts: models.KnockoutConfig{RoundOf32: []models.SlotConfig{
			{Slot: "R32_01", Rule: "1A vs 2B"},
			{Slot: "R32_02", Rule: "1B vs 2A"},
		}},
		Playoffs: map[string]*models.PlayoffBlock{
			"Playoff_X": {
				Round1: []*models.Match{{ID: "PX-1", TeamA: "Jamaica", TeamB: "New Caledonia"}},
				Final:  &models.Match{ID: "PX-F", TeamB: "DR Congo"},
			},
		},
		Flags: map[string]string{"Spain": "es"},
	}
}

func testSchedule() models.Schedule {
	one, two, zero := 1, 2, 0
	return models.Schedule{
		"1": {
			{Home: "Roma", Away: "Lille", HomeScore: &two, AwayScore: &zero, Played: true},
			{Home: "Porto", Away: "Salzburg", HomeScore: &one, AwayScore: &one, Played: true},
		},
		"2": {
			{Home: "Lille", Away: "Porto"},
			{Home: "Salzburg", Away: "Roma"},
		},
	}
}

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	snaps := services.NewSnapshotService(storage.NewMemoryStore("http://blobs.local"), repositories.NewMemorySnapshotRefRepository(), logger)
	ts := services.NewTournamentService(testConfig(), snaps, logger)
	ls := services.NewLeagueService(
		[]models.LeagueSource{{Code: "UEL", URL: "http://example.invalid", TableID: "sched", SnapshotName: "UEL_matches"}},
		staticSource{schedule: testSchedule()}, snaps, time.Hour, logger)

	fifa := NewFifaHandler(ts, snaps)
	league := NewLeagueHandler(ls)

	r := chi.NewRouter()
	r.Get("/health", Health)
	r.Route("/api", func(r chi.Router) {
		r.Post("/fifa2026/init", fifa.Init)
		r.Get("/fifa2026/flag/{team}", fifa.Flag)
		r.Get("/fifa2026/playoffs/init", fifa.InitPlayoffs)
		r.Post("/fifa2026/playoffs/predict_match", fifa.PredictPlayoffMatch)
		r.Post("/fifa2026/playoffs/commit_to_groups", fifa.CommitPlayoffs)
		r.Post("/fifa2026/predict_group_match", fifa.SuggestGroupMatch)
		r.Post("/fifa2026/record_group_match", fifa.RecordGroupMatch)
		r.Post("/fifa2026/submit_group_results", fifa.SubmitGroupResults)
		r.Post("/fifa2026/generate_r32", fifa.GenerateRoundOf32)
		r.Post("/fifa2026/predict_knockout_match", fifa.PredictKnockoutMatch)
		r.Post("/fifa2026/generate_r16", fifa.GenerateStage(models.StageRoundOf16))
		r.Post("/fifa2026/generate_final", fifa.GenerateStage(models.StageFinal))
		r.Post("/fifa2026/save_final", fifa.SaveFinal)
		r.Post("/fifa2026/export", fifa.Export)
		r.Get("/fifa2026/snapshots/{ref}", fifa.Snapshot)
		r.Get("/leagues", league.Leagues)
		r.Get("/matches/{league}", league.Matches)
		r.Post("/predict/{league}", league.Predict)
		r.Post("/download/{league}", league.Download)
		r.Post("/refresh/{league}", league.Refresh)
		r.Get("/status/{league}", league.Status)
	})
	return r
}

// do sends body (marshalled unless it is already a string) and decodes a JSON reply into out.
func do(t *testing.T, h http.Handler, method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		js, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if out != nil && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}
