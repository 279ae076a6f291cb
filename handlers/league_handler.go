package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/Dosada05/matchday-predictor/export"
	"github.com/Dosada05/matchday-predictor/models"
	"github.com/Dosada05/matchday-predictor/services"
	"github.com/go-chi/chi/v5"
)

type LeagueHandler struct {
	leagueService services.LeagueService
}

func NewLeagueHandler(ls services.LeagueService) *LeagueHandler {
	return &LeagueHandler{leagueService: ls}
}

type leaguePredictInput struct {
	Matchday    string            `json:"matchday" validate:"required"`
	Predictions map[string]string `json:"predictions"`
	Progress    models.Progress   `json:"progress"`
}

type leagueDownloadInput struct {
	Progress models.Progress `json:"progress"`
}

// Matches godoc
// @Summary Расписание и таблица лиги
// @Tags leagues
// @Description Таблица по сыгранным матчам и ещё не сыгранные туры.
// @Produce json
// @Param league path string true "UCL, UEL или UCFL"
// @Success 200 {object} models.LeagueOverview
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string "Не удалось получить расписание"
// @Router /matches/{league} [get]
func (h *LeagueHandler) Matches(w http.ResponseWriter, r *http.Request) {
	overview, err := h.leagueService.Overview(r.Context(), chi.URLParam(r, "league"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, overview, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Predict godoc
// @Summary Прогноз тура
// @Tags leagues
// @Description predictions: {"Home_vs_Away": "2-1"}; progress: ранее накопленные счета.
// @Accept json
// @Produce json
// @Param league path string true "Лига"
// @Param body body leaguePredictInput true "Прогнозы"
// @Success 200 {object} models.PredictionResult
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Тур уже сыгран"
// @Router /predict/{league} [post]
func (h *LeagueHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var input leaguePredictInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	res, err := h.leagueService.Predict(r.Context(), chi.URLParam(r, "league"), input.Matchday, input.Predictions, input.Progress)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Download godoc
// @Summary PDF с таблицей лиги
// @Tags leagues
// @Accept json
// @Produce application/pdf
// @Param league path string true "Лига"
// @Param body body leagueDownloadInput true "Счета"
// @Success 200 {file} file
// @Router /download/{league} [post]
func (h *LeagueHandler) Download(w http.ResponseWriter, r *http.Request) {
	var input leagueDownloadInput
	if !decodeAndValidate(w, r, &input) {
		return
	}
	league := strings.ToUpper(chi.URLParam(r, "league"))

	rows, err := h.leagueService.Table(r.Context(), league, input.Progress)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.LeaguePDF(&buf, league, rows, input.Progress); err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	writePDF(w, r, strings.ToLower(league)+"_predictions.pdf", &buf)
}

// Refresh godoc
// @Summary Принудительно обновить расписание
// @Tags leagues
// @Produce json
// @Param league path string true "Лига"
// @Success 200 {object} models.RefreshResult
// @Failure 502 {object} map[string]string
// @Router /refresh/{league} [post]
func (h *LeagueHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	res, err := h.leagueService.Refresh(r.Context(), chi.URLParam(r, "league"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Status godoc
// @Summary Состояние кэша и хранилища лиги
// @Tags leagues
// @Produce json
// @Param league path string true "Лига"
// @Success 200 {object} models.LeagueStatus
// @Router /status/{league} [get]
func (h *LeagueHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.leagueService.Status(r.Context(), chi.URLParam(r, "league"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, status, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Leagues godoc
// @Summary Список лиг
// @Tags leagues
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /leagues [get]
func (h *LeagueHandler) Leagues(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"leagues": h.leagueService.Leagues()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Health godoc
// @Summary Проверка доступности
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
