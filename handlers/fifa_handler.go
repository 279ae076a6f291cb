package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/matchday-predictor/export"
	"github.com/Dosada05/matchday-predictor/models"
	"github.com/Dosada05/matchday-predictor/services"
	"github.com/go-chi/chi/v5"
)

type FifaHandler struct {
	tournamentService services.TournamentService
	snapshotService   services.SnapshotService
}

func NewFifaHandler(ts services.TournamentService, ss services.SnapshotService) *FifaHandler {
	return &FifaHandler{
		tournamentService: ts,
		snapshotService:   ss,
	}
}

type userInput struct {
	UserID string `json:"user_id" validate:"omitempty,max=64"`
}

type stateInput struct {
	UserID string                  `json:"user_id" validate:"omitempty,max=64"`
	State  *models.TournamentState `json:"state" validate:"required"`
}

type playoffPredictInput struct {
	Key           string               `json:"key" validate:"required"`
	RoundType     string               `json:"round_type" validate:"required,oneof=round1 semifinals final"`
	MatchID       string               `json:"match_id" validate:"required"`
	ScoreA        *int                 `json:"scoreA" validate:"required,min=0"`
	ScoreB        *int                 `json:"scoreB" validate:"required,min=0"`
	PenaltyWinner *string              `json:"penaltyWinner"`
	State         *models.PlayoffBlock `json:"state"`
}

type commitPlayoffsInput struct {
	UserID        string          `json:"user_id" validate:"omitempty,max=64"`
	PlayoffsState models.Playoffs `json:"playoffs_state" validate:"required,min=1"`
}

type suggestInput struct {
	TeamA string `json:"teamA" validate:"required"`
	TeamB string `json:"teamB" validate:"required,nefield=TeamA"`
}

type recordGroupInput struct {
	Group   string                  `json:"group" validate:"required"`
	MatchID string                  `json:"match_id" validate:"required"`
	ScoreA  *int                    `json:"scoreA" validate:"required,min=0"`
	ScoreB  *int                    `json:"scoreB" validate:"required,min=0"`
	State   *models.TournamentState `json:"state" validate:"required"`
}

type knockoutPredictInput struct {
	Stage         string                  `json:"stage" validate:"required,oneof=r32 r16 qf sf third_place final"`
	MatchSlot     string                  `json:"match_slot"`
	ScoreA        *int                    `json:"scoreA" validate:"required,min=0"`
	ScoreB        *int                    `json:"scoreB" validate:"required,min=0"`
	PenaltyWinner *string                 `json:"penaltyWinner"`
	State         *models.TournamentState `json:"state" validate:"required"`
}

// Init godoc
// @Summary Создать новый турнир
// @Tags fifa2026
// @Description Возвращает свежее состояние группового этапа из конфигурации.
// @Accept json
// @Produce json
// @Param body body userInput false "Пользователь"
// @Success 200 {object} map[string]interface{}
// @Router /fifa2026/init [post]
func (h *FifaHandler) Init(w http.ResponseWriter, r *http.Request) {
	var input userInput
	if err := readJSON(w, r, &input); err != nil && !errors.Is(err, errEmptyBody) {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.tournamentService.Init(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "state": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// InitPlayoffs godoc
// @Summary Сетка стыковых матчей
// @Tags fifa2026
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /fifa2026/playoffs/init [get]
func (h *FifaHandler) InitPlayoffs(w http.ResponseWriter, r *http.Request) {
	playoffs := h.tournamentService.InitPlayoffs(r.Context())
	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "state": playoffs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PredictPlayoffMatch godoc
// @Summary Прогноз стыкового матча
// @Tags fifa2026
// @Description При ничьей обязателен penaltyWinner. Если state не передан, берётся блок из конфигурации.
// @Accept json
// @Produce json
// @Param body body playoffPredictInput true "Матч и текущий блок"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /fifa2026/playoffs/predict_match [post]
func (h *FifaHandler) PredictPlayoffMatch(w http.ResponseWriter, r *http.Request) {
	var input playoffPredictInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	res, err := h.tournamentService.PredictPlayoffMatch(r.Context(), input.Key, input.State, input.RoundType, input.MatchID, *input.ScoreA, *input.ScoreB, input.PenaltyWinner)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	env := jsonResponse{"success": true, "playoff": res.Block, "winner": res.Winner, "stage": res.Stage}
	if err := writeJSON(w, http.StatusOK, env, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CommitPlayoffs godoc
// @Summary Перенести победителей стыков в группы
// @Tags fifa2026
// @Accept json
// @Produce json
// @Param body body commitPlayoffsInput true "Все блоки стыковых матчей"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Не все блоки завершены"
// @Router /fifa2026/playoffs/commit_to_groups [post]
func (h *FifaHandler) CommitPlayoffs(w http.ResponseWriter, r *http.Request) {
	var input commitPlayoffsInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	state, err := h.tournamentService.CommitPlayoffs(r.Context(), input.UserID, input.PlayoffsState)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "state": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Flag godoc
// @Summary Ссылка на флаг команды
// @Tags fifa2026
// @Produce json
// @Param team path string true "Команда"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /fifa2026/flag/{team} [get]
func (h *FifaHandler) Flag(w http.ResponseWriter, r *http.Request) {
	team := chi.URLParam(r, "team")
	url, err := h.tournamentService.FlagURL(team)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "team": team, "url": url}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SuggestGroupMatch godoc
// @Summary Подсказка счёта для матча группы
// @Tags fifa2026
// @Accept json
// @Produce json
// @Param body body suggestInput true "Команды"
// @Success 200 {object} map[string]interface{}
// @Router /fifa2026/predict_group_match [post]
func (h *FifaHandler) SuggestGroupMatch(w http.ResponseWriter, r *http.Request) {
	var input suggestInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	a, b := h.tournamentService.SuggestGroupMatch(input.TeamA, input.TeamB)
	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "scoreA": a, "scoreB": b}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordGroupMatch godoc
// @Summary Записать счёт матча группы
// @Tags fifa2026
// @Accept json
// @Produce json
// @Param body body recordGroupInput true "Матч и состояние"
// @Success 200 {object} map[string]interface{}
// @Router /fifa2026/record_group_match [post]
func (h *FifaHandler) RecordGroupMatch(w http.ResponseWriter, r *http.Request) {
	var input recordGroupInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	state, err := h.tournamentService.RecordGroupMatch(r.Context(), input.State, input.Group, input.MatchID, *input.ScoreA, *input.ScoreB)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "state": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitGroupResults godoc
// @Summary Пересчитать таблицы и сохранить групповой этап
// @Tags fifa2026
// @Accept json
// @Produce json
// @Param body body stateInput true "Состояние"
// @Success 200 {object} map[string]interface{}
// @Router /fifa2026/submit_group_results [post]
func (h *FifaHandler) SubmitGroupResults(w http.ResponseWriter, r *http.Request) {
	var input stateInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	state, cid, err := h.tournamentService.SubmitGroupResults(r.Context(), input.UserID, input.State)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "state": state, "cid": cid}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateRoundOf32 godoc
// @Summary Сформировать 1/16 финала
// @Tags fifa2026
// @Accept json
// @Produce json
// @Param body body stateInput true "Состояние с завершённым групповым этапом"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Групповой этап не завершён"
// @Failure 422 {object} map[string]string "Ошибка шаблона сетки"
// @Router /fifa2026/generate_r32 [post]
func (h *FifaHandler) GenerateRoundOf32(w http.ResponseWriter, r *http.Request) {
	var input stateInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	state, err := h.tournamentService.GenerateRoundOf32(r.Context(), input.State)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "r32": state.R32, "state": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PredictKnockoutMatch godoc
// @Summary Прогноз матча плей-офф
// @Tags fifa2026
// @Description При ничьей обязателен penaltyWinner.
// @Accept json
// @Produce json
// @Param body body knockoutPredictInput true "Матч и состояние"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Стадия ещё не сформирована"
// @Router /fifa2026/predict_knockout_match [post]
func (h *FifaHandler) PredictKnockoutMatch(w http.ResponseWriter, r *http.Request) {
	var input knockoutPredictInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	state, winner, err := h.tournamentService.PredictKnockoutMatch(r.Context(), input.State, input.Stage, input.MatchSlot, *input.ScoreA, *input.ScoreB, input.PenaltyWinner)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	env := jsonResponse{
		"success":         true,
		"stage":           input.Stage,
		"slot":            input.MatchSlot,
		"scoreA":          *input.ScoreA,
		"scoreB":          *input.ScoreB,
		"wentToPenalties": *input.ScoreA == *input.ScoreB,
		"winner":          winner,
		"state":           state,
	}
	if err := writeJSON(w, http.StatusOK, env, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateStage godoc
// @Summary Сформировать следующую стадию
// @Tags fifa2026
// @Accept json
// @Produce json
// @Param stage path string true "r16, qf, sf или final"
// @Param body body stateInput true "Состояние"
// @Success 200 {object} map[string]interface{}
// @Router /fifa2026/generate_{stage} [post]
func (h *FifaHandler) GenerateStage(stage string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input stateInput
		if !decodeAndValidate(w, r, &input) {
			return
		}

		state, err := h.tournamentService.GenerateNextStage(r.Context(), input.State, stage)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}

		env := jsonResponse{"success": true, "state": state}
		if stage == models.StageFinal {
			env["final"] = state.Final
			env["third_place"] = state.ThirdPlace
		} else {
			round, _ := state.Round(stage)
			env[stage] = round
		}
		if err := writeJSON(w, http.StatusOK, env, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
	}
}

// SaveFinal godoc
// @Summary Сохранить итоговое состояние турнира
// @Tags fifa2026
// @Accept json
// @Produce json
// @Param body body stateInput true "Состояние"
// @Success 200 {object} map[string]interface{}
// @Router /fifa2026/save_final [post]
func (h *FifaHandler) SaveFinal(w http.ResponseWriter, r *http.Request) {
	var input stateInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	cid, err := h.tournamentService.SaveFinal(r.Context(), input.UserID, input.State)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	env := jsonResponse{"success": true, "saved": cid != "", "cid": cid, "url": h.snapshotService.URL(cid)}
	if err := writeJSON(w, http.StatusOK, env, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Export godoc
// @Summary PDF с итогами турнира
// @Tags fifa2026
// @Accept json
// @Produce application/pdf
// @Param body body stateInput true "Состояние"
// @Success 200 {file} file
// @Router /fifa2026/export [post]
func (h *FifaHandler) Export(w http.ResponseWriter, r *http.Request) {
	var input stateInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	var buf bytes.Buffer
	if err := export.TournamentPDF(&buf, input.State, input.UserID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writePDF(w, r, "fifa2026_tournament.pdf", &buf)
}

// Snapshot godoc
// @Summary Загрузить сохранённый снапшот
// @Tags fifa2026
// @Produce json
// @Param ref path string true "cid или имя"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /fifa2026/snapshots/{ref} [get]
func (h *FifaHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	var doc json.RawMessage
	meta, err := h.snapshotService.Load(r.Context(), ref, &doc)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	env := jsonResponse{"success": true, "cid": meta.CID, "name": meta.Name, "kind": meta.Kind, "data": doc}
	if err := writeJSON(w, http.StatusOK, env, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func writePDF(w http.ResponseWriter, r *http.Request, filename string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		// Заголовки уже отправлены, остаётся только залогировать.
		serverErrorLog(r, err)
	}
}
