package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/matchday-predictor/brackets"
	"github.com/Dosada05/matchday-predictor/models"
)

const (
	flagURLFormat = "https://flagcdn.com/w80/%s.png"
	defaultUserID = "guest"
)

// PlayoffResult is the outcome of one playoff prediction.
type PlayoffResult struct {
	Block  *models.PlayoffBlock
	Winner string
	Stage  models.PlayoffStage
}

// TournamentService drives the FIFA predictor over caller-owned state.
type TournamentService interface {
	Init(ctx context.Context) (*models.TournamentState, error)
	InitPlayoffs(ctx context.Context) models.Playoffs
	PredictPlayoffMatch(ctx context.Context, key string, block *models.PlayoffBlock, roundType, matchID string, scoreA, scoreB int, penaltyWinner *string) (*PlayoffResult, error)
	CommitPlayoffs(ctx context.Context, userID string, playoffs models.Playoffs) (*models.TournamentState, error)
	FlagURL(team string) (string, error)
	SuggestGroupMatch(teamA, teamB string) (int, int)
	RecordGroupMatch(ctx context.Context, state *models.TournamentState, group, matchID string, scoreA, scoreB int) (*models.TournamentState, error)
	SubmitGroupResults(ctx context.Context, userID string, state *models.TournamentState) (*models.TournamentState, string, error)
	GenerateRoundOf32(ctx context.Context, state *models.TournamentState) (*models.TournamentState, error)
	PredictKnockoutMatch(ctx context.Context, state *models.TournamentState, stage, slot string, scoreA, scoreB int, penaltyWinner *string) (*models.TournamentState, string, error)
	GenerateNextStage(ctx context.Context, state *models.TournamentState, stage string) (*models.TournamentState, error)
	SaveFinal(ctx context.Context, userID string, state *models.TournamentState) (string, error)
}

type tournamentService struct {
	cfg       *models.TournamentConfig
	snapshots SnapshotService
	logger    *slog.Logger
	now       func() time.Time
}

func NewTournamentService(cfg *models.TournamentConfig, snapshots SnapshotService, logger *slog.Logger) TournamentService {
	return &tournamentService{
		cfg:       cfg,
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *tournamentService) Init(ctx context.Context) (*models.TournamentState, error) {
	state, err := brackets.NewTournamentState(s.cfg.GroupStage.Groups, s.now())
	if err != nil {
		return nil, fmt.Errorf("init tournament: %w", err)
	}
	return state, nil
}

func (s *tournamentService) InitPlayoffs(ctx context.Context) models.Playoffs {
	return models.Playoffs(s.cfg.Playoffs).Clone()
}

func (s *tournamentService) PredictPlayoffMatch(ctx context.Context, key string, block *models.PlayoffBlock, roundType, matchID string, scoreA, scoreB int, penaltyWinner *string) (*PlayoffResult, error) {
	if block == nil {
		tmpl, ok := s.cfg.Playoffs[key]
		if !ok {
			return nil, fmt.Errorf("%w: playoff %s", ErrNotFound, key)
		}
		block = tmpl
	}
	next := block.Clone()

	winner, stage, err := brackets.PredictPlayoffMatch(key, next, roundType, matchID, scoreA, scoreB, penaltyWinner)
	if err != nil {
		return nil, err
	}
	return &PlayoffResult{Block: next, Winner: winner, Stage: stage}, nil
}

func (s *tournamentService) CommitPlayoffs(ctx context.Context, userID string, playoffs models.Playoffs) (*models.TournamentState, error) {
	state, err := brackets.CommitPlayoffs(s.cfg.GroupStage.Groups, s.cfg.Playoffs, playoffs, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info("playoffs committed", slog.String("user_id", userOrGuest(userID)), slog.Int("blocks", len(playoffs)))
	return state, nil
}

func (s *tournamentService) FlagURL(team string) (string, error) {
	code, ok := s.cfg.Flags[team]
	if !ok {
		code, ok = s.cfg.Flags[strings.ReplaceAll(team, "_", " ")]
	}
	if !ok || code == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownTeam, team)
	}
	return fmt.Sprintf(flagURLFormat, strings.ToLower(code)), nil
}

func (s *tournamentService) SuggestGroupMatch(teamA, teamB string) (int, int) {
	return brackets.SuggestScore(teamA, teamB)
}

func (s *tournamentService) RecordGroupMatch(ctx context.Context, state *models.TournamentState, group, matchID string, scoreA, scoreB int) (*models.TournamentState, error) {
	return brackets.RecordGroupResult(state, group, matchID, scoreA, scoreB)
}

// SubmitGroupResults recomputes the tables and stores the result as
// fifa_groups_<user>. A failed save is logged; the cid is then empty.
func (s *tournamentService) SubmitGroupResults(ctx context.Context, userID string, state *models.TournamentState) (*models.TournamentState, string, error) {
	next, err := brackets.SubmitGroupResults(state)
	if err != nil {
		return nil, "", err
	}
	cid := s.save(ctx, "fifa_groups_"+userOrGuest(userID), models.SnapshotKindGroups, next)
	return next, cid, nil
}

func (s *tournamentService) GenerateRoundOf32(ctx context.Context, state *models.TournamentState) (*models.TournamentState, error) {
	return brackets.GenerateRoundOf32(state, s.cfg.Knockouts)
}

func (s *tournamentService) PredictKnockoutMatch(ctx context.Context, state *models.TournamentState, stage, slot string, scoreA, scoreB int, penaltyWinner *string) (*models.TournamentState, string, error) {
	return brackets.PredictKnockoutMatch(state, stage, slot, scoreA, scoreB, penaltyWinner)
}

func (s *tournamentService) GenerateNextStage(ctx context.Context, state *models.TournamentState, stage string) (*models.TournamentState, error) {
	return brackets.GenerateNextStage(state, stage)
}

// SaveFinal stores the state as fifa_final_<user>. Like SubmitGroupResults,
// a failed save only yields an empty cid.
func (s *tournamentService) SaveFinal(ctx context.Context, userID string, state *models.TournamentState) (string, error) {
	if state == nil || len(state.Groups) == 0 {
		return "", fmt.Errorf("%w: state has no groups", ErrValidationFailed)
	}
	if err := brackets.ValidateState(state); err != nil {
		return "", err
	}
	return s.save(ctx, "fifa_final_"+userOrGuest(userID), models.SnapshotKindFinal, state), nil
}

func (s *tournamentService) save(ctx context.Context, name, kind string, v interface{}) string {
	cid, err := s.snapshots.Save(ctx, name, kind, v)
	if err != nil {
		s.logger.Error("snapshot save failed", slog.String("name", name), slog.Any("error", err))
		return ""
	}
	return cid
}

func userOrGuest(userID string) string {
	if userID = strings.TrimSpace(userID); userID == "" {
		return defaultUserID
	}
	return userID
}
