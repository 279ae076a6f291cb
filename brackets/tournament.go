package brackets

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/Dosada05/matchday-predictor/models"
)

// nextStage maps a stage that can be generated to the round it is built from.
var nextStage = map[string]struct {
	from   string
	prefix string
}{
	models.StageRoundOf16:    {from: models.StageRoundOf32, prefix: PrefixRoundOf16},
	models.StageQuarterFinal: {from: models.StageRoundOf16, prefix: PrefixQuarterFinal},
	models.StageSemiFinal:    {from: models.StageQuarterFinal, prefix: PrefixSemiFinal},
	models.StageFinal:        {from: models.StageSemiFinal},
}

// stagesAfter lists, for every generated stage, the stages that depend on it.
var stagesAfter = map[string][]string{
	models.StageRoundOf32:    {models.StageRoundOf16, models.StageQuarterFinal, models.StageSemiFinal},
	models.StageRoundOf16:    {models.StageQuarterFinal, models.StageSemiFinal},
	models.StageQuarterFinal: {models.StageSemiFinal},
	models.StageSemiFinal:    nil,
}

// NewTournamentState creates the group stage from configuration: rosters,
// fresh fixtures and zero-seeded tables. No knockout round exists yet.
func NewTournamentState(groups map[string][]string, now time.Time) (*models.TournamentState, error) {
	if len(groups) == 0 {
		return nil, ErrEmptyConfig
	}
	rosters := make(map[string][]string, len(groups))
	for g, teams := range groups {
		rosters[g] = append([]string(nil), teams...)
	}

	fixtures, err := GenerateGroupFixtures(rosters)
	if err != nil {
		return nil, err
	}

	state := &models.TournamentState{
		Groups:      rosters,
		Matches:     fixtures,
		GroupTables: make(map[string]models.GroupTable, len(rosters)),
		CreatedAt:   now.UTC(),
	}
	for g, teams := range rosters {
		state.GroupTables[g], _ = ComputeGroupTable(g, teams, nil)
	}
	return state, nil
}

// SubstitutePlayoffWinners swaps playoff placeholders in the rosters and
// regenerates fixtures from the updated rosters. It refuses once any group
// match has been played.
func SubstitutePlayoffWinners(state *models.TournamentState, winners map[string]string) (*models.TournamentState, error) {
	if err := ValidateState(state); err != nil {
		return nil, err
	}
	for _, g := range state.GroupNames() {
		for _, m := range state.Matches[g] {
			if m.Played {
				return nil, fmt.Errorf("%w: group %s match %s", ErrGroupStageStarted, g, m.ID)
			}
		}
	}
	next, err := NewTournamentState(ReplacePlaceholders(state.Groups, winners), state.CreatedAt)
	if err != nil {
		return nil, err
	}
	return next, nil
}

// CommitPlayoffs builds the group stage with every playoff winner in place.
// Every configured block must be submitted and finished; blocks that are not
// configured are rejected.
func CommitPlayoffs(groups map[string][]string, configured, submitted models.Playoffs, now time.Time) (*models.TournamentState, error) {
	for _, key := range configured.Keys() {
		if _, ok := submitted[key]; !ok {
			return nil, fmt.Errorf("%w: %s was not submitted", ErrPlayoffUnresolved, key)
		}
	}
	for _, key := range submitted.Keys() {
		if _, ok := configured[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPlayoff, key)
		}
	}

	winners, err := PlayoffWinners(submitted)
	if err != nil {
		return nil, err
	}
	base, err := NewTournamentState(groups, now)
	if err != nil {
		return nil, err
	}
	return SubstitutePlayoffWinners(base, winners)
}

// RecordGroupResult stores the score of one group match and refreshes that group's table.
func RecordGroupResult(state *models.TournamentState, group, matchID string, scoreA, scoreB int) (*models.TournamentState, error) {
	if err := ValidateState(state); err != nil {
		return nil, err
	}
	if _, ok := state.Groups[group]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, group)
	}
	if state.R32 != nil {
		return nil, fmt.Errorf("%w: round of 32 already drawn", ErrGroupStageStarted)
	}
	next := state.Clone()

	var match *models.Match
	for _, m := range next.Matches[group] {
		if m.ID == matchID {
			match = m
			break
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s in group %s", ErrMatchNotFound, matchID, group)
	}
	if scoreA < 0 || scoreB < 0 {
		return nil, fmt.Errorf("%w: match %s", ErrNegativeScore, matchID)
	}
	match.Played = true
	match.ScoreA = models.IntPtr(scoreA)
	match.ScoreB = models.IntPtr(scoreB)

	table, err := ComputeGroupTable(group, next.Groups[group], next.Matches[group])
	if err != nil {
		return nil, err
	}
	next.GroupTables[group] = table
	return next, nil
}

// SubmitGroupResults validates caller-supplied group matches and recomputes
// every table from scratch. Each group must carry its full round robin.
func SubmitGroupResults(state *models.TournamentState) (*models.TournamentState, error) {
	if err := ValidateState(state); err != nil {
		return nil, err
	}
	if len(state.Groups) == 0 {
		return nil, ErrEmptyConfig
	}
	next := state.Clone()
	for _, g := range next.GroupNames() {
		if err := checkGroupFixtures(g, next.Groups[g], next.Matches[g]); err != nil {
			return nil, err
		}
		table, err := ComputeGroupTable(g, next.Groups[g], next.Matches[g])
		if err != nil {
			return nil, err
		}
		next.GroupTables[g] = table
	}
	return next, nil
}

// GroupStageComplete reports whether every group has all its matches played.
// When it has not, the first incomplete group is returned.
func GroupStageComplete(state *models.TournamentState) (bool, string) {
	for _, g := range state.GroupNames() {
		if !GroupComplete(state.Matches[g]) {
			return false, g
		}
	}
	return true, ""
}

// GenerateRoundOf32 recomputes the tables of a finished group stage and draws
// the round of 32. Any previously generated knockout rounds are discarded.
func GenerateRoundOf32(state *models.TournamentState, cfg models.KnockoutConfig) (*models.TournamentState, error) {
	next, err := SubmitGroupResults(state)
	if err != nil {
		return nil, err
	}
	if ok, g := GroupStageComplete(next); !ok {
		return nil, fmt.Errorf("%w: group %s", ErrGroupStageIncomplete, g)
	}
	r32, err := BuildRoundOf32(next.GroupTables, cfg)
	if err != nil {
		return nil, err
	}
	next.R32 = r32
	clearAfter(next, models.StageRoundOf32)
	return next, nil
}

// PredictKnockoutMatch resolves one knockout match. For the bracket rounds
// slot is the slot id; for third_place and final it may be empty or the
// match id.
func PredictKnockoutMatch(state *models.TournamentState, stage, slot string, scoreA, scoreB int, penaltyWinner *string) (*models.TournamentState, string, error) {
	if err := ValidateState(state); err != nil {
		return nil, "", err
	}
	next := state.Clone()

	var match *models.Match
	switch stage {
	case models.StageThirdPlace, models.StageFinal:
		match = next.ThirdPlace
		if stage == models.StageFinal {
			match = next.Final
		}
		if match == nil {
			return nil, "", fmt.Errorf("%w: %s", ErrStageNotStarted, stage)
		}
		if slot != "" && slot != stage && slot != match.ID {
			return nil, "", fmt.Errorf("%w: %s in %s", ErrMatchNotFound, slot, stage)
		}
	default:
		round, ok := next.Round(stage)
		if !ok {
			return nil, "", fmt.Errorf("%w: %q", ErrUnknownStage, stage)
		}
		if len(round) == 0 {
			return nil, "", fmt.Errorf("%w: %s", ErrStageNotStarted, stage)
		}
		match, ok = round[slot]
		if !ok {
			return nil, "", fmt.Errorf("%w: %s in %s", ErrMatchNotFound, slot, stage)
		}
	}

	winner, err := PredictMatch(match, scoreA, scoreB, penaltyWinner)
	if err != nil {
		return nil, "", fmt.Errorf("%s %s: %w", stage, slot, err)
	}
	return next, winner, nil
}

// GenerateNextStage builds r16, qf or sf from the previous round, or the final
// and third-place match from the semifinals. Later stages are discarded.
func GenerateNextStage(state *models.TournamentState, stage string) (*models.TournamentState, error) {
	step, ok := nextStage[stage]
	if !ok {
		return nil, fmt.Errorf("%w: cannot generate %q", ErrUnknownStage, stage)
	}
	if err := ValidateState(state); err != nil {
		return nil, err
	}
	prev, _ := state.Round(step.from)
	if len(prev) == 0 {
		return nil, fmt.Errorf("%w: %s is needed before %s", ErrStageNotStarted, step.from, stage)
	}

	next := state.Clone()
	prev, _ = next.Round(step.from)

	if stage == models.StageFinal {
		final, third, err := BuildFinalStage(prev)
		if err != nil {
			return nil, err
		}
		next.Final, next.ThirdPlace = final, third
		return next, nil
	}

	round, err := AdvanceRound(prev, step.prefix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", step.from, err)
	}
	next.SetRound(stage, round)
	clearAfter(next, stage)
	return next, nil
}

func clearAfter(state *models.TournamentState, stage string) {
	for _, s := range stagesAfter[stage] {
		state.SetRound(s, nil)
	}
	state.ThirdPlace = nil
	state.Final = nil
}

// SuggestScore proposes a scoreline for a pairing. It is deterministic per
// pairing and only ever used as a hint; ties are never resolved with it.
func SuggestScore(teamA, teamB string) (int, int) {
	h := fnv.New64a()
	h.Write([]byte(teamA))
	h.Write([]byte{0})
	h.Write([]byte(teamB))
	r := rand.New(rand.NewSource(int64(h.Sum64())))
	return r.Intn(5), r.Intn(5)
}
