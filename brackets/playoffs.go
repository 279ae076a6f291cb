package brackets

import (
	"fmt"
	"strings"

	"github.com/Dosada05/matchday-predictor/models"
)

// PlayoffShape validates the block layout and returns which one it is.
func PlayoffShape(key string, b *models.PlayoffBlock) (models.PlayoffShape, error) {
	if b == nil || b.Final == nil {
		return "", fmt.Errorf("%w: %s has no final", ErrMalformedPlayoff, key)
	}
	for _, m := range append(append([]*models.Match(nil), b.Round1...), b.Semifinals...) {
		if m == nil {
			return "", fmt.Errorf("%w: %s has a null match", ErrMalformedPlayoff, key)
		}
	}
	switch {
	case len(b.Round1) > 0 && len(b.Semifinals) > 0:
		return "", fmt.Errorf("%w: %s has both round1 and semifinals", ErrMalformedPlayoff, key)
	case len(b.Round1) == 1:
		return models.PlayoffSingleRound, nil
	case len(b.Semifinals) == 2:
		return models.PlayoffTwoRound, nil
	}
	return "", fmt.Errorf("%w: %s needs one round1 match or two semifinals (got %d/%d)",
		ErrMalformedPlayoff, key, len(b.Round1), len(b.Semifinals))
}

// PlayoffStage reports where a block is in its progression.
func PlayoffStage(key string, b *models.PlayoffBlock) (models.PlayoffStage, error) {
	shape, err := PlayoffShape(key, b)
	if err != nil {
		return "", err
	}
	if b.Final.IsResolved() {
		return models.PlayoffDone, nil
	}
	switch shape {
	case models.PlayoffSingleRound:
		if !b.Round1[0].IsResolved() {
			return models.PlayoffAwaitingRound1, nil
		}
	case models.PlayoffTwoRound:
		if !b.Semifinals[0].IsResolved() || !b.Semifinals[1].IsResolved() {
			return models.PlayoffAwaitingSemis, nil
		}
	}
	return models.PlayoffAwaitingFinal, nil
}

// AdvancePlayoff copies early-round winners into the final once the early
// round is complete. Teams already placed in the final are not overwritten.
func AdvancePlayoff(key string, b *models.PlayoffBlock) (models.PlayoffStage, error) {
	shape, err := PlayoffShape(key, b)
	if err != nil {
		return "", err
	}
	switch shape {
	case models.PlayoffSingleRound:
		if r1 := b.Round1[0]; r1.IsResolved() && b.Final.TeamA == "" {
			b.Final.TeamA = *r1.Winner
		}
	case models.PlayoffTwoRound:
		s1, s2 := b.Semifinals[0], b.Semifinals[1]
		if s1.IsResolved() && s2.IsResolved() {
			if b.Final.TeamA == "" {
				b.Final.TeamA = *s1.Winner
			}
			if b.Final.TeamB == "" {
				b.Final.TeamB = *s2.Winner
			}
		}
	}
	return PlayoffStage(key, b)
}

// PredictPlayoffMatch records and resolves one playoff match, then advances the block.
// roundType is one of "round1", "semifinals" or "final".
func PredictPlayoffMatch(key string, b *models.PlayoffBlock, roundType, matchID string, scoreA, scoreB int, penaltyWinner *string) (string, models.PlayoffStage, error) {
	if _, err := PlayoffShape(key, b); err != nil {
		return "", "", err
	}

	var candidates []*models.Match
	switch roundType {
	case models.PlayoffRound1:
		candidates = b.Round1
	case models.PlayoffSemifinals:
		candidates = b.Semifinals
	case models.PlayoffFinal:
		candidates = []*models.Match{b.Final}
	default:
		return "", "", fmt.Errorf("%w: round type %q in %s", ErrUnknownStage, roundType, key)
	}
	if len(candidates) == 0 {
		return "", "", fmt.Errorf("%w: %s has no %s", ErrUnknownStage, key, roundType)
	}

	var match *models.Match
	for _, m := range candidates {
		if m.ID == matchID {
			match = m
			break
		}
	}
	if match == nil {
		return "", "", fmt.Errorf("%w: %s in %s/%s", ErrMatchNotFound, matchID, key, roundType)
	}

	winner, err := PredictMatch(match, scoreA, scoreB, penaltyWinner)
	if err != nil {
		return "", "", err
	}
	stage, err := AdvancePlayoff(key, b)
	if err != nil {
		return "", "", err
	}
	return winner, stage, nil
}

// PlayoffWinners maps placeholder names to the winners of finished blocks. Both
// the block key and its slot name are registered. Every block must be done.
func PlayoffWinners(playoffs models.Playoffs) (map[string]string, error) {
	winners := make(map[string]string, 2*len(playoffs))
	for _, k := range playoffs.Keys() {
		b := playoffs[k]
		stage, err := PlayoffStage(k, b)
		if err != nil {
			return nil, err
		}
		if stage != models.PlayoffDone {
			return nil, fmt.Errorf("%w: %s is %s", ErrPlayoffUnresolved, k, stage)
		}
		winners[k] = *b.Final.Winner
		if b.SlotName != "" {
			winners[b.SlotName] = *b.Final.Winner
		}
	}
	return winners, nil
}

// ReplacePlaceholders returns a copy of the group rosters with playoff
// placeholders swapped for winners. Placeholders match in underscore and
// space spelling ("UEFA_Playoff_A" == "UEFA Playoff A").
func ReplacePlaceholders(groups map[string][]string, winners map[string]string) map[string][]string {
	norm := make(map[string]string, 3*len(winners))
	for k, v := range winners {
		norm[k] = v
		norm[strings.ReplaceAll(k, "_", " ")] = v
		norm[strings.ReplaceAll(k, " ", "_")] = v
	}

	out := make(map[string][]string, len(groups))
	for g, teams := range groups {
		roster := make([]string, len(teams))
		for i, t := range teams {
			if w, ok := norm[t]; ok {
				roster[i] = w
			} else {
				roster[i] = t
			}
		}
		out[g] = roster
	}
	return out
}
