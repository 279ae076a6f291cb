package brackets

import (
	"fmt"

	"github.com/Dosada05/matchday-predictor/models"
)

// ResolveWinner decides the winner of a match from its scoreline. A level score
// needs a penalty winner that is one of the two teams. It never guesses.
func ResolveWinner(m *models.Match, scoreA, scoreB int, penaltyWinner *string) (string, error) {
	if m.TeamA == "" || m.TeamB == "" {
		return "", fmt.Errorf("%w: match %s", ErrTeamsUnknown, m.ID)
	}
	if scoreA < 0 || scoreB < 0 {
		return "", fmt.Errorf("%w: match %s", ErrNegativeScore, m.ID)
	}
	switch {
	case scoreA > scoreB:
		return m.TeamA, nil
	case scoreB > scoreA:
		return m.TeamB, nil
	}
	if penaltyWinner == nil || *penaltyWinner == "" {
		return "", fmt.Errorf("%w: match %s (%s vs %s) is tied", ErrPenaltyWinnerRequired, m.ID, m.TeamA, m.TeamB)
	}
	if !m.HasTeam(*penaltyWinner) {
		return "", fmt.Errorf("%w: %q is not playing in match %s", ErrInvalidPenaltyWinner, *penaltyWinner, m.ID)
	}
	return *penaltyWinner, nil
}

// RecordScore stores a regulation score without resolving the match.
func RecordScore(m *models.Match, scoreA, scoreB int) error {
	if m.IsResolved() {
		return fmt.Errorf("%w: match %s", ErrMatchAlreadyResolved, m.ID)
	}
	if scoreA < 0 || scoreB < 0 {
		return fmt.Errorf("%w: match %s", ErrNegativeScore, m.ID)
	}
	m.Played = true
	m.ScoreA = models.IntPtr(scoreA)
	m.ScoreB = models.IntPtr(scoreB)
	return nil
}

// Resolve sets the winner of a played match. The winner, once set, is final.
func Resolve(m *models.Match, penaltyWinner *string) error {
	if m.IsResolved() {
		return fmt.Errorf("%w: match %s", ErrMatchAlreadyResolved, m.ID)
	}
	if !m.Played || m.ScoreA == nil || m.ScoreB == nil {
		return fmt.Errorf("%w: match %s has no score", ErrMissingScore, m.ID)
	}
	winner, err := ResolveWinner(m, *m.ScoreA, *m.ScoreB, penaltyWinner)
	if err != nil {
		return err
	}
	if *m.ScoreA == *m.ScoreB {
		m.PenaltyWinner = models.StringPtr(winner)
	} else {
		m.PenaltyWinner = nil
	}
	m.Winner = models.StringPtr(winner)
	return nil
}

// PredictMatch records a score and resolves the match in one step. The match is
// left untouched if anything is wrong.
func PredictMatch(m *models.Match, scoreA, scoreB int, penaltyWinner *string) (string, error) {
	if m.IsResolved() {
		return "", fmt.Errorf("%w: match %s", ErrMatchAlreadyResolved, m.ID)
	}
	winner, err := ResolveWinner(m, scoreA, scoreB, penaltyWinner)
	if err != nil {
		return "", err
	}
	if err := RecordScore(m, scoreA, scoreB); err != nil {
		return "", err
	}
	if err := Resolve(m, models.StringPtr(winner)); err != nil {
		return "", err
	}
	return winner, nil
}
