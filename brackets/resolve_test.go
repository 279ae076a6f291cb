package brackets

import (
	"testing"

	"github.com/Dosada05/matchday-predictor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWinner(t *testing.T) {
	m := &models.Match{ID: "qf-1", TeamA: "France", TeamB: "England"}

	t.Run("higher score wins", func(t *testing.T) {
		w, err := ResolveWinner(m, 2, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, "France", w)

		w, err = ResolveWinner(m, 0, 3, models.StringPtr("France"))
		require.NoError(t, err)
		assert.Equal(t, "England", w, "penalty winner is ignored when scores differ")
	})

	t.Run("tie needs penalty winner", func(t *testing.T) {
		_, err := ResolveWinner(m, 1, 1, nil)
		assert.ErrorIs(t, err, ErrPenaltyWinnerRequired)
		assert.ErrorIs(t, err, ErrValidation)

		_, err = ResolveWinner(m, 1, 1, models.StringPtr(""))
		assert.ErrorIs(t, err, ErrPenaltyWinnerRequired)
	})

	t.Run("penalty winner must play", func(t *testing.T) {
		w, err := ResolveWinner(m, 1, 1, models.StringPtr("France"))
		require.NoError(t, err)
		assert.Equal(t, "France", w)

		_, err = ResolveWinner(m, 1, 1, models.StringPtr("Germany"))
		assert.ErrorIs(t, err, ErrInvalidPenaltyWinner)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown teams", func(t *testing.T) {
		_, err := ResolveWinner(&models.Match{ID: "f", TeamA: "France"}, 1, 0, nil)
		assert.ErrorIs(t, err, ErrNotReady)
	})

	t.Run("negative score", func(t *testing.T) {
		_, err := ResolveWinner(m, -1, 0, nil)
		assert.ErrorIs(t, err, ErrNegativeScore)
	})
}

func TestPredictMatch(t *testing.T) {
	t.Run("penalty tie", func(t *testing.T) {
		m := &models.Match{ID: "sf-1", TeamA: "France", TeamB: "Morocco"}
		w, err := PredictMatch(m, 1, 1, models.StringPtr("France"))
		require.NoError(t, err)
		assert.Equal(t, "France", w)
		assert.True(t, m.Played)
		assert.Equal(t, 1, *m.ScoreA)
		assert.Equal(t, "France", *m.PenaltyWinner)
		assert.Equal(t, "France", *m.Winner)
		assert.Equal(t, models.MatchStatusResolved, m.Status())
	})

	t.Run("failure leaves match untouched", func(t *testing.T) {
		m := &models.Match{ID: "sf-2", TeamA: "France", TeamB: "Morocco"}
		_, err := PredictMatch(m, 1, 1, models.StringPtr("Germany"))
		require.Error(t, err)
		assert.Equal(t, &models.Match{ID: "sf-2", TeamA: "France", TeamB: "Morocco"}, m)
	})

	t.Run("winner is final", func(t *testing.T) {
		m := &models.Match{ID: "f", TeamA: "Argentina", TeamB: "France"}
		_, err := PredictMatch(m, 3, 2, nil)
		require.NoError(t, err)
		_, err = PredictMatch(m, 0, 1, nil)
		assert.ErrorIs(t, err, ErrMatchAlreadyResolved)
		assert.Equal(t, "Argentina", *m.Winner)
		assert.Nil(t, m.PenaltyWinner)
	})
}

func TestRecordThenResolve(t *testing.T) {
	m := &models.Match{ID: "r16-3", TeamA: "Croatia", TeamB: "Japan"}

	require.NoError(t, RecordScore(m, 1, 1))
	assert.Equal(t, models.MatchStatusPlayed, m.Status())
	assert.False(t, m.IsResolved(), "a drawn score awaits resolution")

	assert.ErrorIs(t, Resolve(m, nil), ErrPenaltyWinnerRequired)
	require.NoError(t, Resolve(m, models.StringPtr("Croatia")))
	assert.Equal(t, "Croatia", *m.Winner)

	loser, ok := m.Loser()
	assert.True(t, ok)
	assert.Equal(t, "Japan", loser)

	assert.ErrorIs(t, RecordScore(m, 2, 0), ErrMatchAlreadyResolved)
	assert.ErrorIs(t, Resolve(&models.Match{ID: "x", TeamA: "a", TeamB: "b"}, nil), ErrMissingScore)
}
