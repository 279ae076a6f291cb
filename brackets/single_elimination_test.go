package brackets

import (
	"fmt"
	"testing"

	"github.com/Dosada05/matchday-predictor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolvedMatch(a, b, winner string) *models.Match {
	m := &models.Match{ID: a + "-" + b, TeamA: a, TeamB: b}
	if winner != "" {
		m.Played = true
		m.ScoreA, m.ScoreB = models.IntPtr(1), models.IntPtr(0)
		if winner == b {
			m.ScoreA, m.ScoreB = models.IntPtr(0), models.IntPtr(1)
		}
		m.Winner = models.StringPtr(winner)
	}
	return m
}

func TestAdvanceRound(t *testing.T) {
	t.Run("pairs winners in slot order", func(t *testing.T) {
		round := models.BracketRound{
			"QF_01": resolvedMatch("a", "W1", "W1"),
			"QF_02": resolvedMatch("W2", "b", "W2"),
			"QF_03": resolvedMatch("W3", "c", "W3"),
			"QF_04": resolvedMatch("d", "W4", "W4"),
		}
		next, err := AdvanceRound(round, "SF")
		require.NoError(t, err)
		require.Len(t, next, 2)

		assert.Equal(t, "W1", next["SF_01"].TeamA)
		assert.Equal(t, "W2", next["SF_01"].TeamB)
		assert.Equal(t, "W3", next["SF_02"].TeamA)
		assert.Equal(t, "W4", next["SF_02"].TeamB)
		for _, m := range next {
			assert.False(t, m.Played)
			assert.Nil(t, m.Winner)
			assert.NotEmpty(t, m.ID)
		}
	})

	t.Run("natural slot order past nine", func(t *testing.T) {
		round := models.BracketRound{}
		for i := 1; i <= 12; i++ {
			w := fmt.Sprintf("W%d", i)
			round[fmt.Sprintf("R_%d", i)] = resolvedMatch(w, "x"+w, w)
		}
		next, err := AdvanceRound(round, "N")
		require.NoError(t, err)
		assert.Equal(t, "W9", next["N_05"].TeamA)
		assert.Equal(t, "W10", next["N_05"].TeamB)
		assert.Equal(t, "W12", next["N_06"].TeamB)
	})

	t.Run("incomplete round", func(t *testing.T) {
		round := models.BracketRound{
			"R16_01": resolvedMatch("a", "b", "a"),
			"R16_02": resolvedMatch("c", "d", ""),
		}
		_, err := AdvanceRound(round, "QF")
		assert.ErrorIs(t, err, ErrRoundIncomplete)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "R16_02")
	})

	t.Run("odd bracket", func(t *testing.T) {
		round := models.BracketRound{
			"X_01": resolvedMatch("a", "b", "a"),
			"X_02": resolvedMatch("c", "d", "c"),
			"X_03": resolvedMatch("e", "f", "f"),
		}
		_, err := AdvanceRound(round, "Y")
		assert.ErrorIs(t, err, ErrOddBracket)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := AdvanceRound(nil, "Y")
		assert.ErrorIs(t, err, ErrEmptyRound)
	})
}

func TestBuildFinalStage(t *testing.T) {
	sf := models.BracketRound{
		"SF_01": resolvedMatch("Argentina", "Croatia", "Argentina"),
		"SF_02": resolvedMatch("France", "Morocco", "France"),
	}
	final, third, err := BuildFinalStage(sf)
	require.NoError(t, err)
	assert.Equal(t, "Argentina", final.TeamA)
	assert.Equal(t, "France", final.TeamB)
	assert.Equal(t, "Croatia", third.TeamA)
	assert.Equal(t, "Morocco", third.TeamB)
	assert.NotEqual(t, final.ID, third.ID)

	sf["SF_02"] = resolvedMatch("France", "Morocco", "")
	_, _, err = BuildFinalStage(sf)
	assert.ErrorIs(t, err, ErrRoundIncomplete)

	_, _, err = BuildFinalStage(models.BracketRound{"SF_01": resolvedMatch("a", "b", "a")})
	assert.ErrorIs(t, err, ErrOddBracket)
}

func twoGroupTables() map[string]models.GroupTable {
	return map[string]models.GroupTable{
		"A": {"a1": {Points: 9}, "a2": {Points: 6}, "a3": {Points: 3, GoalDifference: 1}, "a4": {}},
		"B": {"b1": {Points: 7}, "b2": {Points: 5}, "b3": {Points: 3}, "b4": {Points: 1}},
	}
}

func TestBuildRoundOf32(t *testing.T) {
	t.Run("resolves tokens", func(t *testing.T) {
		cfg := models.KnockoutConfig{
			BestThirdCount: 2,
			RoundOf32: []models.SlotConfig{
				{Slot: "R32_01", Rule: "1A vs best3rd"},
				{Slot: "R32_02", Rule: "1B vs 2A"},
				{Slot: "R32_03", Rule: "2B vs best3rd"},
				{Slot: "R32_04", Rule: "Hosts vs Guests"},
			},
		}
		round, err := BuildRoundOf32(twoGroupTables(), cfg)
		require.NoError(t, err)
		require.Len(t, round, 4)

		assert.Equal(t, [2]string{"a1", "a3"}, [2]string{round["R32_01"].TeamA, round["R32_01"].TeamB})
		assert.Equal(t, [2]string{"b1", "a2"}, [2]string{round["R32_02"].TeamA, round["R32_02"].TeamB})
		assert.Equal(t, [2]string{"b2", "b3"}, [2]string{round["R32_03"].TeamA, round["R32_03"].TeamB})
		assert.Equal(t, [2]string{"Hosts", "Guests"}, [2]string{round["R32_04"].TeamA, round["R32_04"].TeamB})
	})

	t.Run("surplus best3rd", func(t *testing.T) {
		cfg := models.KnockoutConfig{
			BestThirdCount: 1,
			RoundOf32: []models.SlotConfig{
				{Slot: "R32_01", Rule: "1A vs best3rd"},
				{Slot: "R32_02", Rule: "1B vs best3rd"},
			},
		}
		_, err := BuildRoundOf32(twoGroupTables(), cfg)
		assert.ErrorIs(t, err, ErrNotEnoughThirds)
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.Contains(t, err.Error(), "R32_02")
	})

	t.Run("unknown group", func(t *testing.T) {
		cfg := models.KnockoutConfig{RoundOf32: []models.SlotConfig{{Slot: "R32_01", Rule: "1A vs 2Q"}}}
		_, err := BuildRoundOf32(twoGroupTables(), cfg)
		assert.ErrorIs(t, err, ErrUnknownGroup)
	})

	t.Run("group too small", func(t *testing.T) {
		tables := twoGroupTables()
		tables["C"] = models.GroupTable{"c1": {}}
		cfg := models.KnockoutConfig{RoundOf32: []models.SlotConfig{{Slot: "R32_01", Rule: "1A vs 2C"}}}
		_, err := BuildRoundOf32(tables, cfg)
		assert.ErrorIs(t, err, ErrGroupTooSmall)
	})
}
