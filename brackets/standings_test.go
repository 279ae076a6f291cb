package brackets

import (
	"math/rand"
	"testing"

	"github.com/Dosada05/matchday-predictor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	a, b   string
	sa, sb int
}

var sampleResults = []result{
	{"Brazil", "Serbia", 2, 0},
	{"Switzerland", "Cameroon", 1, 0},
	{"Cameroon", "Serbia", 3, 3},
	{"Brazil", "Switzerland", 1, 0},
	{"Serbia", "Switzerland", 2, 3},
	{"Cameroon", "Brazil", 1, 0},
}

func tableOf(results []result) models.GroupTable {
	var table models.GroupTable
	for _, r := range results {
		table = ApplyResult(table, r.a, r.b, r.sa, r.sb)
	}
	return table
}

func TestApplyResult(t *testing.T) {
	table := ApplyResult(nil, "Spain", "Japan", 1, 2)
	require.Len(t, table, 2)

	assert.Equal(t, models.StandingRow{Played: 1, Lost: 1, GoalsFor: 1, GoalsAgainst: 2, GoalDifference: -1}, *table["Spain"])
	assert.Equal(t, models.StandingRow{Played: 1, Won: 1, GoalsFor: 2, GoalsAgainst: 1, GoalDifference: 1, Points: 3}, *table["Japan"])

	ApplyResult(table, "Spain", "Japan", 0, 0)
	assert.Equal(t, 1, table["Spain"].Drawn)
	assert.Equal(t, 1, table["Spain"].Points)
	assert.Equal(t, 4, table["Japan"].Points)
	assert.Equal(t, 2, table["Japan"].Played)
}

func TestApplyResultOrderIndependent(t *testing.T) {
	want := tableOf(sampleResults)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		shuffled := append([]result(nil), sampleResults...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, want, tableOf(shuffled), "permutation %d", i)
	}
}

func TestGoalDifferenceSumsToZero(t *testing.T) {
	table := tableOf(sampleResults)
	sum := 0
	for _, row := range table {
		sum += row.GoalDifference
		assert.Equal(t, row.GoalsFor-row.GoalsAgainst, row.GoalDifference)
	}
	assert.Zero(t, sum)
}

func TestPointsMonotonic(t *testing.T) {
	// X: 2 wins 1 draw, Y: 1 win 1 draw 1 loss.
	table := tableOf([]result{
		{"X", "P", 1, 0},
		{"X", "Q", 1, 0},
		{"X", "R", 0, 0},
		{"Y", "P", 1, 0},
		{"Y", "Q", 0, 0},
		{"Y", "R", 0, 1},
	})
	assert.Greater(t, table["X"].Won, table["Y"].Won)
	assert.GreaterOrEqual(t, table["X"].Drawn, table["Y"].Drawn)
	assert.Greater(t, table["X"].Points, table["Y"].Points)
}

func TestComputeGroupTable(t *testing.T) {
	roster := []string{"Brazil", "Serbia", "Switzerland", "Cameroon"}

	t.Run("zero seeded", func(t *testing.T) {
		table, err := ComputeGroupTable("G", roster, nil)
		require.NoError(t, err)
		require.Len(t, table, 4)
		for _, team := range roster {
			assert.Equal(t, models.StandingRow{}, *table[team])
		}
	})

	t.Run("only played matches count", func(t *testing.T) {
		matches := []*models.Match{
			{ID: "1", TeamA: "Brazil", TeamB: "Serbia", Played: true, ScoreA: models.IntPtr(2), ScoreB: models.IntPtr(0)},
			{ID: "2", TeamA: "Switzerland", TeamB: "Cameroon", ScoreA: models.IntPtr(5), ScoreB: models.IntPtr(0)},
		}
		table, err := ComputeGroupTable("G", roster, matches)
		require.NoError(t, err)
		assert.Equal(t, 3, table["Brazil"].Points)
		assert.Equal(t, 0, table["Switzerland"].Played)
		assert.Equal(t, 0, table["Cameroon"].GoalsAgainst)
	})

	t.Run("idempotent", func(t *testing.T) {
		matches := []*models.Match{
			{ID: "1", TeamA: "Brazil", TeamB: "Serbia", Played: true, ScoreA: models.IntPtr(2), ScoreB: models.IntPtr(2)},
		}
		first, err := ComputeGroupTable("G", roster, matches)
		require.NoError(t, err)
		second, err := ComputeGroupTable("G", roster, matches)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("played without score", func(t *testing.T) {
		matches := []*models.Match{{ID: "9", TeamA: "Brazil", TeamB: "Serbia", Played: true, ScoreA: models.IntPtr(1)}}
		_, err := ComputeGroupTable("G", roster, matches)
		assert.ErrorIs(t, err, ErrMissingScore)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("negative score", func(t *testing.T) {
		matches := []*models.Match{{ID: "9", TeamA: "Brazil", TeamB: "Serbia", Played: true, ScoreA: models.IntPtr(-1), ScoreB: models.IntPtr(0)}}
		_, err := ComputeGroupTable("G", roster, matches)
		assert.ErrorIs(t, err, ErrNegativeScore)
	})
}

func TestGroupComplete(t *testing.T) {
	assert.False(t, GroupComplete(nil))
	assert.False(t, GroupComplete([]*models.Match{{Played: true}, {}}))
	assert.True(t, GroupComplete([]*models.Match{{Played: true}, {Played: true}}))
}
