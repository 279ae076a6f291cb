package brackets

import (
	"testing"

	"github.com/Dosada05/matchday-predictor/models"
	"github.com/stretchr/testify/assert"
)

func teamsOf(rows []models.RankedRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Team
	}
	return out
}

func TestRank(t *testing.T) {
	t.Run("points then gd then gf", func(t *testing.T) {
		table := models.GroupTable{
			"A": {Points: 6, GoalDifference: 2, GoalsFor: 4},
			"B": {Points: 6, GoalDifference: 2, GoalsFor: 5},
			"C": {Points: 9, GoalDifference: 1, GoalsFor: 3},
		}
		assert.Equal(t, []string{"C", "B", "A"}, teamsOf(Rank(table)))
	})

	t.Run("goal difference beats goals scored", func(t *testing.T) {
		table := models.GroupTable{
			"X": {Points: 4, GoalDifference: 1, GoalsFor: 9},
			"Y": {Points: 4, GoalDifference: 3, GoalsFor: 3},
		}
		assert.Equal(t, []string{"Y", "X"}, teamsOf(Rank(table)))
	})

	t.Run("full ties keep name order", func(t *testing.T) {
		table := models.GroupTable{
			"Uruguay": {Points: 4, GoalDifference: 0, GoalsFor: 2},
			"Ghana":   {Points: 4, GoalDifference: 0, GoalsFor: 2},
			"Korea":   {Points: 4, GoalDifference: 0, GoalsFor: 2},
		}
		for i := 0; i < 10; i++ {
			assert.Equal(t, []string{"Ghana", "Korea", "Uruguay"}, teamsOf(Rank(table)))
		}
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Rank(nil))
	})
}

func TestThirdPlaces(t *testing.T) {
	tables := map[string]models.GroupTable{
		"A": {
			"a1": {Points: 9}, "a2": {Points: 6}, "a3": {Points: 3, GoalDifference: -1, GoalsFor: 2}, "a4": {},
		},
		"B": {
			"b1": {Points: 9}, "b2": {Points: 6}, "b3": {Points: 4, GoalDifference: -2, GoalsFor: 1}, "b4": {},
		},
		"C": {
			"c1": {Points: 9}, "c2": {Points: 6}, "c3": {Points: 3, GoalDifference: -1, GoalsFor: 4}, "c4": {},
		},
		"D": {
			"d1": {Points: 3}, "d2": {Points: 1},
		},
	}

	t.Run("ranked across groups", func(t *testing.T) {
		thirds := ThirdPlaces(tables, 8)
		assert.Len(t, thirds, 3, "group D has only two teams")
		assert.Equal(t, "b3", thirds[0].Team)
		assert.Equal(t, "B", thirds[0].Group)
		assert.Equal(t, "c3", thirds[1].Team)
		assert.Equal(t, "a3", thirds[2].Team)
	})

	t.Run("top n", func(t *testing.T) {
		thirds := ThirdPlaces(tables, 2)
		assert.Equal(t, []string{"b3", "c3"}, []string{thirds[0].Team, thirds[1].Team})
	})
}
