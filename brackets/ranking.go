package brackets

import (
	"sort"

	"github.com/Dosada05/matchday-predictor/models"
)

// Rank orders a group table by points, goal difference and goals scored, all
// descending. Teams still level keep the table's name order; head-to-head,
// fair play and drawing of lots are not applied.
func Rank(table models.GroupTable) []models.RankedRow {
	rows := make([]models.RankedRow, 0, len(table))
	for _, team := range table.Teams() {
		rows = append(rows, models.RankedRow{Team: team, StandingRow: *table[team]})
	}
	sortRanked(rows)
	return rows
}

// ThirdPlaces collects the third-ranked team of every group with at least
// three ranked teams and returns the best topN by the same ranking key.
func ThirdPlaces(tables map[string]models.GroupTable, topN int) []models.ThirdPlace {
	groups := make([]string, 0, len(tables))
	for g := range tables {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	thirds := make([]models.ThirdPlace, 0, len(groups))
	for _, g := range groups {
		ranked := Rank(tables[g])
		if len(ranked) < 3 {
			continue
		}
		thirds = append(thirds, models.ThirdPlace{Group: g, RankedRow: ranked[2]})
	}

	sort.SliceStable(thirds, func(i, j int) bool {
		return rankedLess(thirds[i].RankedRow, thirds[j].RankedRow)
	})
	if topN >= 0 && len(thirds) > topN {
		thirds = thirds[:topN]
	}
	return thirds
}

func sortRanked(rows []models.RankedRow) {
	sort.SliceStable(rows, func(i, j int) bool { return rankedLess(rows[i], rows[j]) })
}

// rankedLess reports whether a ranks above b.
func rankedLess(a, b models.RankedRow) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.GoalDifference != b.GoalDifference {
		return a.GoalDifference > b.GoalDifference
	}
	return a.GoalsFor > b.GoalsFor
}
