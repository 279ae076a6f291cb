package brackets

import (
	"fmt"

	"github.com/Dosada05/matchday-predictor/models"
)

const (
	pointsWin  = 3
	pointsDraw = 1
)

// ApplyResult records one result in the table, creating zeroed rows for
// teams seen for the first time. The table is updated in place and returned.
func ApplyResult(table models.GroupTable, teamA, teamB string, scoreA, scoreB int) models.GroupTable {
	if table == nil {
		table = make(models.GroupTable)
	}
	for _, t := range []string{teamA, teamB} {
		if _, ok := table[t]; !ok {
			table[t] = &models.StandingRow{}
		}
	}

	a, b := table[teamA], table[teamB]
	a.Played++
	b.Played++
	a.GoalsFor += scoreA
	a.GoalsAgainst += scoreB
	b.GoalsFor += scoreB
	b.GoalsAgainst += scoreA
	a.GoalDifference = a.GoalsFor - a.GoalsAgainst
	b.GoalDifference = b.GoalsFor - b.GoalsAgainst

	switch {
	case scoreA > scoreB:
		a.Won++
		b.Lost++
		a.Points += pointsWin
	case scoreB > scoreA:
		b.Won++
		a.Lost++
		b.Points += pointsWin
	default:
		a.Drawn++
		b.Drawn++
		a.Points += pointsDraw
		b.Points += pointsDraw
	}
	return table
}

// ComputeGroupTable rebuilds a group table from scratch. Every roster member
// gets a row (zero if they have not played); only played matches count.
func ComputeGroupTable(group string, roster []string, matches []*models.Match) (models.GroupTable, error) {
	table := make(models.GroupTable, len(roster))
	for _, t := range roster {
		table[t] = &models.StandingRow{}
	}
	for _, m := range matches {
		if !m.Played {
			continue
		}
		if m.ScoreA == nil || m.ScoreB == nil {
			return nil, fmt.Errorf("%w: group %s match %s", ErrMissingScore, group, m.ID)
		}
		if *m.ScoreA < 0 || *m.ScoreB < 0 {
			return nil, fmt.Errorf("%w: group %s match %s", ErrNegativeScore, group, m.ID)
		}
		ApplyResult(table, m.TeamA, m.TeamB, *m.ScoreA, *m.ScoreB)
	}
	return table, nil
}

// GroupComplete reports whether every fixture of a group has been played.
func GroupComplete(matches []*models.Match) bool {
	if len(matches) == 0 {
		return false
	}
	for _, m := range matches {
		if !m.Played {
			return false
		}
	}
	return true
}
