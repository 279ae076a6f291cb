package models

import "sort"

// StandingRow is one team's line in a group table.
type StandingRow struct {
	Played         int `json:"played"`
	Won            int `json:"won"`
	Drawn          int `json:"drawn"`
	Lost           int `json:"lost"`
	GoalsFor       int `json:"gf"`
	GoalsAgainst   int `json:"ga"`
	GoalDifference int `json:"gd"`
	Points         int `json:"points"`
}

// GroupTable maps team name to its standing row within one group.
type GroupTable map[string]*StandingRow

// RankedRow is a standing row paired with its team, as returned by ranking.
type RankedRow struct {
	Team string `json:"team"`
	StandingRow
}

// ThirdPlace is a third-ranked team together with the group it came from.
type ThirdPlace struct {
	Group string `json:"group"`
	RankedRow
}

// Teams returns the table's team names in ascending order.
func (t GroupTable) Teams() []string {
	teams := make([]string, 0, len(t))
	for team := range t {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

func (t GroupTable) Clone() GroupTable {
	if t == nil {
		return nil
	}
	c := make(GroupTable, len(t))
	for team, row := range t {
		if row == nil {
			c[team] = nil
			continue
		}
		r := *row
		c[team] = &r
	}
	return c
}
