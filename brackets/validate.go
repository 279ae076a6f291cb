package brackets

import (
	"fmt"

	"github.com/Dosada05/matchday-predictor/models"
)

// ValidateState rejects caller-supplied state with null entries: matches,
// table rows or bracket slots decoded from JSON null. Absent knockout stages
// are fine; a present stage must not contain holes.
func ValidateState(state *models.TournamentState) error {
	if state == nil {
		return fmt.Errorf("%w: state is null", ErrMalformedState)
	}
	for _, g := range state.GroupNames() {
		for i, m := range state.Matches[g] {
			if m == nil {
				return fmt.Errorf("%w: group %s match #%d is null", ErrMalformedState, g, i+1)
			}
		}
		for _, team := range state.GroupTables[g].Teams() {
			if state.GroupTables[g][team] == nil {
				return fmt.Errorf("%w: group %s table row %s is null", ErrMalformedState, g, team)
			}
		}
	}
	for g := range state.Matches {
		if _, ok := state.Groups[g]; !ok {
			return fmt.Errorf("%w: matches for unknown group %s", ErrMalformedState, g)
		}
	}
	for _, stage := range []string{models.StageRoundOf32, models.StageRoundOf16, models.StageQuarterFinal, models.StageSemiFinal} {
		round, _ := state.Round(stage)
		for _, slot := range round.SlotIDs() {
			if round[slot] == nil {
				return fmt.Errorf("%w: %s slot %s is null", ErrMalformedState, stage, slot)
			}
		}
	}
	return nil
}

// checkGroupFixtures makes sure a group's match list is the full round robin
// of its roster: every pair of teams exactly once, nothing else.
func checkGroupFixtures(group string, roster []string, matches []*models.Match) error {
	if len(roster) != groupSize {
		return fmt.Errorf("%w: group %s has %d teams", ErrFixturesMismatch, group, len(roster))
	}
	members := make(map[string]bool, len(roster))
	for _, t := range roster {
		if members[t] {
			return fmt.Errorf("%w: group %s lists %s twice", ErrFixturesMismatch, group, t)
		}
		members[t] = true
	}

	seen := make(map[[2]string]bool, len(matches))
	for _, m := range matches {
		if !members[m.TeamA] || !members[m.TeamB] {
			return fmt.Errorf("%w: match %s (%s vs %s) is not in group %s",
				ErrMatchNotFound, m.ID, m.TeamA, m.TeamB, group)
		}
		if m.TeamA == m.TeamB {
			return fmt.Errorf("%w: group %s match %s pairs %s with itself", ErrFixturesMismatch, group, m.ID, m.TeamA)
		}
		pair := [2]string{m.TeamA, m.TeamB}
		if pair[0] > pair[1] {
			pair[0], pair[1] = pair[1], pair[0]
		}
		if seen[pair] {
			return fmt.Errorf("%w: group %s has %s vs %s twice", ErrFixturesMismatch, group, pair[0], pair[1])
		}
		seen[pair] = true
	}

	if want := len(roster) * (len(roster) - 1) / 2; len(seen) != want {
		return fmt.Errorf("%w: group %s has %d of %d fixtures", ErrFixturesMismatch, group, len(seen), want)
	}
	return nil
}
