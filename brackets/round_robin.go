package brackets

import (
	"fmt"
	"sort"

	"github.com/Dosada05/matchday-predictor/models"
	"github.com/google/uuid"
)

const groupSize = 4

// roundRobinOrder is the fixed pairing order for a 4-team group. Position matters:
// matchday numbering downstream is derived from it.
var roundRobinOrder = [6][2]int{
	{0, 1},
	{2, 3},
	{0, 2},
	{1, 3},
	{0, 3},
	{1, 2},
}

// GenerateFixtures creates the 6-match round robin for a group of exactly four teams.
func GenerateFixtures(group string, teams []string) ([]*models.Match, error) {
	if len(teams) != groupSize {
		return nil, fmt.Errorf("%w: group %s has %d", ErrInvalidGroupSize, group, len(teams))
	}

	matches := make([]*models.Match, 0, len(roundRobinOrder))
	for i, pair := range roundRobinOrder {
		matches = append(matches, &models.Match{
			ID:       uuid.NewString(),
			TeamA:    teams[pair[0]],
			TeamB:    teams[pair[1]],
			Matchday: Matchday(i),
		})
	}
	return matches, nil
}

// GenerateGroupFixtures generates fixtures for every group. Nothing is returned
// unless all groups are valid.
func GenerateGroupFixtures(groups map[string][]string) (map[string][]*models.Match, error) {
	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)

	out := make(map[string][]*models.Match, len(groups))
	for _, g := range names {
		matches, err := GenerateFixtures(g, groups[g])
		if err != nil {
			return nil, err
		}
		out[g] = matches
	}
	return out, nil
}

// Matchday returns the 1-based matchday of the fixture at position idx
// in a generated group schedule (two matches per matchday).
func Matchday(idx int) int {
	return idx/2 + 1
}
