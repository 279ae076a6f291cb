package brackets

import (
	"fmt"

	"github.com/Dosada05/matchday-predictor/models"
	"github.com/google/uuid"
)

// Slot prefixes of the generated knockout rounds.
const (
	PrefixRoundOf16    = "R16"
	PrefixQuarterFinal = "QF"
	PrefixSemiFinal    = "SF"
)

// BuildRoundOf32 resolves the round-of-32 template against final group tables.
// best3rd tokens take the ranked third-placed teams one by one in template order.
func BuildRoundOf32(tables map[string]models.GroupTable, cfg models.KnockoutConfig) (models.BracketRound, error) {
	known := make(map[string]bool, len(tables))
	for g := range tables {
		known[g] = true
	}
	rules, err := ParseTemplate(cfg.RoundOf32, known)
	if err != nil {
		return nil, err
	}

	ranked := make(map[string][]models.RankedRow, len(tables))
	rankedGroup := func(g string) ([]models.RankedRow, error) {
		if rows, ok := ranked[g]; ok {
			return rows, nil
		}
		rows := Rank(tables[g])
		if len(rows) < 2 {
			return nil, fmt.Errorf("%w: group %s has %d", ErrGroupTooSmall, g, len(rows))
		}
		ranked[g] = rows
		return rows, nil
	}

	thirds := ThirdPlaces(tables, cfg.ThirdPlaceQuota())
	nextThird := 0

	resolve := func(slot string, tok SlotToken) (string, error) {
		switch tok.Kind {
		case TokenGroupWinner, TokenGroupRunnerUp:
			rows, err := rankedGroup(tok.Group)
			if err != nil {
				return "", fmt.Errorf("slot %s: %w", slot, err)
			}
			if tok.Kind == TokenGroupWinner {
				return rows[0].Team, nil
			}
			return rows[1].Team, nil
		case TokenBestThird:
			if nextThird >= len(thirds) {
				return "", fmt.Errorf("%w: slot %s needs third #%d, %d qualified",
					ErrNotEnoughThirds, slot, nextThird+1, len(thirds))
			}
			team := thirds[nextThird].Team
			nextThird++
			return team, nil
		}
		return tok.Name, nil
	}

	round := make(models.BracketRound, len(rules))
	for _, r := range rules {
		home, err := resolve(r.Slot, r.Home)
		if err != nil {
			return nil, err
		}
		away, err := resolve(r.Slot, r.Away)
		if err != nil {
			return nil, err
		}
		round[r.Slot] = newKnockoutMatch(home, away)
	}
	return round, nil
}

// AdvanceRound pairs the winners of a completed round in slot order:
// winners 0 and 1 meet in PREFIX_01, 2 and 3 in PREFIX_02 and so on.
func AdvanceRound(round models.BracketRound, prefix string) (models.BracketRound, error) {
	if len(round) == 0 {
		return nil, fmt.Errorf("%w: nothing to advance into %s", ErrEmptyRound, prefix)
	}

	if !round.Complete() {
		return nil, fmt.Errorf("%w: no winner in %v", ErrRoundIncomplete, pendingSlots(round))
	}
	slots := round.SlotIDs()
	if len(slots)%2 != 0 {
		return nil, fmt.Errorf("%w: %d matches", ErrOddBracket, len(slots))
	}

	next := make(models.BracketRound, len(slots)/2)
	for i := 0; i < len(slots); i += 2 {
		a, b := round[slots[i]], round[slots[i+1]]
		next[fmt.Sprintf("%s_%02d", prefix, i/2+1)] = newKnockoutMatch(*a.Winner, *b.Winner)
	}
	return next, nil
}

// BuildFinalStage turns two resolved semifinals into the final (winners)
// and the third-place match (losers).
func BuildFinalStage(sf models.BracketRound) (final, thirdPlace *models.Match, err error) {
	if len(sf) != 2 {
		return nil, nil, fmt.Errorf("%w: need 2 semifinals, got %d", ErrOddBracket, len(sf))
	}
	if !sf.Complete() {
		return nil, nil, fmt.Errorf("%w: no winner in %v", ErrRoundIncomplete, pendingSlots(sf))
	}
	slots := sf.SlotIDs()
	s1, s2 := sf[slots[0]], sf[slots[1]]

	l1, _ := s1.Loser()
	l2, _ := s2.Loser()
	return newKnockoutMatch(*s1.Winner, *s2.Winner), newKnockoutMatch(l1, l2), nil
}

func pendingSlots(round models.BracketRound) []string {
	var pending []string
	for _, id := range round.SlotIDs() {
		if !round[id].IsResolved() {
			pending = append(pending, id)
		}
	}
	return pending
}

func newKnockoutMatch(teamA, teamB string) *models.Match {
	return &models.Match{ID: uuid.NewString(), TeamA: teamA, TeamB: teamB}
}
