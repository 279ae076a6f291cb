package models

import (
	"sort"
	"strconv"
	"time"
)

// Stage names used by the knockout phase, as they appear in the snapshot JSON.
const (
	StageRoundOf32    = "r32"
	StageRoundOf16    = "r16"
	StageQuarterFinal = "qf"
	StageSemiFinal    = "sf"
	StageThirdPlace   = "third_place"
	StageFinal        = "final"
)

// BracketRound maps slot identifiers (e.g. "R32_07") to matches.
type BracketRound map[string]*Match

// SlotIDs returns the round's slot identifiers in natural order,
// so "R32_2" sorts before "R32_10".
func (r BracketRound) SlotIDs() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return naturalLess(ids[i], ids[j]) })
	return ids
}

// Complete reports whether every match of a non-empty round has a winner.
func (r BracketRound) Complete() bool {
	if len(r) == 0 {
		return false
	}
	for _, m := range r {
		if !m.IsResolved() {
			return false
		}
	}
	return true
}

func (r BracketRound) Clone() BracketRound {
	if r == nil {
		return nil
	}
	c := make(BracketRound, len(r))
	for id, m := range r {
		c[id] = m.Clone()
	}
	return c
}

// TournamentState is the whole tournament snapshot. It is owned by the caller
// and passed in full to every operation.
type TournamentState struct {
	Groups      map[string][]string   `json:"groups"`
	Matches     map[string][]*Match   `json:"matches"`
	GroupTables map[string]GroupTable `json:"group_tables"`
	R32         BracketRound          `json:"r32,omitempty"`
	R16         BracketRound          `json:"r16,omitempty"`
	QF          BracketRound          `json:"qf,omitempty"`
	SF          BracketRound          `json:"sf,omitempty"`
	ThirdPlace  *Match                `json:"third_place,omitempty"`
	Final       *Match                `json:"final,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// GroupNames returns group labels in ascending order.
func (s *TournamentState) GroupNames() []string {
	names := make([]string, 0, len(s.Groups))
	for g := range s.Groups {
		names = append(names, g)
	}
	sort.Strings(names)
	return names
}

// Round returns the bracket round stored under the given stage key.
func (s *TournamentState) Round(stage string) (BracketRound, bool) {
	switch stage {
	case StageRoundOf32:
		return s.R32, true
	case StageRoundOf16:
		return s.R16, true
	case StageQuarterFinal:
		return s.QF, true
	case StageSemiFinal:
		return s.SF, true
	}
	return nil, false
}

// SetRound stores a bracket round under the given stage key.
func (s *TournamentState) SetRound(stage string, round BracketRound) bool {
	switch stage {
	case StageRoundOf32:
		s.R32 = round
	case StageRoundOf16:
		s.R16 = round
	case StageQuarterFinal:
		s.QF = round
	case StageSemiFinal:
		s.SF = round
	default:
		return false
	}
	return true
}

// Champion returns the final's winner once it is known.
func (s *TournamentState) Champion() (string, bool) {
	if !s.Final.IsResolved() {
		return "", false
	}
	return *s.Final.Winner, true
}

// Clone returns a deep copy of the state.
func (s *TournamentState) Clone() *TournamentState {
	if s == nil {
		return nil
	}
	c := &TournamentState{
		Groups:      make(map[string][]string, len(s.Groups)),
		Matches:     make(map[string][]*Match, len(s.Matches)),
		GroupTables: make(map[string]GroupTable, len(s.GroupTables)),
		R32:         s.R32.Clone(),
		R16:         s.R16.Clone(),
		QF:          s.QF.Clone(),
		SF:          s.SF.Clone(),
		ThirdPlace:  s.ThirdPlace.Clone(),
		Final:       s.Final.Clone(),
		CreatedAt:   s.CreatedAt,
	}
	for g, teams := range s.Groups {
		c.Groups[g] = append([]string(nil), teams...)
	}
	for g, matches := range s.Matches {
		ms := make([]*Match, len(matches))
		for i, m := range matches {
			ms[i] = m.Clone()
		}
		c.Matches[g] = ms
	}
	for g, table := range s.GroupTables {
		c.GroupTables[g] = table.Clone()
	}
	return c
}

func naturalLess(a, b string) bool {
	pa, na, okA := splitTrailingNumber(a)
	pb, nb, okB := splitTrailingNumber(b)
	if okA && okB && pa == pb {
		return na < nb
	}
	return a < b
}

func splitTrailingNumber(s string) (string, int, bool) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return s, 0, false
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return s, 0, false
	}
	return s[:i], n, true
}
