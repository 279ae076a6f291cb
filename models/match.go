package models

// MatchStatus описывает, на каком этапе находится матч.
type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusPlayed    MatchStatus = "played"
	MatchStatusResolved  MatchStatus = "resolved"
)

// Match is a single fixture. Teams are identified by name.
// Played implies both scores are set; Winner is set only by resolution.
type Match struct {
	ID            string  `json:"id" yaml:"id"`
	TeamA         string  `json:"teamA" yaml:"teamA"`
	TeamB         string  `json:"teamB" yaml:"teamB"`
	Played        bool    `json:"played" yaml:"played"`
	ScoreA        *int    `json:"scoreA" yaml:"scoreA"`
	ScoreB        *int    `json:"scoreB" yaml:"scoreB"`
	PenaltyWinner *string `json:"penaltyWinner" yaml:"penaltyWinner"`
	Winner        *string `json:"winner" yaml:"winner"`
	// Matchday is set on group fixtures only.
	Matchday      int     `json:"matchday,omitempty" yaml:"matchday,omitempty"`
}

func (m *Match) Status() MatchStatus {
	switch {
	case m.Winner != nil:
		return MatchStatusResolved
	case m.Played:
		return MatchStatusPlayed
	default:
		return MatchStatusScheduled
	}
}

func (m *Match) IsResolved() bool {
	return m != nil && m.Winner != nil && *m.Winner != ""
}

// HasTeam reports whether team is one of the two participants.
func (m *Match) HasTeam(team string) bool {
	return team != "" && (team == m.TeamA || team == m.TeamB)
}

// Loser returns the non-winning side of a resolved match.
func (m *Match) Loser() (string, bool) {
	if !m.IsResolved() {
		return "", false
	}
	if *m.Winner == m.TeamA {
		return m.TeamB, true
	}
	return m.TeamA, true
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (m *Match) Clone() *Match {
	if m == nil {
		return nil
	}
	c := *m
	c.ScoreA = cloneInt(m.ScoreA)
	c.ScoreB = cloneInt(m.ScoreB)
	c.PenaltyWinner = cloneString(m.PenaltyWinner)
	c.Winner = cloneString(m.Winner)
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func IntPtr(v int) *int { return &v }

func StringPtr(v string) *string { return &v }
