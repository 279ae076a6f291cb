package models

import "sort"

// Round keys of a playoff block, matching the snapshot JSON.
const (
	PlayoffRound1     = "round1"
	PlayoffSemifinals = "semifinals"
	PlayoffFinal      = "final"
)

// PlayoffStage is the progression state of a playoff block.
type PlayoffStage string

const (
	PlayoffAwaitingRound1 PlayoffStage = "AWAITING_ROUND1"
	PlayoffAwaitingSemis  PlayoffStage = "AWAITING_SEMIS"
	PlayoffAwaitingFinal  PlayoffStage = "AWAITING_FINAL"
	PlayoffDone           PlayoffStage = "DONE"
)

// PlayoffShape tells the two supported block layouts apart.
type PlayoffShape string

const (
	PlayoffSingleRound PlayoffShape = "single_round"
	PlayoffTwoRound    PlayoffShape = "two_round"
)

// PlayoffBlock is a pre-tournament mini bracket whose winner fills a group slot.
// Exactly one of Round1 (one match) or Semifinals (two matches) is populated.
type PlayoffBlock struct {
	SlotName   string   `json:"slot_name,omitempty" yaml:"slot_name"`
	Round1     []*Match `json:"round1,omitempty" yaml:"round1"`
	Semifinals []*Match `json:"semifinals,omitempty" yaml:"semifinals"`
	Final      *Match   `json:"final" yaml:"final"`
}

// Playoffs maps block keys (e.g. "UEFA_Playoff_A") to blocks.
type Playoffs map[string]*PlayoffBlock

func (b *PlayoffBlock) Clone() *PlayoffBlock {
	if b == nil {
		return nil
	}
	c := &PlayoffBlock{SlotName: b.SlotName, Final: b.Final.Clone()}
	for _, m := range b.Round1 {
		c.Round1 = append(c.Round1, m.Clone())
	}
	for _, m := range b.Semifinals {
		c.Semifinals = append(c.Semifinals, m.Clone())
	}
	return c
}

// Keys returns the block keys in ascending order.
func (p Playoffs) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p Playoffs) Clone() Playoffs {
	c := make(Playoffs, len(p))
	for k, b := range p {
		c[k] = b.Clone()
	}
	return c
}
