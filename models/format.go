package models

// SlotConfig is one round-of-32 template line, e.g. {slot: R32_01, rule: "1A vs 2B"}.
type SlotConfig struct {
	Slot string `json:"slot" yaml:"slot"`
	Rule string `json:"rule" yaml:"rule"`
}

// KnockoutConfig describes how the first knockout round is drawn.
type KnockoutConfig struct {
	RoundOf32 []SlotConfig `json:"round_of_32" yaml:"round_of_32"`
	// Number of third-placed teams that qualify. Defaults to 8.
	BestThirdCount int `json:"best_third_count" yaml:"best_third_count"`
}

type GroupStageConfig struct {
	Groups map[string][]string `json:"groups" yaml:"groups"`
}

// TournamentConfig is the static tournament definition loaded at startup.
type TournamentConfig struct {
	Name       string                   `json:"name" yaml:"name"`
	GroupStage GroupStageConfig         `json:"groupStage" yaml:"groupStage"`
	Knockouts  KnockoutConfig           `json:"knockouts" yaml:"knockouts"`
	Playoffs   map[string]*PlayoffBlock `json:"playoffs" yaml:"playoffs"`
	Flags      map[string]string        `json:"flags" yaml:"flags"`
}

const DefaultBestThirdCount = 8

func (k KnockoutConfig) ThirdPlaceQuota() int {
	if k.BestThirdCount <= 0 {
		return DefaultBestThirdCount
	}
	return k.BestThirdCount
}
