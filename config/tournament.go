package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Dosada05/matchday-predictor/brackets"
	"github.com/Dosada05/matchday-predictor/models"
	"gopkg.in/yaml.v2"
)

// LeaguesFile is the layout of the leagues configuration file.
type LeaguesFile struct {
	Leagues []models.LeagueSource `json:"leagues" yaml:"leagues"`
}

// LoadTournament reads the static tournament definition (YAML or JSON,
// chosen by extension) and checks the parts that can be checked up front.
func LoadTournament(path string) (*models.TournamentConfig, error) {
	var cfg models.TournamentConfig
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}
	if err := ValidateTournament(&cfg); err != nil {
		return nil, fmt.Errorf("tournament config %s: %w", path, err)
	}
	return &cfg, nil
}

// ValidateTournament checks group sizes, playoff shapes and the knockout template.
func ValidateTournament(cfg *models.TournamentConfig) error {
	if len(cfg.GroupStage.Groups) == 0 {
		return brackets.ErrEmptyConfig
	}
	if _, err := brackets.GenerateGroupFixtures(cfg.GroupStage.Groups); err != nil {
		return err
	}
	for key, block := range cfg.Playoffs {
		if _, err := brackets.PlayoffShape(key, block); err != nil {
			return err
		}
	}
	known := make(map[string]bool, len(cfg.GroupStage.Groups))
	for g := range cfg.GroupStage.Groups {
		known[g] = true
	}
	if _, err := brackets.ParseTemplate(cfg.Knockouts.RoundOf32, known); err != nil {
		return err
	}
	return nil
}

// LoadLeagues reads the list of scraped leagues.
func LoadLeagues(path string) ([]models.LeagueSource, error) {
	var f LeaguesFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(f.Leagues))
	for i, l := range f.Leagues {
		if l.Code == "" || l.URL == "" {
			return nil, fmt.Errorf("leagues config %s: entry %d needs code and url", path, i)
		}
		if seen[l.Code] {
			return nil, fmt.Errorf("leagues config %s: duplicate league %s", path, l.Code)
		}
		seen[l.Code] = true
		if l.SnapshotName == "" {
			f.Leagues[i].SnapshotName = strings.ToLower(l.Code) + "_schedule"
		}
	}
	return f.Leagues, nil
}

func decodeFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, v)
	case ".yaml", ".yml":
		err = yaml.UnmarshalStrict(data, v)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
