package models

import "time"

// ScheduledMatch is one scraped fixture of a league schedule.
type ScheduledMatch struct {
	Home      string  `json:"home"`
	Away      string  `json:"away"`
	HomeScore *int    `json:"home_score"`
	AwayScore *int    `json:"away_score"`
	Played    bool    `json:"played"`
	Date      *string `json:"date"`
}

// Schedule groups fixtures by matchday identifier ("1", "2", ...).
type Schedule map[string][]ScheduledMatch

// LeagueSource describes where a league schedule is scraped from.
type LeagueSource struct {
	Code         string `json:"code" yaml:"code"`
	Name         string `json:"name" yaml:"name"`
	URL          string `json:"url" yaml:"url"`
	TableID      string `json:"table_id" yaml:"table_id"`
	SnapshotName string `json:"snapshot_name" yaml:"snapshot_name"`
}

// LeagueSnapshot is what gets persisted after a schedule refresh.
type LeagueSnapshot struct {
	League        string    `json:"league"`
	MatchesByDay  Schedule  `json:"matches_by_day"`
	PlayedResults Progress  `json:"played_results"`
	Timestamp     time.Time `json:"timestamp"`
}

// Score is a home/away scoreline.
type Score [2]int

// Progress maps "Home_vs_Away" keys to scores: real results merged with a user's predictions.
// It is owned by the caller and sent back with every prediction request.
type Progress map[string]Score

// LeagueTableRow is a formatted league table line.
type LeagueTableRow struct {
	Team   string `json:"team"`
	Points int    `json:"points"`
	GD     int    `json:"gd"`
	GF     int    `json:"gf"`
	Played int    `json:"played"`
	Won    int    `json:"won"`
	Draw   int    `json:"draw"`
	Lost   int    `json:"lost"`
}

// ProgressKey builds the Progress/prediction key for a fixture.
func ProgressKey(home, away string) string {
	return home + "_vs_" + away
}

// LeagueOverview is the league page payload: the table from real results plus
// what is still open for predictions.
type LeagueOverview struct {
	League                string           `json:"league"`
	CompletedTable        []LeagueTableRow `json:"completed_table"`
	NextMatchdays         Schedule         `json:"next_matchdays"`
	FirstUnplayedMatchday *string          `json:"first_unplayed_matchday"`
	PlayedResults         Progress         `json:"played_results"`
	TotalMatchdays        int              `json:"total_matchdays"`
	PlayedMatchdays       int              `json:"played_matchdays"`
	CID                   string           `json:"cid,omitempty"`
	FetchedAt             time.Time        `json:"fetched_at"`
}

// PredictionResult is returned after a matchday of predictions is applied.
type PredictionResult struct {
	League   string           `json:"league"`
	Matchday string           `json:"matchday"`
	Table    []LeagueTableRow `json:"table"`
	Progress Progress         `json:"progress"`
}

type LeagueStatus struct {
	League          string     `json:"league"`
	TotalMatchdays  int        `json:"total_matchdays"`
	PlayedMatches   int        `json:"played_matches"`
	LatestCID       string     `json:"latest_cid,omitempty"`
	SnapshotURL     string     `json:"snapshot_url,omitempty"`
	FetchedAt       *time.Time `json:"fetched_at,omitempty"`
	SnapshotUpdated *time.Time `json:"snapshot_updated_at,omitempty"`
}

type RefreshResult struct {
	League        string `json:"league"`
	Message       string `json:"message"`
	CID           string `json:"cid"`
	SnapshotURL   string `json:"snapshot_url,omitempty"`
	PlayedMatches int    `json:"played_matches"`
}
