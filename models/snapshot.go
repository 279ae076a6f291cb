package models

import "time"

// Snapshot kinds recorded alongside a name.
const (
	SnapshotKindGroups   = "fifa_groups"
	SnapshotKindFinal    = "fifa_final"
	SnapshotKindSchedule = "league_schedule"
)

// SnapshotRef points a human-readable name at the latest content id stored under it.
type SnapshotRef struct {
	Name      string    `json:"name"`
	CID       string    `json:"cid"`
	Kind      string    `json:"kind"`
	UpdatedAt time.Time `json:"updated_at"`
}
