package result

import (
	"time"

	"github.com/lightsout-league/pickem/internal/domain/scoring"
)

// EventResult is the recorded outcome of one event. Finisher lists are
// ordered by position with nullable slots so partial results can be
// entered. Snapshot is embedded by the caller on first save and freezes
// both the points table and the driver-to-constructor mapping; results
// recorded before snapshotting existed carry none and are scored with
// whatever table is active at recompute time.
type EventResult struct {
	EventID          string            `json:"-"`
	GrandPrixFinish  []*string         `json:"grandPrixFinish,omitempty"`
	SprintFinish     []*string         `json:"sprintFinish,omitempty"`
	GPQualifying     []*string         `json:"gpQualifying,omitempty"`
	SprintQualifying []*string         `json:"sprintQualifying,omitempty"`
	FastestLap       *string           `json:"fastestLap"`
	P22Driver        *string           `json:"p22Driver"`
	Snapshot         *scoring.Snapshot `json:"scoringSnapshot,omitempty"`
	UpdatedAt        time.Time         `json:"-"`
}

// Outcome projects the result into the calculator's input shape.
func (r EventResult) Outcome() scoring.EventOutcome {
	outcome := scoring.EventOutcome{
		GrandPrixFinish:  r.GrandPrixFinish,
		SprintFinish:     r.SprintFinish,
		GPQualifying:     r.GPQualifying,
		SprintQualifying: r.SprintQualifying,
		FastestLap:       r.FastestLap,
		P22Driver:        r.P22Driver,
	}
	if r.Snapshot != nil {
		outcome.DriverTeams = r.Snapshot.DriverTeams
	}
	return outcome
}

// Table returns the snapshot table when present, else the given active
// table.
func (r EventResult) Table(active scoring.PointsTable) scoring.PointsTable {
	if r.Snapshot != nil {
		return r.Snapshot.Table
	}
	return active
}
