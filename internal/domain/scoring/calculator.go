package scoring

import (
	"math"

	"github.com/lightsout-league/pickem/internal/domain/picks"
)

// EventOutcome is the result-side input to the calculator: ordered
// finisher lists with nullable slots, the fastest-lap and last-place
// drivers, and the driver-to-constructor mapping frozen at save time.
// DriverTeams may be nil for results recorded before snapshotting.
type EventOutcome struct {
	GrandPrixFinish  []*string
	SprintFinish     []*string
	GPQualifying     []*string
	SprintQualifying []*string
	FastestLap       *string
	P22Driver        *string
	DriverTeams      map[string]string
}

// CalculateEventScore scores one user's selection against one event
// outcome. It is a pure function: the points table comes in by value
// (the result's snapshot, or the caller's currently active table) and
// currentTeams supplies the driver-to-constructor fallback for drivers
// the snapshot does not cover.
//
// Team picks and driver picks are scored as independent currencies: a
// driver finishing P1 pays the P1 value to holders of the driver and,
// separately, to holders of the driver's constructor. No deduplication.
func CalculateEventScore(sel picks.Selection, outcome EventOutcome, table PointsTable, currentTeams map[string]string) Breakdown {
	teamOf := func(driverID string) string {
		if team, ok := outcome.DriverTeams[driverID]; ok && team != "" {
			return team
		}
		return currentTeams[driverID]
	}

	pickedTeams := make(map[string]struct{})
	for _, id := range sel.TeamIDs() {
		pickedTeams[id] = struct{}{}
	}

	teamPoints := func(finish []*string, values []int) int {
		points := 0
		for idx, driverID := range finish {
			if driverID == nil || *driverID == "" {
				continue
			}
			team := teamOf(*driverID)
			if team == "" {
				continue
			}
			if _, picked := pickedTeams[team]; picked {
				points += valueAt(values, idx)
			}
		}
		return points
	}

	var b Breakdown
	b.GrandPrix = teamPoints(outcome.GrandPrixFinish, table.GrandPrixFinish)
	b.Sprint = teamPoints(outcome.SprintFinish, table.SprintFinish)

	driverIDs := sel.DriverIDs()
	for _, driverID := range driverIDs {
		b.GrandPrix += driverPoints(driverID, outcome.GrandPrixFinish, table.GrandPrixFinish)
		b.Sprint += driverPoints(driverID, outcome.SprintFinish, table.SprintFinish)
		b.Qualifying += driverPoints(driverID, outcome.GPQualifying, table.GPQualifying)
		b.Qualifying += driverPoints(driverID, outcome.SprintQualifying, table.SprintQualifying)
	}

	if sel.FastestLap != nil && outcome.FastestLap != nil && *sel.FastestLap == *outcome.FastestLap {
		b.FastestLap = table.FastestLap
	}

	if outcome.P22Driver != nil {
		for _, driverID := range driverIDs {
			if driverID == *outcome.P22Driver {
				b.LastPlaceCount = 1
				break
			}
		}
	}

	b.Total = b.GrandPrix + b.Sprint + b.Qualifying + b.FastestLap
	if sel.Penalty > 0 {
		// Rounding always goes against the user.
		b.Total -= int(math.Ceil(float64(b.Total) * sel.Penalty))
	}

	return b
}

func driverPoints(driverID string, finish []*string, values []int) int {
	for idx, slot := range finish {
		if slot != nil && *slot == driverID {
			return valueAt(values, idx)
		}
	}
	return 0
}

func valueAt(values []int, idx int) int {
	if idx < 0 || idx >= len(values) {
		return 0
	}
	return values[idx]
}
