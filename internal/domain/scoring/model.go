package scoring

// PointsTable is one versioned set of point values. Index i holds the
// points for finishing position i+1 in the matching session.
type PointsTable struct {
	GrandPrixFinish  []int `json:"grandPrixFinish"`
	SprintFinish     []int `json:"sprintFinish"`
	GPQualifying     []int `json:"gpQualifying"`
	SprintQualifying []int `json:"sprintQualifying"`
	FastestLap       int   `json:"fastestLap"`
}

// DefaultPointsTable is the league's stock configuration, used when no
// scoring settings document exists yet.
func DefaultPointsTable() PointsTable {
	return PointsTable{
		GrandPrixFinish:  []int{25, 18, 15, 12, 10, 8, 6, 4, 2, 1},
		SprintFinish:     []int{8, 7, 6, 5, 4, 3, 2, 1},
		GPQualifying:     []int{3, 2, 1},
		SprintQualifying: []int{3, 2, 1},
		FastestLap:       3,
	}
}

// Profile is a named, admin-editable points table. Profiles referenced by
// a result snapshot must be treated as frozen.
type Profile struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Table PointsTable `json:"config"`
}

// Settings is the scoring configuration document: every named profile
// plus the id of the one currently in effect.
type Settings struct {
	ActiveProfileID string    `json:"activeProfileId"`
	Profiles        []Profile `json:"profiles"`
}

// ActiveTable resolves the table currently in effect. The boolean is
// false when no active profile can be resolved and the caller should use
// DefaultPointsTable.
func (s Settings) ActiveTable() (PointsTable, bool) {
	if s.ActiveProfileID == "" {
		return PointsTable{}, false
	}
	for _, profile := range s.Profiles {
		if profile.ID == s.ActiveProfileID {
			return profile.Table, true
		}
	}
	return PointsTable{}, false
}

// Snapshot is the scoring state frozen inside an event result at save
// time: the table in effect plus the driver-to-constructor mapping.
// Results that carry a snapshot are immune to later configuration edits.
type Snapshot struct {
	Table       PointsTable       `json:"table"`
	DriverTeams map[string]string `json:"driverTeams"`
}

// Breakdown is one scored unit: per-category points plus the derived
// total. LastPlaceCount is an analytics counter and never feeds Total.
type Breakdown struct {
	GrandPrix      int `json:"gp"`
	Sprint         int `json:"sprint"`
	Qualifying     int `json:"quali"`
	FastestLap     int `json:"fl"`
	LastPlaceCount int `json:"p22"`
	Total          int `json:"total"`
}

// Accumulate folds another event's breakdown into the receiver. Totals
// add up directly because each event total is already penalty-adjusted.
func (b *Breakdown) Accumulate(other Breakdown) {
	b.GrandPrix += other.GrandPrix
	b.Sprint += other.Sprint
	b.Qualifying += other.Qualifying
	b.FastestLap += other.FastestLap
	b.LastPlaceCount += other.LastPlaceCount
	b.Total += other.Total
}
