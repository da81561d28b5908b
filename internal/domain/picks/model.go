package picks

import "errors"

const (
	// Slot counts per event. Class A carries more slots than class B to
	// balance pick value across the grid.
	ATeamSlots   = 2
	BTeamSlots   = 1
	ADriverSlots = 3
	BDriverSlots = 2
)

var (
	ErrWrongSlotCount      = errors.New("selection has wrong slot count")
	ErrIncompleteSelection = errors.New("selection has empty slots")
	ErrInvalidPenalty      = errors.New("penalty must be within [0,1]")
)

// Selection is one user's picks for one event. Slots stay nil until the
// user fills them; submission requires every slot to be set.
type Selection struct {
	ATeams     []*string `json:"aTeams"`
	BTeam      *string   `json:"bTeam"`
	ADrivers   []*string `json:"aDrivers"`
	BDrivers   []*string `json:"bDrivers"`
	FastestLap *string   `json:"fastestLap"`

	// Penalty is an admin-assigned fraction of the event total, deducted
	// after scoring. Zero means no penalty.
	Penalty       float64 `json:"penalty,omitempty"`
	PenaltyReason string  `json:"penaltyReason,omitempty"`
}

// TeamIDs returns the filled constructor picks, class A and B together.
func (s Selection) TeamIDs() []string {
	out := make([]string, 0, ATeamSlots+BTeamSlots)
	for _, id := range s.ATeams {
		if id != nil && *id != "" {
			out = append(out, *id)
		}
	}
	if s.BTeam != nil && *s.BTeam != "" {
		out = append(out, *s.BTeam)
	}
	return out
}

// DriverIDs returns the filled driver picks, class A and B together.
func (s Selection) DriverIDs() []string {
	out := make([]string, 0, ADriverSlots+BDriverSlots)
	for _, id := range s.ADrivers {
		if id != nil && *id != "" {
			out = append(out, *id)
		}
	}
	for _, id := range s.BDrivers {
		if id != nil && *id != "" {
			out = append(out, *id)
		}
	}
	return out
}

// Validate checks shape and penalty range. Slot slices must have the
// configured lengths; nil entries are allowed before submission.
func (s Selection) Validate() error {
	if len(s.ATeams) != ATeamSlots || len(s.ADrivers) != ADriverSlots || len(s.BDrivers) != BDriverSlots {
		return ErrWrongSlotCount
	}
	if s.Penalty < 0 || s.Penalty > 1 {
		return ErrInvalidPenalty
	}
	return nil
}

// ValidateComplete enforces the submission contract: every slot filled.
func (s Selection) ValidateComplete() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if len(s.TeamIDs()) != ATeamSlots+BTeamSlots {
		return ErrIncompleteSelection
	}
	if len(s.DriverIDs()) != ADriverSlots+BDriverSlots {
		return ErrIncompleteSelection
	}
	if s.FastestLap == nil || *s.FastestLap == "" {
		return ErrIncompleteSelection
	}
	return nil
}
