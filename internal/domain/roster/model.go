package roster

import "time"

// Class splits the grid into two selection tiers.
type Class string

const (
	ClassA Class = "A"
	ClassB Class = "B"
)

// Constructor is one team on the grid.
type Constructor struct {
	ID       string
	Name     string
	ClassOf  Class
	IsActive bool
}

// Driver belongs to exactly one constructor at any point in time. The
// assignment can change mid-season, which is why results freeze their own
// driver->team mapping.
type Driver struct {
	ID            string
	Name          string
	ClassOf       Class
	ConstructorID string
	IsActive      bool
}

// Snapshot is an immutable view of the grid at a point in time. Scoring
// receives a snapshot instead of reading shared mutable state so that a
// recompute is reproducible.
type Snapshot struct {
	EffectiveAt  time.Time
	Drivers      []Driver
	Constructors []Constructor

	teamByDriver map[string]string
}

func NewSnapshot(effectiveAt time.Time, drivers []Driver, constructors []Constructor) Snapshot {
	teamByDriver := make(map[string]string, len(drivers))
	for _, d := range drivers {
		if d.ID == "" {
			continue
		}
		teamByDriver[d.ID] = d.ConstructorID
	}

	return Snapshot{
		EffectiveAt:  effectiveAt,
		Drivers:      append([]Driver(nil), drivers...),
		Constructors: append([]Constructor(nil), constructors...),
		teamByDriver: teamByDriver,
	}
}

// TeamOf resolves a driver id to its constructor id. Unknown ids resolve to
// ("", false) and contribute nothing to team scoring.
func (s Snapshot) TeamOf(driverID string) (string, bool) {
	teamID, ok := s.teamByDriver[driverID]
	if !ok || teamID == "" {
		return "", false
	}
	return teamID, true
}

func (s Snapshot) HasDriver(driverID string) bool {
	_, ok := s.teamByDriver[driverID]
	return ok
}

// DriverTeams returns the driver->constructor mapping, used to freeze the
// assignment onto a result record.
func (s Snapshot) DriverTeams() map[string]string {
	out := make(map[string]string, len(s.teamByDriver))
	for driverID, teamID := range s.teamByDriver {
		out[driverID] = teamID
	}
	return out
}
