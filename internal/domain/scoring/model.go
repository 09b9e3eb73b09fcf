package scoring

import "fmt"

// Array lengths of the four finisher categories.
const (
	GrandPrixFinishPositions  = 10
	SprintFinishPositions     = 8
	GPQualifyingPositions     = 3
	SprintQualifyingPositions = 3
)

// PointsSystem maps finishing position to point value per category. Index i
// is the award for finishing place i+1; positions beyond the array length
// award zero.
type PointsSystem struct {
	GrandPrixFinish  []int
	SprintFinish     []int
	GPQualifying     []int
	SprintQualifying []int
	FastestLap       int
}

// Profile is one named, selectable points system.
type Profile struct {
	ID     string
	Name   string
	Points PointsSystem
}

// Settings holds every profile plus the id of the active one. The active
// profile must always reference an existing profile.
type Settings struct {
	Profiles        []Profile
	ActiveProfileID string
}

// PointsAt returns the award for 0-based position in a category table.
func PointsAt(table []int, position int) int {
	if position < 0 || position >= len(table) {
		return 0
	}
	return table[position]
}

// Default is the hardcoded fallback used when no profile configuration
// exists at all. Scoring must never fail for lack of configuration.
func Default() PointsSystem {
	return PointsSystem{
		GrandPrixFinish:  []int{25, 18, 15, 12, 10, 8, 6, 4, 2, 1},
		SprintFinish:     []int{8, 7, 6, 5, 4, 3, 2, 1},
		GPQualifying:     []int{3, 2, 1},
		SprintQualifying: []int{3, 2, 1},
		FastestLap:       3,
	}
}

func (p PointsSystem) Validate() error {
	if len(p.GrandPrixFinish) > GrandPrixFinishPositions {
		return fmt.Errorf("grand prix finish table holds at most %d positions", GrandPrixFinishPositions)
	}
	if len(p.SprintFinish) > SprintFinishPositions {
		return fmt.Errorf("sprint finish table holds at most %d positions", SprintFinishPositions)
	}
	if len(p.GPQualifying) > GPQualifyingPositions {
		return fmt.Errorf("gp qualifying table holds at most %d positions", GPQualifyingPositions)
	}
	if len(p.SprintQualifying) > SprintQualifyingPositions {
		return fmt.Errorf("sprint qualifying table holds at most %d positions", SprintQualifyingPositions)
	}
	return nil
}

// Clone returns a deep copy, used to freeze a snapshot onto a result.
func (p PointsSystem) Clone() PointsSystem {
	return PointsSystem{
		GrandPrixFinish:  append([]int(nil), p.GrandPrixFinish...),
		SprintFinish:     append([]int(nil), p.SprintFinish...),
		GPQualifying:     append([]int(nil), p.GPQualifying...),
		SprintQualifying: append([]int(nil), p.SprintQualifying...),
		FastestLap:       p.FastestLap,
	}
}

// ActiveProfile resolves the active profile, if the settings reference one.
func (s Settings) ActiveProfile() (Profile, bool) {
	for _, profile := range s.Profiles {
		if profile.ID == s.ActiveProfileID {
			return profile, true
		}
	}
	return Profile{}, false
}

func (s Settings) ProfileByID(id string) (Profile, bool) {
	for _, profile := range s.Profiles {
		if profile.ID == id {
			return profile, true
		}
	}
	return Profile{}, false
}
