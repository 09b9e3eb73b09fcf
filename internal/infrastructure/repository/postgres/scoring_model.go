package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/pitwall/fantasy-gp/internal/domain/scoring"
)

type scoringSettingsTableModel struct {
	ID              int64     `db:"id"`
	Profiles        string    `db:"profiles"`
	ActiveProfileID string    `db:"active_profile_id"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type scoringSettingsInsertModel struct {
	Profiles        string    `db:"profiles"`
	ActiveProfileID string    `db:"active_profile_id"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type profileJSON struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Points pointsSystemJSON `json:"points"`
}

type pointsSystemJSON struct {
	GrandPrixFinish  []int `json:"grand_prix_finish"`
	SprintFinish     []int `json:"sprint_finish"`
	GPQualifying     []int `json:"gp_qualifying"`
	SprintQualifying []int `json:"sprint_qualifying"`
	FastestLap       int   `json:"fastest_lap"`
}

func pointsToJSON(p scoring.PointsSystem) pointsSystemJSON {
	return pointsSystemJSON{
		GrandPrixFinish:  p.GrandPrixFinish,
		SprintFinish:     p.SprintFinish,
		GPQualifying:     p.GPQualifying,
		SprintQualifying: p.SprintQualifying,
		FastestLap:       p.FastestLap,
	}
}

func pointsFromJSON(p pointsSystemJSON) scoring.PointsSystem {
	return scoring.PointsSystem{
		GrandPrixFinish:  p.GrandPrixFinish,
		SprintFinish:     p.SprintFinish,
		GPQualifying:     p.GPQualifying,
		SprintQualifying: p.SprintQualifying,
		FastestLap:       p.FastestLap,
	}
}

func encodeProfiles(profiles []scoring.Profile) (string, error) {
	out := make([]profileJSON, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, profileJSON{ID: p.ID, Name: p.Name, Points: pointsToJSON(p.Points)})
	}

	encoded, err := sonic.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode scoring profiles: %w", err)
	}
	return string(encoded), nil
}

func decodeProfiles(raw string) ([]scoring.Profile, error) {
	var stored []profileJSON
	if err := sonic.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decode scoring profiles: %w", err)
	}

	out := make([]scoring.Profile, 0, len(stored))
	for _, p := range stored {
		out = append(out, scoring.Profile{ID: p.ID, Name: p.Name, Points: pointsFromJSON(p.Points)})
	}
	return out, nil
}
