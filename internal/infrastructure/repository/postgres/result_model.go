package postgres

import (
	"database/sql"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/lib/pq"
	"github.com/pitwall/fantasy-gp/internal/domain/result"
)

type resultTableModel struct {
	ID               int64          `db:"id"`
	EventID          string         `db:"event_public_id"`
	GrandPrixFinish  pq.StringArray `db:"grand_prix_finish"`
	GPQualifying     pq.StringArray `db:"gp_qualifying"`
	FastestLapID     string         `db:"fastest_lap_driver_id"`
	SprintFinish     pq.StringArray `db:"sprint_finish"`
	SprintQualifying pq.StringArray `db:"sprint_qualifying"`
	DriverTeams      string         `db:"driver_teams"`
	ScoringSnapshot  sql.NullString `db:"scoring_snapshot"`
	EnteredBy        string         `db:"entered_by"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type resultInsertModel struct {
	EventID          string         `db:"event_public_id"`
	GrandPrixFinish  pq.StringArray `db:"grand_prix_finish"`
	GPQualifying     pq.StringArray `db:"gp_qualifying"`
	FastestLapID     string         `db:"fastest_lap_driver_id"`
	SprintFinish     pq.StringArray `db:"sprint_finish"`
	SprintQualifying pq.StringArray `db:"sprint_qualifying"`
	DriverTeams      string         `db:"driver_teams"`
	ScoringSnapshot  sql.NullString `db:"scoring_snapshot"`
	EnteredBy        string         `db:"entered_by"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func resultFromRow(row resultTableModel) (result.EventResult, error) {
	var driverTeams map[string]string
	if row.DriverTeams != "" {
		if err := sonic.Unmarshal([]byte(row.DriverTeams), &driverTeams); err != nil {
			return result.EventResult{}, fmt.Errorf("decode driver teams: %w", err)
		}
	}

	res := result.EventResult{
		EventID:          row.EventID,
		GrandPrixFinish:  append([]string(nil), row.GrandPrixFinish...),
		GPQualifying:     append([]string(nil), row.GPQualifying...),
		FastestLap:       row.FastestLapID,
		SprintFinish:     append([]string(nil), row.SprintFinish...),
		SprintQualifying: append([]string(nil), row.SprintQualifying...),
		DriverTeams:      driverTeams,
		EnteredBy:        row.EnteredBy,
		UpdatedAt:        row.UpdatedAt.UTC(),
	}

	if row.ScoringSnapshot.Valid && row.ScoringSnapshot.String != "" {
		var snapshot pointsSystemJSON
		if err := sonic.Unmarshal([]byte(row.ScoringSnapshot.String), &snapshot); err != nil {
			return result.EventResult{}, fmt.Errorf("decode scoring snapshot: %w", err)
		}
		decoded := pointsFromJSON(snapshot)
		res.ScoringSnapshot = &decoded
	}

	return res, nil
}

func resultToInsert(res result.EventResult, now time.Time) (resultInsertModel, error) {
	driverTeams, err := sonic.Marshal(res.DriverTeams)
	if err != nil {
		return resultInsertModel{}, fmt.Errorf("encode driver teams: %w", err)
	}

	row := resultInsertModel{
		EventID:          res.EventID,
		GrandPrixFinish:  pq.StringArray(res.GrandPrixFinish),
		GPQualifying:     pq.StringArray(res.GPQualifying),
		FastestLapID:     res.FastestLap,
		SprintFinish:     pq.StringArray(res.SprintFinish),
		SprintQualifying: pq.StringArray(res.SprintQualifying),
		DriverTeams:      string(driverTeams),
		EnteredBy:        res.EnteredBy,
		UpdatedAt:        now,
	}

	if res.ScoringSnapshot != nil {
		encoded, err := sonic.Marshal(pointsToJSON(*res.ScoringSnapshot))
		if err != nil {
			return resultInsertModel{}, fmt.Errorf("encode scoring snapshot: %w", err)
		}
		row.ScoringSnapshot = sql.NullString{String: string(encoded), Valid: true}
	}

	return row, nil
}
