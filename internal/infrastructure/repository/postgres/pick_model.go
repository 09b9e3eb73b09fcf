package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/pitwall/fantasy-gp/internal/domain/pick"
)

type pickTableModel struct {
	ID            int64          `db:"id"`
	UserID        string         `db:"user_id"`
	EventID       string         `db:"event_public_id"`
	ATeamIDs      pq.StringArray `db:"a_team_ids"`
	BTeamID       string         `db:"b_team_id"`
	ADriverIDs    pq.StringArray `db:"a_driver_ids"`
	BDriverIDs    pq.StringArray `db:"b_driver_ids"`
	FastestLapID  string         `db:"fastest_lap_driver_id"`
	Penalty       float64        `db:"penalty"`
	PenaltyReason string         `db:"penalty_reason"`
	SubmittedAt   time.Time      `db:"submitted_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type pickInsertModel struct {
	UserID        string         `db:"user_id"`
	EventID       string         `db:"event_public_id"`
	ATeamIDs      pq.StringArray `db:"a_team_ids"`
	BTeamID       string         `db:"b_team_id"`
	ADriverIDs    pq.StringArray `db:"a_driver_ids"`
	BDriverIDs    pq.StringArray `db:"b_driver_ids"`
	FastestLapID  string         `db:"fastest_lap_driver_id"`
	Penalty       float64        `db:"penalty"`
	PenaltyReason string         `db:"penalty_reason"`
	SubmittedAt   time.Time      `db:"submitted_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func selectionFromRow(row pickTableModel) pick.Selection {
	return pick.Selection{
		UserID:        row.UserID,
		EventID:       row.EventID,
		ATeams:        append([]string(nil), row.ATeamIDs...),
		BTeam:         row.BTeamID,
		ADrivers:      append([]string(nil), row.ADriverIDs...),
		BDrivers:      append([]string(nil), row.BDriverIDs...),
		FastestLap:    row.FastestLapID,
		Penalty:       row.Penalty,
		PenaltyReason: row.PenaltyReason,
		SubmittedAt:   row.SubmittedAt.UTC(),
	}
}

func selectionToInsert(sel pick.Selection, now time.Time) pickInsertModel {
	return pickInsertModel{
		UserID:        sel.UserID,
		EventID:       sel.EventID,
		ATeamIDs:      pq.StringArray(sel.ATeams),
		BTeamID:       sel.BTeam,
		ADriverIDs:    pq.StringArray(sel.ADrivers),
		BDriverIDs:    pq.StringArray(sel.BDrivers),
		FastestLapID:  sel.FastestLap,
		Penalty:       sel.Penalty,
		PenaltyReason: sel.PenaltyReason,
		SubmittedAt:   sel.SubmittedAt,
		UpdatedAt:     now,
	}
}
