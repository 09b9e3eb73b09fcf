package postgres

import (
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/leaderboard"
)

type leaderboardTableModel struct {
	ID               int64     `db:"id"`
	UserID           string    `db:"user_id"`
	TotalPoints      int       `db:"total_points"`
	Rank             int       `db:"rank"`
	GrandPrixPoints  int       `db:"grand_prix_points"`
	SprintPoints     int       `db:"sprint_points"`
	QualifyingPoints int       `db:"qualifying_points"`
	FastestLapPoints int       `db:"fastest_lap_points"`
	CalculatedAt     time.Time `db:"calculated_at"`
}

func entryFromRow(row leaderboardTableModel) leaderboard.Entry {
	return leaderboard.Entry{
		UserID:      row.UserID,
		TotalPoints: row.TotalPoints,
		Rank:        row.Rank,
		Breakdown: leaderboard.Breakdown{
			GrandPrix:  row.GrandPrixPoints,
			Sprint:     row.SprintPoints,
			Qualifying: row.QualifyingPoints,
			FastestLap: row.FastestLapPoints,
		},
		CalculatedAt: row.CalculatedAt.UTC(),
	}
}
