package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitwall/fantasy-gp/internal/domain/leaderboard"
	qb "github.com/pitwall/fantasy-gp/internal/platform/querybuilder"
)

const leaderboardUpsertSuffix = `ON CONFLICT (user_id) DO UPDATE SET
	total_points = EXCLUDED.total_points,
	rank = EXCLUDED.rank,
	grand_prix_points = EXCLUDED.grand_prix_points,
	sprint_points = EXCLUDED.sprint_points,
	qualifying_points = EXCLUDED.qualifying_points,
	fastest_lap_points = EXCLUDED.fastest_lap_points,
	calculated_at = EXCLUDED.calculated_at`

type LeaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) List(ctx context.Context) ([]leaderboard.Entry, error) {
	query, args, err := qb.Select("*").
		From("leaderboard_entries").
		OrderBy("rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leaderboard query: %w", err)
	}

	var rows []leaderboardTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}

	out := make([]leaderboard.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, entryFromRow(row))
	}
	return out, nil
}

// WriteChunk upserts every entry of the chunk in one statement. Entries
// across chunks never share a user id, so partially applied recomputes
// leave older rows intact rather than deleting them.
func (r *LeaderboardRepository) WriteChunk(ctx context.Context, entries []leaderboard.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	builder := qb.InsertInto("leaderboard_entries").
		Columns(
			"user_id",
			"total_points",
			"rank",
			"grand_prix_points",
			"sprint_points",
			"qualifying_points",
			"fastest_lap_points",
			"calculated_at",
		)
	for _, entry := range entries {
		builder.Values(
			entry.UserID,
			entry.TotalPoints,
			entry.Rank,
			entry.Breakdown.GrandPrix,
			entry.Breakdown.Sprint,
			entry.Breakdown.Qualifying,
			entry.Breakdown.FastestLap,
			entry.CalculatedAt,
		)
	}

	query, args, err := builder.Suffix(leaderboardUpsertSuffix).ToSQL()
	if err != nil {
		return fmt.Errorf("build write leaderboard chunk query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("write leaderboard chunk: %w", err)
	}
	return nil
}
