package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pitwall/fantasy-gp/internal/domain/pick"
	qb "github.com/pitwall/fantasy-gp/internal/platform/querybuilder"
)

const pickUpsertSuffix = `ON CONFLICT (user_id, event_public_id) DO UPDATE SET
	a_team_ids = EXCLUDED.a_team_ids,
	b_team_id = EXCLUDED.b_team_id,
	a_driver_ids = EXCLUDED.a_driver_ids,
	b_driver_ids = EXCLUDED.b_driver_ids,
	fastest_lap_driver_id = EXCLUDED.fastest_lap_driver_id,
	penalty = EXCLUDED.penalty,
	penalty_reason = EXCLUDED.penalty_reason,
	submitted_at = EXCLUDED.submitted_at,
	updated_at = EXCLUDED.updated_at`

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) GetSelection(ctx context.Context, userID, eventID string) (pick.Selection, bool, error) {
	query, args, err := qb.Select("*").
		From("picks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("event_public_id", eventID),
		).
		ToSQL()
	if err != nil {
		return pick.Selection{}, false, fmt.Errorf("build get selection query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Selection{}, false, nil
		}
		return pick.Selection{}, false, fmt.Errorf("get selection: %w", err)
	}

	return selectionFromRow(row), true, nil
}

func (r *PickRepository) UpsertSelection(ctx context.Context, selection pick.Selection) error {
	query, args, err := qb.InsertModel("picks", selectionToInsert(selection, time.Now().UTC()), pickUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert selection query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert selection: %w", err)
	}
	return nil
}

func (r *PickRepository) GetSeasonPicks(ctx context.Context, userID string) (pick.SeasonPicks, bool, error) {
	query, args, err := qb.Select("*").
		From("picks").
		Where(qb.Eq("user_id", userID)).
		OrderBy("event_public_id").
		ToSQL()
	if err != nil {
		return pick.SeasonPicks{}, false, fmt.Errorf("build get season picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return pick.SeasonPicks{}, false, fmt.Errorf("get season picks: %w", err)
	}
	if len(rows) == 0 {
		return pick.SeasonPicks{}, false, nil
	}

	return seasonFromRows(userID, rows), true, nil
}

func (r *PickRepository) ListSeasonPicks(ctx context.Context) ([]pick.SeasonPicks, error) {
	query, args, err := qb.Select("*").
		From("picks").
		OrderBy("user_id", "event_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season picks: %w", err)
	}

	var out []pick.SeasonPicks
	var current []pickTableModel
	for _, row := range rows {
		if len(current) > 0 && current[0].UserID != row.UserID {
			out = append(out, seasonFromRows(current[0].UserID, current))
			current = current[:0:0]
		}
		current = append(current, row)
	}
	if len(current) > 0 {
		out = append(out, seasonFromRows(current[0].UserID, current))
	}
	return out, nil
}

func seasonFromRows(userID string, rows []pickTableModel) pick.SeasonPicks {
	season := pick.SeasonPicks{
		UserID:  userID,
		ByEvent: make(map[string]pick.Selection, len(rows)),
	}
	for _, row := range rows {
		season.ByEvent[row.EventID] = selectionFromRow(row)
		if row.UpdatedAt.After(season.LastSaveAt) {
			season.LastSaveAt = row.UpdatedAt.UTC()
		}
	}
	return season
}
