package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pitwall/fantasy-gp/internal/domain/result"
	qb "github.com/pitwall/fantasy-gp/internal/platform/querybuilder"
)

const resultUpsertSuffix = `ON CONFLICT (event_public_id) DO UPDATE SET
	grand_prix_finish = EXCLUDED.grand_prix_finish,
	gp_qualifying = EXCLUDED.gp_qualifying,
	fastest_lap_driver_id = EXCLUDED.fastest_lap_driver_id,
	sprint_finish = EXCLUDED.sprint_finish,
	sprint_qualifying = EXCLUDED.sprint_qualifying,
	driver_teams = EXCLUDED.driver_teams,
	scoring_snapshot = EXCLUDED.scoring_snapshot,
	entered_by = EXCLUDED.entered_by,
	updated_at = EXCLUDED.updated_at`

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) GetByEvent(ctx context.Context, eventID string) (result.EventResult, bool, error) {
	query, args, err := qb.Select("*").
		From("event_results").
		Where(qb.Eq("event_public_id", eventID)).
		ToSQL()
	if err != nil {
		return result.EventResult{}, false, fmt.Errorf("build get result query: %w", err)
	}

	var row resultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.EventResult{}, false, nil
		}
		return result.EventResult{}, false, fmt.Errorf("get result: %w", err)
	}

	res, err := resultFromRow(row)
	if err != nil {
		return result.EventResult{}, false, err
	}
	return res, true, nil
}

func (r *ResultRepository) ListAll(ctx context.Context) (map[string]result.EventResult, error) {
	query, args, err := qb.Select("*").
		From("event_results").
		OrderBy("event_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	out := make(map[string]result.EventResult, len(rows))
	for _, row := range rows {
		res, err := resultFromRow(row)
		if err != nil {
			return nil, err
		}
		out[res.EventID] = res
	}
	return out, nil
}

func (r *ResultRepository) Upsert(ctx context.Context, res result.EventResult) error {
	row, err := resultToInsert(res, time.Now().UTC())
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("event_results", row, resultUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}
	return nil
}
