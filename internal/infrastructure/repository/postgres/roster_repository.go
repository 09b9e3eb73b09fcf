package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	qb "github.com/pitwall/fantasy-gp/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListDrivers(ctx context.Context) ([]roster.Driver, error) {
	query, args, err := qb.Select("*").
		From("drivers").
		Where(qb.Eq("is_active", true)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list drivers query: %w", err)
	}

	var rows []driverTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}

	out := make([]roster.Driver, 0, len(rows))
	for _, row := range rows {
		out = append(out, driverFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) ListConstructors(ctx context.Context) ([]roster.Constructor, error) {
	query, args, err := qb.Select("*").
		From("constructors").
		Where(qb.Eq("is_active", true)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list constructors query: %w", err)
	}

	var rows []constructorTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list constructors: %w", err)
	}

	out := make([]roster.Constructor, 0, len(rows))
	for _, row := range rows {
		out = append(out, constructorFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) GetSnapshot(ctx context.Context) (roster.Snapshot, error) {
	drivers, err := r.ListDrivers(ctx)
	if err != nil {
		return roster.Snapshot{}, err
	}

	constructors, err := r.ListConstructors(ctx)
	if err != nil {
		return roster.Snapshot{}, err
	}

	return roster.NewSnapshot(time.Now().UTC(), drivers, constructors), nil
}
