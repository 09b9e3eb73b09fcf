package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitwall/fantasy-gp/internal/domain/event"
	qb "github.com/pitwall/fantasy-gp/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	query, args, err := qb.Select("*").
		From("events").
		OrderBy("round").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (event.Event, bool, error) {
	query, args, err := qb.Select("*").
		From("events").
		Where(qb.Eq("public_id", eventID)).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("get event: %w", err)
	}

	return eventFromRow(row), true, nil
}
