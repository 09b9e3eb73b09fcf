package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/pitwall/fantasy-gp/internal/domain/auditlog"
	qb "github.com/pitwall/fantasy-gp/internal/platform/querybuilder"
)

type auditLogTableModel struct {
	ID        int64     `db:"id"`
	AdminID   string    `db:"admin_id"`
	EventID   string    `db:"event_public_id"`
	Action    string    `db:"action"`
	Changes   string    `db:"changes"`
	CreatedAt time.Time `db:"created_at"`
}

type AuditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Append(ctx context.Context, entry auditlog.Entry) error {
	changes, err := sonic.Marshal(entry.Changes)
	if err != nil {
		return fmt.Errorf("encode audit changes: %w", err)
	}

	query, args, err := qb.InsertInto("audit_log").
		Columns("admin_id", "event_public_id", "action", "changes", "created_at").
		Values(entry.AdminID, entry.EventID, entry.Action, string(changes), entry.Timestamp).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build append audit entry query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (r *AuditLogRepository) ListByEvent(ctx context.Context, eventID string) ([]auditlog.Entry, error) {
	query, args, err := qb.Select("*").
		From("audit_log").
		Where(qb.Eq("event_public_id", eventID)).
		OrderBy("created_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list audit entries query: %w", err)
	}

	var rows []auditLogTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	out := make([]auditlog.Entry, 0, len(rows))
	for _, row := range rows {
		var changes map[string]any
		if row.Changes != "" {
			if err := sonic.Unmarshal([]byte(row.Changes), &changes); err != nil {
				return nil, fmt.Errorf("decode audit changes: %w", err)
			}
		}
		out = append(out, auditlog.Entry{
			AdminID:   row.AdminID,
			EventID:   row.EventID,
			Action:    row.Action,
			Changes:   changes,
			Timestamp: row.CreatedAt.UTC(),
		})
	}
	return out, nil
}
