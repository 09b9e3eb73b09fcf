package postgres

import (
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/event"
)

type eventTableModel struct {
	ID             int64     `db:"id"`
	PublicID       string    `db:"public_id"`
	Round          int       `db:"round"`
	Name           string    `db:"name"`
	Country        string    `db:"country"`
	HasSprint      bool      `db:"has_sprint"`
	LockAt         time.Time `db:"lock_at"`
	SoftDeadlineAt time.Time `db:"soft_deadline_at"`
}

func eventFromRow(row eventTableModel) event.Event {
	return event.Event{
		ID:             row.PublicID,
		Round:          row.Round,
		Name:           row.Name,
		Country:        row.Country,
		HasSprint:      row.HasSprint,
		LockAtUTC:      row.LockAt.UTC(),
		SoftDeadlineAt: row.SoftDeadlineAt.UTC(),
	}
}
