package postgres

import (
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/roster"
)

type constructorTableModel struct {
	ID       int64     `db:"id"`
	PublicID string    `db:"public_id"`
	Name     string    `db:"name"`
	Class    string    `db:"class"`
	IsActive bool      `db:"is_active"`
	AddedAt  time.Time `db:"added_at"`
}

type driverTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	Name          string    `db:"name"`
	Class         string    `db:"class"`
	ConstructorID string    `db:"constructor_public_id"`
	IsActive      bool      `db:"is_active"`
	AddedAt       time.Time `db:"added_at"`
}

func constructorFromRow(row constructorTableModel) roster.Constructor {
	return roster.Constructor{
		ID:       row.PublicID,
		Name:     row.Name,
		ClassOf:  roster.Class(row.Class),
		IsActive: row.IsActive,
	}
}

func driverFromRow(row driverTableModel) roster.Driver {
	return roster.Driver{
		ID:            row.PublicID,
		Name:          row.Name,
		ClassOf:       roster.Class(row.Class),
		ConstructorID: row.ConstructorID,
		IsActive:      row.IsActive,
	}
}
