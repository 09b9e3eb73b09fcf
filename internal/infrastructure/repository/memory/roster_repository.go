package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/roster"
)

type RosterRepository struct {
	mu           sync.RWMutex
	drivers      []roster.Driver
	constructors []roster.Constructor
	effectiveAt  time.Time
}

func NewRosterRepository(effectiveAt time.Time, drivers []roster.Driver, constructors []roster.Constructor) *RosterRepository {
	return &RosterRepository{
		drivers:      append([]roster.Driver(nil), drivers...),
		constructors: append([]roster.Constructor(nil), constructors...),
		effectiveAt:  effectiveAt,
	}
}

func (r *RosterRepository) ListDrivers(_ context.Context) ([]roster.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]roster.Driver(nil), r.drivers...), nil
}

func (r *RosterRepository) ListConstructors(_ context.Context) ([]roster.Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]roster.Constructor(nil), r.constructors...), nil
}

func (r *RosterRepository) GetSnapshot(_ context.Context) (roster.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return roster.NewSnapshot(r.effectiveAt, r.drivers, r.constructors), nil
}
