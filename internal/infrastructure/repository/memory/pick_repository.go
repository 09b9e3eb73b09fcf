package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/pick"
)

type PickRepository struct {
	mu     sync.RWMutex
	byUser map[string]pick.SeasonPicks
	orders []string

	now func() time.Time
}

func NewPickRepository() *PickRepository {
	return &PickRepository{
		byUser: make(map[string]pick.SeasonPicks),
		now:    time.Now,
	}
}

func (r *PickRepository) GetSelection(_ context.Context, userID, eventID string) (pick.Selection, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	season, ok := r.byUser[userID]
	if !ok {
		return pick.Selection{}, false, nil
	}

	sel, ok := season.ByEvent[eventID]
	if !ok {
		return pick.Selection{}, false, nil
	}

	return sel, true, nil
}

func (r *PickRepository) UpsertSelection(_ context.Context, selection pick.Selection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	season, ok := r.byUser[selection.UserID]
	if !ok {
		season = pick.SeasonPicks{
			UserID:  selection.UserID,
			ByEvent: make(map[string]pick.Selection),
		}
		r.orders = append(r.orders, selection.UserID)
	}

	season.ByEvent[selection.EventID] = selection
	season.LastSaveAt = r.now().UTC()
	r.byUser[selection.UserID] = season

	return nil
}

func (r *PickRepository) GetSeasonPicks(_ context.Context, userID string) (pick.SeasonPicks, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	season, ok := r.byUser[userID]
	if !ok {
		return pick.SeasonPicks{}, false, nil
	}

	return copySeason(season), true, nil
}

func (r *PickRepository) ListSeasonPicks(_ context.Context) ([]pick.SeasonPicks, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.SeasonPicks, 0, len(r.orders))
	for _, userID := range r.orders {
		out = append(out, copySeason(r.byUser[userID]))
	}

	return out, nil
}

func copySeason(season pick.SeasonPicks) pick.SeasonPicks {
	byEvent := make(map[string]pick.Selection, len(season.ByEvent))
	for eventID, sel := range season.ByEvent {
		byEvent[eventID] = sel
	}
	season.ByEvent = byEvent
	return season
}
