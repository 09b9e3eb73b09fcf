package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pitwall/fantasy-gp/internal/domain/leaderboard"
)

type LeaderboardRepository struct {
	mu    sync.RWMutex
	items map[string]leaderboard.Entry
}

func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{
		items: make(map[string]leaderboard.Entry),
	}
}

func (r *LeaderboardRepository) List(_ context.Context) ([]leaderboard.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]leaderboard.Entry, 0, len(r.items))
	for _, entry := range r.items {
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })

	return out, nil
}

func (r *LeaderboardRepository) WriteChunk(_ context.Context, entries []leaderboard.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range entries {
		r.items[entry.UserID] = entry
	}

	return nil
}
