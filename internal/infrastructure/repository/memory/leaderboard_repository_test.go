package memory

import (
	"context"
	"testing"

	"github.com/pitwall/fantasy-gp/internal/domain/leaderboard"
)

func TestLeaderboardRepository_WriteChunkUpsertsByUser(t *testing.T) {
	t.Parallel()

	repo := NewLeaderboardRepository()

	first := []leaderboard.Entry{
		{UserID: "user-1", TotalPoints: 25, Rank: 1},
		{UserID: "user-2", TotalPoints: 18, Rank: 2},
	}
	if err := repo.WriteChunk(context.Background(), first); err != nil {
		t.Fatalf("write chunk: %v", err)
	}

	// A later recompute rewrites the same users with new standings.
	second := []leaderboard.Entry{
		{UserID: "user-2", TotalPoints: 43, Rank: 1},
		{UserID: "user-1", TotalPoints: 25, Rank: 2},
	}
	if err := repo.WriteChunk(context.Background(), second); err != nil {
		t.Fatalf("rewrite chunk: %v", err)
	}

	entries, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after upsert, got %d", len(entries))
	}
	if entries[0].UserID != "user-2" || entries[0].TotalPoints != 43 {
		t.Fatalf("expected user-2 on top, got %+v", entries[0])
	}
	if entries[1].UserID != "user-1" || entries[1].Rank != 2 {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}
