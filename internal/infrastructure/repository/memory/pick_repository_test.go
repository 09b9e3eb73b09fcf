package memory

import (
	"context"
	"testing"

	"github.com/pitwall/fantasy-gp/internal/domain/pick"
)

func TestPickRepository_UpsertAndGet(t *testing.T) {
	t.Parallel()

	repo := NewPickRepository()
	sel := pick.Selection{UserID: "user-1", EventID: "gp-sakhir", ADrivers: []string{"drv-vanek"}}

	if err := repo.UpsertSelection(context.Background(), sel); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, ok, err := repo.GetSelection(context.Background(), "user-1", "gp-sakhir")
	if err != nil || !ok {
		t.Fatalf("get selection: ok=%v err=%v", ok, err)
	}
	if got.ADrivers[0] != "drv-vanek" {
		t.Fatalf("unexpected selection: %+v", got)
	}

	if _, ok, _ := repo.GetSelection(context.Background(), "user-1", "gp-jeddah"); ok {
		t.Fatal("expected miss for unpicked event")
	}
	if _, ok, _ := repo.GetSelection(context.Background(), "user-2", "gp-sakhir"); ok {
		t.Fatal("expected miss for unknown user")
	}
}

func TestPickRepository_GetSeasonPicks_ReturnsCopy(t *testing.T) {
	t.Parallel()

	repo := NewPickRepository()
	if err := repo.UpsertSelection(context.Background(), pick.Selection{UserID: "user-1", EventID: "gp-sakhir"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	season, ok, err := repo.GetSeasonPicks(context.Background(), "user-1")
	if err != nil || !ok {
		t.Fatalf("get season picks: ok=%v err=%v", ok, err)
	}

	// Mutating the returned map must not leak into the store.
	season.ByEvent["gp-jeddah"] = pick.Selection{UserID: "user-1", EventID: "gp-jeddah"}

	again, _, _ := repo.GetSeasonPicks(context.Background(), "user-1")
	if len(again.ByEvent) != 1 {
		t.Fatalf("expected stored season to stay at 1 event, got %d", len(again.ByEvent))
	}
}

func TestPickRepository_ListSeasonPicks_StableOrder(t *testing.T) {
	t.Parallel()

	repo := NewPickRepository()
	for _, userID := range []string{"user-c", "user-a", "user-b"} {
		if err := repo.UpsertSelection(context.Background(), pick.Selection{UserID: userID, EventID: "gp-sakhir"}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	seasons, err := repo.ListSeasonPicks(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(seasons) != 3 {
		t.Fatalf("expected 3 seasons, got %d", len(seasons))
	}
	// First-write order, not map order.
	if seasons[0].UserID != "user-c" || seasons[1].UserID != "user-a" || seasons[2].UserID != "user-b" {
		t.Fatalf("unexpected order: %+v", seasons)
	}
}
