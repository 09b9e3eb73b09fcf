package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/event"
	"github.com/pitwall/fantasy-gp/internal/domain/pick"
)

func pickServiceFixture() (*PickService, *stubPickRepository, *stubResultRepository, *stubAuditRepository, *stubRecomputeTrigger) {
	lockAt := time.Date(2026, time.March, 7, 14, 0, 0, 0, time.UTC)
	eventRepo := &stubEventRepository{events: map[string]event.Event{
		"gp-sakhir": {ID: "gp-sakhir", Round: 1, Name: "Sakhir Grand Prix", LockAtUTC: lockAt, SoftDeadlineAt: lockAt.Add(-30 * time.Minute)},
	}}
	pickRepo := newStubPickRepository()
	resultRepo := newStubResultRepository()
	auditRepo := &stubAuditRepository{}
	trigger := &stubRecomputeTrigger{}

	svc := NewPickService(pickRepo, eventRepo, resultRepo, &stubRosterRepository{snapshot: testGrid()}, auditRepo, trigger, nil)
	svc.now = func() time.Time { return lockAt.Add(-time.Hour) }
	return svc, pickRepo, resultRepo, auditRepo, trigger
}

func validSelection() pick.Selection {
	return pick.Selection{
		UserID:     "user-1",
		EventID:    "gp-sakhir",
		ATeams:     []string{"t1"},
		BTeam:      "t3",
		ADrivers:   []string{"d1", "d3"},
		BDrivers:   []string{"d4"},
		FastestLap: "d1",
	}
}

func TestPickService_Submit(t *testing.T) {
	t.Parallel()

	svc, pickRepo, _, _, _ := pickServiceFixture()

	if err := svc.Submit(context.Background(), validSelection()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(pickRepo.upserts) != 1 {
		t.Fatalf("expected one upsert, got %d", len(pickRepo.upserts))
	}
	stored := pickRepo.upserts[0]
	if stored.SubmittedAt.IsZero() {
		t.Fatalf("expected submitted_at to be stamped")
	}
}

func TestPickService_Submit_OverwritesWholesaleAndResetsPenalty(t *testing.T) {
	t.Parallel()

	svc, pickRepo, _, _, _ := pickServiceFixture()

	first := validSelection()
	if err := svc.Submit(context.Background(), first); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := svc.ApplyPenalty(context.Background(), "admin-1", "user-1", "gp-sakhir", 0.5, "late swap"); err != nil {
		t.Fatalf("apply penalty: %v", err)
	}

	second := validSelection()
	second.ADrivers = []string{"d2"}
	if err := svc.Submit(context.Background(), second); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	stored, ok, _ := pickRepo.GetSelection(context.Background(), "user-1", "gp-sakhir")
	if !ok {
		t.Fatalf("expected stored selection")
	}
	if len(stored.ADrivers) != 1 || stored.ADrivers[0] != "d2" {
		t.Fatalf("expected wholesale overwrite, got %v", stored.ADrivers)
	}
	if stored.Penalty != 0 || stored.PenaltyReason != "" {
		t.Fatalf("resubmission must reset penalty fields: %+v", stored)
	}
}

func TestPickService_Submit_RejectsLockedEvent(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := pickServiceFixture()
	svc.now = func() time.Time { return time.Date(2026, time.March, 7, 14, 0, 0, 0, time.UTC) }

	err := svc.Submit(context.Background(), validSelection())
	if !errors.Is(err, ErrPickLocked) {
		t.Fatalf("expected ErrPickLocked at the lock instant, got %v", err)
	}
}

func TestPickService_Submit_RejectsEventWithResult(t *testing.T) {
	t.Parallel()

	svc, _, resultRepo, _, _ := pickServiceFixture()
	resultRepo.results["gp-sakhir"] = resultFixture()

	err := svc.Submit(context.Background(), validSelection())
	if !errors.Is(err, ErrPickLocked) {
		t.Fatalf("expected ErrPickLocked once a result exists, got %v", err)
	}
}

func TestPickService_Submit_RejectsUnknownAndMisclassedIDs(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := pickServiceFixture()

	unknown := validSelection()
	unknown.ADrivers = []string{"d1", "drv-ghost"}
	if err := svc.Submit(context.Background(), unknown); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown driver, got %v", err)
	}

	misclassed := validSelection()
	misclassed.BTeam = "t1" // class A team in the B slot
	if err := svc.Submit(context.Background(), misclassed); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for misclassed team, got %v", err)
	}

	tooMany := validSelection()
	tooMany.ADrivers = []string{"d1", "d2", "d3", "d3"}
	if err := svc.Submit(context.Background(), tooMany); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversized slot, got %v", err)
	}
}

func TestPickService_Submit_UnknownEvent(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := pickServiceFixture()
	sel := validSelection()
	sel.EventID = "gp-nowhere"

	if err := svc.Submit(context.Background(), sel); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPickService_ApplyPenalty(t *testing.T) {
	t.Parallel()

	svc, pickRepo, _, auditRepo, trigger := pickServiceFixture()
	if err := svc.Submit(context.Background(), validSelection()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.ApplyPenalty(context.Background(), "admin-1", "user-1", "gp-sakhir", 0.25, "track limits"); err != nil {
		t.Fatalf("apply penalty: %v", err)
	}

	stored, _, _ := pickRepo.GetSelection(context.Background(), "user-1", "gp-sakhir")
	if stored.Penalty != 0.25 || stored.PenaltyReason != "track limits" {
		t.Fatalf("unexpected stored penalty: %+v", stored)
	}
	if len(auditRepo.entries) != 1 || auditRepo.entries[0].Action != "apply_penalty" {
		t.Fatalf("expected one apply_penalty audit entry, got %+v", auditRepo.entries)
	}
	if trigger.calls != 1 {
		t.Fatalf("expected one recompute trigger, got %d", trigger.calls)
	}

	if err := svc.ApplyPenalty(context.Background(), "admin-1", "user-1", "gp-sakhir", 1.5, "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out-of-range penalty, got %v", err)
	}
	if err := svc.ApplyPenalty(context.Background(), "admin-1", "user-2", "gp-sakhir", 0.5, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing selection, got %v", err)
	}
}

func TestPickService_GetSeasonPicks_EmptyForNewUser(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := pickServiceFixture()
	season, err := svc.GetSeasonPicks(context.Background(), "user-new")
	if err != nil {
		t.Fatalf("get season picks: %v", err)
	}
	if season.UserID != "user-new" || len(season.ByEvent) != 0 {
		t.Fatalf("expected empty season document, got %+v", season)
	}
}
