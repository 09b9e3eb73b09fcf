package usecase

import (
	"context"

	"github.com/pitwall/fantasy-gp/internal/domain/auditlog"
	"github.com/pitwall/fantasy-gp/internal/domain/event"
	"github.com/pitwall/fantasy-gp/internal/domain/leaderboard"
	"github.com/pitwall/fantasy-gp/internal/domain/pick"
	"github.com/pitwall/fantasy-gp/internal/domain/result"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/domain/scoring"
)

type stubPickRepository struct {
	byUser    map[string]map[string]pick.Selection
	upserts   []pick.Selection
	upsertErr error
}

func newStubPickRepository() *stubPickRepository {
	return &stubPickRepository{byUser: make(map[string]map[string]pick.Selection)}
}

func (r *stubPickRepository) put(sel pick.Selection) {
	if r.byUser[sel.UserID] == nil {
		r.byUser[sel.UserID] = make(map[string]pick.Selection)
	}
	r.byUser[sel.UserID][sel.EventID] = sel
}

func (r *stubPickRepository) GetSelection(_ context.Context, userID, eventID string) (pick.Selection, bool, error) {
	sel, ok := r.byUser[userID][eventID]
	return sel, ok, nil
}

func (r *stubPickRepository) UpsertSelection(_ context.Context, sel pick.Selection) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.put(sel)
	r.upserts = append(r.upserts, sel)
	return nil
}

func (r *stubPickRepository) GetSeasonPicks(_ context.Context, userID string) (pick.SeasonPicks, bool, error) {
	events, ok := r.byUser[userID]
	if !ok {
		return pick.SeasonPicks{}, false, nil
	}
	byEvent := make(map[string]pick.Selection, len(events))
	for id, sel := range events {
		byEvent[id] = sel
	}
	return pick.SeasonPicks{UserID: userID, ByEvent: byEvent}, true, nil
}

func (r *stubPickRepository) ListSeasonPicks(ctx context.Context) ([]pick.SeasonPicks, error) {
	out := make([]pick.SeasonPicks, 0, len(r.byUser))
	for userID := range r.byUser {
		season, _, _ := r.GetSeasonPicks(ctx, userID)
		out = append(out, season)
	}
	return out, nil
}

type stubEventRepository struct {
	events map[string]event.Event
}

func (r *stubEventRepository) List(_ context.Context) ([]event.Event, error) {
	out := make([]event.Event, 0, len(r.events))
	for _, evt := range r.events {
		out = append(out, evt)
	}
	return out, nil
}

func (r *stubEventRepository) GetByID(_ context.Context, eventID string) (event.Event, bool, error) {
	evt, ok := r.events[eventID]
	return evt, ok, nil
}

type stubResultRepository struct {
	results   map[string]result.EventResult
	upserts   []result.EventResult
	upsertErr error
}

func newStubResultRepository() *stubResultRepository {
	return &stubResultRepository{results: make(map[string]result.EventResult)}
}

func (r *stubResultRepository) GetByEvent(_ context.Context, eventID string) (result.EventResult, bool, error) {
	res, ok := r.results[eventID]
	return res, ok, nil
}

func (r *stubResultRepository) ListAll(_ context.Context) (map[string]result.EventResult, error) {
	out := make(map[string]result.EventResult, len(r.results))
	for id, res := range r.results {
		out[id] = res
	}
	return out, nil
}

func (r *stubResultRepository) Upsert(_ context.Context, res result.EventResult) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.results[res.EventID] = res
	r.upserts = append(r.upserts, res)
	return nil
}

type stubRosterRepository struct {
	snapshot roster.Snapshot
}

func (r *stubRosterRepository) ListDrivers(_ context.Context) ([]roster.Driver, error) {
	return r.snapshot.Drivers, nil
}

func (r *stubRosterRepository) ListConstructors(_ context.Context) ([]roster.Constructor, error) {
	return r.snapshot.Constructors, nil
}

func (r *stubRosterRepository) GetSnapshot(_ context.Context) (roster.Snapshot, error) {
	return r.snapshot, nil
}

type stubScoringRepository struct {
	settings scoring.Settings
	has      bool
	saved    []scoring.Settings
}

func (r *stubScoringRepository) GetSettings(_ context.Context) (scoring.Settings, bool, error) {
	return r.settings, r.has, nil
}

func (r *stubScoringRepository) SaveSettings(_ context.Context, settings scoring.Settings) error {
	r.settings = settings
	r.has = true
	r.saved = append(r.saved, settings)
	return nil
}

type stubLeaderboardRepository struct {
	entries     []leaderboard.Entry
	chunks      [][]leaderboard.Entry
	failAtChunk int // 1-based; 0 means never fail
	chunkErr    error
}

func (r *stubLeaderboardRepository) List(_ context.Context) ([]leaderboard.Entry, error) {
	return r.entries, nil
}

func (r *stubLeaderboardRepository) WriteChunk(_ context.Context, entries []leaderboard.Entry) error {
	if r.failAtChunk > 0 && len(r.chunks)+1 >= r.failAtChunk {
		return r.chunkErr
	}
	chunk := append([]leaderboard.Entry(nil), entries...)
	r.chunks = append(r.chunks, chunk)
	return nil
}

type stubAuditRepository struct {
	entries []auditlog.Entry
}

func (r *stubAuditRepository) Append(_ context.Context, entry auditlog.Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubAuditRepository) ListByEvent(_ context.Context, eventID string) ([]auditlog.Entry, error) {
	out := make([]auditlog.Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		if entry.EventID == eventID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type stubRecomputeTrigger struct {
	calls int
	err   error
}

func (t *stubRecomputeTrigger) EnqueueRecompute(context.Context) error {
	t.calls++
	return t.err
}
