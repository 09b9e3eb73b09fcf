package leaderboard

import "context"

type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	// WriteChunk persists one chunk of ranked entries. Chunks are disjoint in
	// target keys; a failed chunk leaves earlier chunks in place.
	WriteChunk(ctx context.Context, entries []Entry) error
}
