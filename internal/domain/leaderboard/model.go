package leaderboard

import "time"

// Common document-store batches cap out near 500 writes; 450 leaves
// headroom for bookkeeping writes in the same batch.
const WriteChunkSize = 450

// Breakdown splits a total into its category buckets, pre-penalty.
type Breakdown struct {
	GrandPrix  int
	Sprint     int
	Qualifying int
	FastestLap int
}

// Entry is one ranked row. Fully derived; the recompute rewrites every
// entry from scratch.
type Entry struct {
	UserID       string
	TotalPoints  int
	Rank         int
	Breakdown    Breakdown
	CalculatedAt time.Time
}
