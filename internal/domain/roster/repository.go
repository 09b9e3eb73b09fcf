package roster

import "context"

type Repository interface {
	ListDrivers(ctx context.Context) ([]Driver, error)
	ListConstructors(ctx context.Context) ([]Constructor, error)
	GetSnapshot(ctx context.Context) (Snapshot, error)
}
