package result

import "context"

type Repository interface {
	GetByEvent(ctx context.Context, eventID string) (EventResult, bool, error)
	ListAll(ctx context.Context) (map[string]EventResult, error)
	Upsert(ctx context.Context, result EventResult) error
}
