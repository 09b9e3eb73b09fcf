package auditlog

import "context"

type Repository interface {
	Append(ctx context.Context, entry Entry) error
	ListByEvent(ctx context.Context, eventID string) ([]Entry, error)
}
