package memory

import (
	"context"
	"sync"

	"github.com/pitwall/fantasy-gp/internal/domain/auditlog"
)

type AuditLogRepository struct {
	mu      sync.RWMutex
	entries []auditlog.Entry
}

func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{}
}

func (r *AuditLogRepository) Append(_ context.Context, entry auditlog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)

	return nil
}

func (r *AuditLogRepository) ListByEvent(_ context.Context, eventID string) ([]auditlog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]auditlog.Entry, 0)
	for _, entry := range r.entries {
		if entry.EventID == eventID {
			out = append(out, entry)
		}
	}

	return out, nil
}
