package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pm-platform/patient-service/internal/domain/audit"
)

type AuditRepository struct {
	mu      sync.Mutex
	entries []*audit.Entry
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

var _ audit.Repository = (*AuditRepository)(nil)

func (r *AuditRepository) Create(_ context.Context, e *audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *e
	cp.ID = uuid.New()
	r.entries = append(r.entries, &cp)
	return nil
}

// Entries returns a copy of everything recorded so far.
func (r *AuditRepository) Entries() []*audit.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*audit.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
