package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pm-platform/patient-service/internal/domain/audit"
	"github.com/pm-platform/patient-service/pkg/metrics"
)

const auditBufferSize = 10_000

// AuditService persists registry mutations asynchronously so the write path
// never blocks on the audit table.
type AuditService struct {
	repo    audit.Repository
	log     *zap.Logger
	metrics *metrics.Collector
	entries chan *audit.Entry
	done    chan struct{}
}

func NewAuditService(repo audit.Repository, log *zap.Logger, m *metrics.Collector) *AuditService {
	svc := &AuditService{
		repo:    repo,
		log:     log,
		metrics: m,
		entries: make(chan *audit.Entry, auditBufferSize),
		done:    make(chan struct{}),
	}
	go svc.worker()
	return svc
}

// LogAsync enqueues an audit entry for async persistence.
// If the buffer is full, the entry is dropped and a warning is emitted.
func (s *AuditService) LogAsync(ctx context.Context, action audit.Action, resourceID string) {
	entry := &audit.Entry{
		Action:       action,
		ResourceType: "patient",
		ResourceID:   resourceID,
		RequestID:    RequestIDFrom(ctx),
	}

	select {
	case s.entries <- entry:
	default:
		s.metrics.AuditBufferDropped.Inc()
		s.log.Warn("audit buffer full, dropping entry",
			zap.String("action", string(action)),
			zap.String("resource_id", resourceID),
		)
	}
}

func (s *AuditService) Shutdown() {
	close(s.entries)
	select {
	case <-s.done:
	case <-time.After(10 * time.Second):
		s.log.Warn("audit service shutdown timed out; some entries may be lost")
	}
}

func (s *AuditService) worker() {
	defer close(s.done)
	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.repo.Create(ctx, entry); err != nil {
			s.log.Error("failed to persist audit entry", zap.Error(err))
		} else {
			s.metrics.AuditEntriesTotal.Inc()
		}
		cancel()
	}
}
