package ports

import (
	"context"

	"github.com/quizdeck/quiz-api/internal/core/domain"
)

// AuditRecorder accepts audit events for asynchronous persistence. Record
// must not block request handling beyond queue backpressure.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
