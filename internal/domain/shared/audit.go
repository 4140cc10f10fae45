package shared

import (
	"context"

	"github.com/google/uuid"
)

// AuditEvent is one trail record describing who did what to which entity
type AuditEvent struct {
	CompanyID   uuid.UUID
	ActorID     uuid.UUID
	Action      string
	SubjectType string
	SubjectID   uuid.UUID
	Properties  map[string]string
}

// AuditRecorder records audit events best-effort. Implementations must never
// fail the calling operation: recording happens outside the business
// transaction and errors are swallowed after logging.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent)
}

// NoOpAuditRecorder discards all events
type NoOpAuditRecorder struct{}

// Record does nothing
func (NoOpAuditRecorder) Record(context.Context, AuditEvent) {}
