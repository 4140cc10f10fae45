package audit

import (
	"context"
	"encoding/json"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuditLog is the persisted form of a shared.AuditEvent. Properties are
// stored as a JSON blob since the shape varies per action.
type AuditLog struct {
	shared.BaseEntity
	CompanyID   uuid.UUID `gorm:"type:uuid;index"`
	ActorID     uuid.UUID `gorm:"type:uuid"`
	Action      string    `gorm:"size:100;index"`
	SubjectType string    `gorm:"size:100"`
	SubjectID   uuid.UUID `gorm:"type:uuid;index"`
	Properties  string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AuditLog) TableName() string {
	return "audit_logs"
}

// GormAuditRecorder persists audit events to the database. Recording is
// best-effort: failures are logged and swallowed so the trail never blocks
// or fails a business operation.
type GormAuditRecorder struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormAuditRecorder creates a new GormAuditRecorder
func NewGormAuditRecorder(db *gorm.DB, log *zap.Logger) *GormAuditRecorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &GormAuditRecorder{db: db, log: log}
}

// Record writes the event as an audit log row
func (r *GormAuditRecorder) Record(ctx context.Context, event shared.AuditEvent) {
	row := &AuditLog{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyID:   event.CompanyID,
		ActorID:     event.ActorID,
		Action:      event.Action,
		SubjectType: event.SubjectType,
		SubjectID:   event.SubjectID,
	}
	if len(event.Properties) > 0 {
		props, err := json.Marshal(event.Properties)
		if err != nil {
			r.log.Warn("failed to encode audit properties",
				zap.String("action", event.Action),
				zap.Error(err))
		} else {
			row.Properties = string(props)
		}
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		r.log.Warn("failed to record audit event",
			zap.String("action", event.Action),
			zap.String("subject_type", event.SubjectType),
			zap.String("subject_id", event.SubjectID.String()),
			zap.Error(err))
	}
}

var _ shared.AuditRecorder = (*GormAuditRecorder)(nil)
