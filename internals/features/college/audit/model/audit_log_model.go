package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// AuditLogModel mencatat operasi privileged yang menulis tabel kehadiran di
// luar jalur rekonsiliasi normal (backfill apply, month reset, cascade delete).
type AuditLogModel struct {
	AuditLogID uuid.UUID `gorm:"type:uuid;primaryKey;column:audit_log_id" json:"audit_log_id"`

	Action    string         `gorm:"size:50;not null;index;column:action" json:"action"`
	ActorRole string         `gorm:"size:20;not null;column:actor_role" json:"actor_role"`
	Tables    pq.StringArray `gorm:"type:text[];column:tables" json:"tables"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }
