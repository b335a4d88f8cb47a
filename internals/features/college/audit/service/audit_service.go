// file: internals/features/college/audit/service/audit_service.go
package service

import (
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"moulya_backend/internals/features/college/audit/model"
)

const (
	ActionBackfillApply = "attendance_backfill_apply"
	ActionMonthReset    = "attendance_month_reset"
	ActionCascadeDelete = "cascade_delete"
)

type AuditService struct {
	DB *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService { return &AuditService{DB: db} }

// Record menulis satu entri audit. Payload di-serialize ke JSON; caller yang
// memutuskan apakah kegagalan audit membatalkan operasi (umumnya best-effort).
func (s *AuditService) Record(tx *gorm.DB, action, actorRole string, tables []string, payload interface{}) error {
	db := s.DB
	if tx != nil {
		db = tx
	}

	raw, err := sonic.Marshal(payload)
	if err != nil {
		return err
	}
	entry := model.AuditLogModel{
		AuditLogID: uuid.New(),
		Action:     action,
		ActorRole:  actorRole,
		Tables:     tables,
		Payload:    raw,
	}
	return db.Create(&entry).Error
}
