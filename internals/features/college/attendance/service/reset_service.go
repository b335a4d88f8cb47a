// file: internals/features/college/attendance/service/reset_service.go
//
// Escape hatch operasional: hapus SEMUA data kehadiran satu (month, year)
// lintas subject dan lecturer, supaya bulan itu bisa di-submit ulang bersih.
// Destruktif dan tidak bisa di-undo; konfirmasi ada di sisi CLI.
package service

import (
	"log"

	"gorm.io/gorm"

	"moulya_backend/internals/features/college/attendance/repository"
	auditservice "moulya_backend/internals/features/college/audit/service"
)

type ResetService struct {
	DB    *gorm.DB
	Store *repository.AttendanceStore
	Audit *auditservice.AuditService
}

func NewResetService(db *gorm.DB) *ResetService {
	return &ResetService{
		DB:    db,
		Store: repository.NewAttendanceStore(db),
		Audit: auditservice.NewAuditService(db),
	}
}

type ResetResult struct {
	Month   int                     `json:"month"`
	Year    int                     `json:"year"`
	DryRun  bool                    `json:"dry_run"`
	Found   repository.MonthCounts  `json:"found"`
	Deleted *repository.MonthCounts `json:"deleted,omitempty"` // nil saat dry-run
}

// ResetMonth menghitung dulu apa yang ada, lalu (bila bukan dry-run) menghapus
// ketiga jenis record dalam satu transaksi.
func (s *ResetService) ResetMonth(month, year int, dryRun bool) (ResetResult, error) {
	if month < 1 || month > 12 {
		return ResetResult{}, invalidInputf("month must be between 1 and 12")
	}

	result := ResetResult{Month: month, Year: year, DryRun: dryRun}

	found, err := s.Store.CountMonth(nil, month, year)
	if err != nil {
		return result, persistencef(err)
	}
	result.Found = found
	if dryRun {
		return result, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		deleted, err := s.Store.DeleteMonth(tx, month, year)
		if err != nil {
			return persistencef(err)
		}
		result.Deleted = &deleted
		return nil
	})
	if err != nil {
		return result, err
	}

	if err := s.Audit.Record(nil, auditservice.ActionMonthReset, "operator",
		[]string{"attendance_records", "monthly_student_attendances", "monthly_attendance_summaries"},
		result,
	); err != nil {
		log.Printf("[WARN] audit record failed (month reset %d/%d): %v", month, year, err)
	}
	return result, nil
}
