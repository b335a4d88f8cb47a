package service

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	attendanceModel "moulya_backend/internals/features/college/attendance/model"
)

func seedMonthData(t *testing.T, db *gorm.DB, month, year int) {
	t.Helper()
	day := time.Date(year, time.Month(month), 3, 0, 0, 0, 0, time.UTC)
	rec := attendanceModel.AttendanceRecordModel{
		StudentID: 1, SubjectID: 1, LecturerID: 1,
		Date: day, Status: attendanceModel.StatusPresent,
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed daily: %v", err)
	}
	row := attendanceModel.MonthlyStudentAttendanceModel{
		StudentID: 1, SubjectID: 1, LecturerID: 1,
		Month: month, Year: year, PresentCount: 5,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed student monthly: %v", err)
	}
	sum := attendanceModel.MonthlyAttendanceSummaryModel{
		SubjectID: 1, LecturerID: 1,
		Month: month, Year: year, TotalClasses: 8,
	}
	if err := db.Create(&sum).Error; err != nil {
		t.Fatalf("seed summary: %v", err)
	}
}

func TestResetMonth_DryRunCountsWithoutDeleting(t *testing.T) {
	db := newTestDB(t)
	svc := NewResetService(db)
	seedMonthData(t, db, 9, 2025)

	res, err := svc.ResetMonth(9, 2025, true)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !res.DryRun {
		t.Error("result not marked dry-run")
	}
	if res.Found.DailyRecords != 1 || res.Found.StudentAttendance != 1 || res.Found.Summaries != 1 {
		t.Errorf("found = %+v, want 1/1/1", res.Found)
	}
	if res.Deleted != nil {
		t.Error("dry-run must not report deletions")
	}

	var cnt int64
	db.Model(&attendanceModel.MonthlyAttendanceSummaryModel{}).Count(&cnt)
	if cnt != 1 {
		t.Errorf("summary rows after dry-run = %d, want 1", cnt)
	}
}

func TestResetMonth_DeletesOnlyTargetMonth(t *testing.T) {
	db := newTestDB(t)
	svc := NewResetService(db)
	seedMonthData(t, db, 9, 2025)
	seedMonthData(t, db, 8, 2025)

	res, err := svc.ResetMonth(9, 2025, false)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if res.Deleted == nil {
		t.Fatal("deleted counts missing")
	}
	if res.Deleted.DailyRecords != 1 || res.Deleted.StudentAttendance != 1 || res.Deleted.Summaries != 1 {
		t.Errorf("deleted = %+v, want 1/1/1", *res.Deleted)
	}

	// Agustus tetap utuh
	var cnt int64
	db.Model(&attendanceModel.MonthlyAttendanceSummaryModel{}).
		Where("month = ? AND year = ?", 8, 2025).Count(&cnt)
	if cnt != 1 {
		t.Errorf("august summaries = %d, want 1", cnt)
	}
	db.Model(&attendanceModel.MonthlyAttendanceSummaryModel{}).
		Where("month = ? AND year = ?", 9, 2025).Count(&cnt)
	if cnt != 0 {
		t.Errorf("september summaries = %d, want 0", cnt)
	}
}

func TestResetMonth_EmptyMonth(t *testing.T) {
	db := newTestDB(t)
	svc := NewResetService(db)

	res, err := svc.ResetMonth(4, 2025, false)
	if err != nil {
		t.Fatalf("reset empty month: %v", err)
	}
	if res.Deleted == nil || res.Deleted.DailyRecords != 0 || res.Deleted.Summaries != 0 {
		t.Errorf("deleted = %+v, want zeros", res.Deleted)
	}
}

func TestResetMonth_RejectsBadMonth(t *testing.T) {
	db := newTestDB(t)
	svc := NewResetService(db)

	_, err := svc.ResetMonth(13, 2025, true)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}
