package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"moulya_backend/internals/features/college/attendance/model"
)

func submit(subjectID, lecturerID, month, year, total int, students map[int]int) MonthlySubmission {
	return MonthlySubmission{
		SubjectID:                subjectID,
		LecturerID:               lecturerID,
		Month:                    month,
		Year:                     year,
		TotalClassesCumulative:   total,
		StudentCumulativePresent: students,
	}
}

func TestSubmitMonthly_RejectsUnassignedLecturer(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)

	err := svc.SubmitMonthly(submit(1, 99, 8, 2025, 10, map[int]int{1: 8}))
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("want ErrNotAuthorized, got %v", err)
	}
}

func TestSubmitMonthly_RejectsBadMonth(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)
	seedAssignment(t, db, 1, 1)

	for _, month := range []int{0, 13, -1} {
		err := svc.SubmitMonthly(submit(1, 1, month, 2025, 10, map[int]int{1: 8}))
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("month=%d: want ErrInvalidInput, got %v", month, err)
		}
	}
}

func TestSubmitMonthly_CumulativeToDelta(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)
	seedAssignment(t, db, 1, 1)
	seedStudent(t, db, 1, "R001", "Anita", 1)

	// Agustus: 10 kelas kumulatif, siswa hadir 8
	if err := svc.SubmitMonthly(submit(1, 1, 8, 2025, 10, map[int]int{1: 8})); err != nil {
		t.Fatalf("august submit: %v", err)
	}
	// September: kumulatif 35 (delta 25), siswa kumulatif 30 (delta 22)
	if err := svc.SubmitMonthly(submit(1, 1, 9, 2025, 35, map[int]int{1: 30})); err != nil {
		t.Fatalf("september submit: %v", err)
	}

	sep, err := svc.Store.GetSummary(nil, 1, 1, 9, 2025)
	if err != nil || sep == nil {
		t.Fatalf("get september summary: %v", err)
	}
	if sep.TotalClasses != 25 {
		t.Errorf("september delta = %d, want 25", sep.TotalClasses)
	}
	row, err := svc.Store.GetStudentMonthly(nil, 1, 1, 1, 9, 2025)
	if err != nil || row == nil {
		t.Fatalf("get september student row: %v", err)
	}
	if row.PresentCount != 22 {
		t.Errorf("september student delta = %d, want 22", row.PresentCount)
	}
	// avg September = 22 / 25 * 100 = 88.00
	if sep.AverageAttendance != 88.0 {
		t.Errorf("september average = %v, want 88", sep.AverageAttendance)
	}
}

func TestSubmitMonthly_RejectsShrinkingCumulative(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)
	seedAssignment(t, db, 1, 1)

	if err := svc.SubmitMonthly(submit(1, 1, 8, 2025, 10, map[int]int{1: 8})); err != nil {
		t.Fatalf("august submit: %v", err)
	}
	err := svc.SubmitMonthly(submit(1, 1, 9, 2025, 5, map[int]int{1: 5}))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "at least 10") {
		t.Errorf("error should name the prior total, got: %v", err)
	}
}

func TestSubmitMonthly_RejectsStudentBelowPrior(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)
	seedAssignment(t, db, 1, 1)

	if err := svc.SubmitMonthly(submit(1, 1, 8, 2025, 10, map[int]int{7: 8})); err != nil {
		t.Fatalf("august submit: %v", err)
	}
	err := svc.SubmitMonthly(submit(1, 1, 9, 2025, 35, map[int]int{7: 6}))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "student 7") {
		t.Errorf("error should name the student, got: %v", err)
	}

	// seluruh submission ditolak: summary September tidak boleh tertulis
	sep, err := svc.Store.GetSummary(nil, 1, 1, 9, 2025)
	if err != nil {
		t.Fatalf("get summary: %v", err)
	}
	if sep != nil {
		t.Error("september summary written despite rejected submission")
	}
}

func TestSubmitMonthly_RejectsStudentAboveTotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)
	seedAssignment(t, db, 1, 1)

	err := svc.SubmitMonthly(submit(1, 1, 8, 2025, 10, map[int]int{3: 12}))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "student 3") {
		t.Errorf("error should name the student, got: %v", err)
	}
}

func TestSubmitMonthly_ResubmissionIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)
	seedAssignment(t, db, 1, 1)

	sub := submit(1, 1, 8, 2025, 10, map[int]int{1: 8})
	if err := svc.SubmitMonthly(sub); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := svc.SubmitMonthly(sub); err != nil {
		t.Fatalf("resubmit: %v", err)
	}

	summary, err := svc.Store.GetSummary(nil, 1, 1, 8, 2025)
	if err != nil || summary == nil {
		t.Fatalf("get summary: %v", err)
	}
	if summary.TotalClasses != 10 {
		t.Errorf("delta after resubmit = %d, want 10", summary.TotalClasses)
	}
	row, _ := svc.Store.GetStudentMonthly(nil, 1, 1, 1, 8, 2025)
	if row == nil || row.PresentCount != 8 {
		t.Errorf("student row after resubmit = %+v, want present 8", row)
	}
}

func TestSubmitMonthly_ClampsStudentDeltaToMonthDelta(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)
	seedAssignment(t, db, 1, 1)

	// Aug: total 10, siswa hadir 2. Sep: total kumulatif 12 (delta 2),
	// siswa kumulatif 8 (delta mentah 6) → harus dipangkas ke 2.
	if err := svc.SubmitMonthly(submit(1, 1, 8, 2025, 10, map[int]int{1: 2})); err != nil {
		t.Fatalf("august submit: %v", err)
	}
	if err := svc.SubmitMonthly(submit(1, 1, 9, 2025, 12, map[int]int{1: 8})); err != nil {
		t.Fatalf("september submit: %v", err)
	}

	row, _ := svc.Store.GetStudentMonthly(nil, 1, 1, 1, 9, 2025)
	if row == nil || row.PresentCount != 2 {
		t.Errorf("clamped student delta = %+v, want present 2", row)
	}
}

func TestRecordDeputation_DefaultsToLatestSubmittedMonth(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)
	seedAssignment(t, db, 1, 1)

	if err := svc.SubmitMonthly(submit(1, 1, 8, 2025, 10, map[int]int{1: 8})); err != nil {
		t.Fatalf("august submit: %v", err)
	}
	if err := svc.SubmitMonthly(submit(1, 1, 9, 2025, 35, map[int]int{1: 30})); err != nil {
		t.Fatalf("september submit: %v", err)
	}

	if err := svc.RecordDeputation(1, 1, 2025, nil, map[int]int{1: 3}); err != nil {
		t.Fatalf("record deputation: %v", err)
	}

	row, _ := svc.Store.GetStudentMonthly(nil, 1, 1, 1, 9, 2025)
	if row == nil || row.DeputationCount != 3 {
		t.Errorf("deputation row = %+v, want deputation 3 in september", row)
	}
	// present delta September tidak boleh tersentuh
	if row != nil && row.PresentCount != 22 {
		t.Errorf("present delta after deputation = %d, want 22", row.PresentCount)
	}
}

func TestRecordDeputation_NoSubmissionsYet(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)
	seedAssignment(t, db, 1, 1)

	err := svc.RecordDeputation(1, 1, 2025, nil, map[int]int{1: 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestRecordDeputation_RejectsNegative(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)
	seedAssignment(t, db, 1, 1)

	month := 8
	err := svc.RecordDeputation(1, 1, 2025, &month, map[int]int{1: -2})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestRecordDaily_CreatesRecords(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)
	seedAssignment(t, db, 1, 1)

	day := time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)
	err := svc.RecordDaily(1, 1, day, map[int]string{
		1: model.StatusPresent,
		2: model.StatusAbsent,
	})
	if err != nil {
		t.Fatalf("record daily: %v", err)
	}

	var rows []model.AttendanceRecordModel
	if err := db.Order("student_id").Find(&rows).Error; err != nil {
		t.Fatalf("load records: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("records = %d, want 2", len(rows))
	}
	if rows[0].Status != model.StatusPresent || rows[1].Status != model.StatusAbsent {
		t.Errorf("statuses = %q/%q, want present/absent", rows[0].Status, rows[1].Status)
	}
	if !rows[0].Date.Equal(day) {
		t.Errorf("date = %v, want %v", rows[0].Date, day)
	}
}

// Pencatatan ulang hari yang sama harus menimpa, bukan menambah baris.
func TestRecordDaily_UpsertsSameDay(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)
	seedAssignment(t, db, 1, 1)

	day := time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)
	if err := svc.RecordDaily(1, 1, day, map[int]string{1: model.StatusAbsent}); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := svc.RecordDaily(1, 1, day, map[int]string{1: model.StatusPresent}); err != nil {
		t.Fatalf("second record: %v", err)
	}

	var rows []model.AttendanceRecordModel
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("load records: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("records = %d, want 1 (upsert, not duplicate)", len(rows))
	}
	if rows[0].Status != model.StatusPresent {
		t.Errorf("status = %q, want present after re-record", rows[0].Status)
	}
}

func TestRecordDaily_RejectsBadStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)
	seedAssignment(t, db, 1, 1)

	day := time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)
	err := svc.RecordDaily(1, 1, day, map[int]string{1: "late"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}

	var count int64
	db.Model(&model.AttendanceRecordModel{}).Count(&count)
	if count != 0 {
		t.Errorf("records after rejected submission = %d, want 0", count)
	}
}

func TestRecordDaily_RejectsUnassignedLecturer(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcilerService(db)

	day := time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)
	err := svc.RecordDaily(1, 99, day, map[int]string{1: model.StatusPresent})
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("want ErrNotAuthorized, got %v", err)
	}
}
