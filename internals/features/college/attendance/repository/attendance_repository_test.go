package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"moulya_backend/internals/features/college/attendance/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.AttendanceRecordModel{},
		&model.MonthlyAttendanceSummaryModel{},
		&model.MonthlyStudentAttendanceModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestUpsertSummary_UpdatesOnConflict(t *testing.T) {
	store := NewAttendanceStore(newTestDB(t))

	first := model.MonthlyAttendanceSummaryModel{
		SubjectID: 1, LecturerID: 1, Month: 8, Year: 2025,
		TotalClasses: 10, TotalStudents: 3,
	}
	if err := store.UpsertSummary(nil, &first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second := model.MonthlyAttendanceSummaryModel{
		SubjectID: 1, LecturerID: 1, Month: 8, Year: 2025,
		TotalClasses: 12, TotalStudents: 4,
	}
	if err := store.UpsertSummary(nil, &second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	store.DB.Model(&model.MonthlyAttendanceSummaryModel{}).Count(&count)
	if count != 1 {
		t.Fatalf("rows = %d, want 1 (upsert, not insert)", count)
	}
	got, _ := store.GetSummary(nil, 1, 1, 8, 2025)
	if got == nil || got.TotalClasses != 12 || got.TotalStudents != 4 {
		t.Errorf("after upsert = %+v, want total 12 students 4", got)
	}
}

func TestPriorTotalClasses_CrossYear(t *testing.T) {
	store := NewAttendanceStore(newTestDB(t))

	seed := []model.MonthlyAttendanceSummaryModel{
		{SubjectID: 1, LecturerID: 1, Month: 11, Year: 2024, TotalClasses: 9},
		{SubjectID: 1, LecturerID: 1, Month: 8, Year: 2025, TotalClasses: 10},
		{SubjectID: 1, LecturerID: 1, Month: 9, Year: 2025, TotalClasses: 25},
		{SubjectID: 2, LecturerID: 1, Month: 8, Year: 2025, TotalClasses: 99}, // subject lain
	}
	for i := range seed {
		if err := store.UpsertSummary(nil, &seed[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// sebelum Sep 2025: Nov 2024 + Aug 2025
	got, err := store.PriorTotalClasses(nil, 1, 1, 9, 2025)
	if err != nil {
		t.Fatalf("prior: %v", err)
	}
	if got != 19 {
		t.Errorf("prior before 9/2025 = %d, want 19", got)
	}
	// sebelum Aug 2025: hanya Nov 2024
	got, _ = store.PriorTotalClasses(nil, 1, 1, 8, 2025)
	if got != 9 {
		t.Errorf("prior before 8/2025 = %d, want 9", got)
	}
	// bulan dalam tahun yang sama tidak ikut dihitung untuk dirinya sendiri
	got, _ = store.PriorTotalClasses(nil, 1, 1, 1, 2024)
	if got != 0 {
		t.Errorf("prior before 1/2024 = %d, want 0", got)
	}
}

func TestUpsertStudentPresent_PreservesDeputation(t *testing.T) {
	store := NewAttendanceStore(newTestDB(t))

	row := model.MonthlyStudentAttendanceModel{
		StudentID: 1, SubjectID: 1, LecturerID: 1, Month: 8, Year: 2025,
		PresentCount: 5,
	}
	if err := store.UpsertStudentPresent(nil, &row); err != nil {
		t.Fatalf("present upsert: %v", err)
	}
	dep := model.MonthlyStudentAttendanceModel{
		StudentID: 1, SubjectID: 1, LecturerID: 1, Month: 8, Year: 2025,
		DeputationCount: 3,
	}
	if err := store.UpsertStudentDeputation(nil, &dep); err != nil {
		t.Fatalf("deputation upsert: %v", err)
	}
	// resubmit present: deputation tidak boleh tertimpa
	again := model.MonthlyStudentAttendanceModel{
		StudentID: 1, SubjectID: 1, LecturerID: 1, Month: 8, Year: 2025,
		PresentCount: 7,
	}
	if err := store.UpsertStudentPresent(nil, &again); err != nil {
		t.Fatalf("present re-upsert: %v", err)
	}

	got, _ := store.GetStudentMonthly(nil, 1, 1, 1, 8, 2025)
	if got == nil || got.PresentCount != 7 || got.DeputationCount != 3 {
		t.Errorf("row = %+v, want present 7 deputation 3", got)
	}
}

func TestSumPresentYear_SplitsDeputation(t *testing.T) {
	store := NewAttendanceStore(newTestDB(t))

	rows := []model.MonthlyStudentAttendanceModel{
		{StudentID: 1, SubjectID: 1, LecturerID: 1, Month: 8, Year: 2025, PresentCount: 8, DeputationCount: 1},
		{StudentID: 1, SubjectID: 1, LecturerID: 2, Month: 9, Year: 2025, PresentCount: 20, DeputationCount: 2},
		{StudentID: 1, SubjectID: 1, LecturerID: 1, Month: 10, Year: 2024, PresentCount: 99}, // tahun lain
	}
	for i := range rows {
		if err := store.DB.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	present, deputation, err := store.SumPresentYear(nil, 1, 1, nil, 2025)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if present != 28 || deputation != 3 {
		t.Errorf("sums = %d/%d, want 28/3", present, deputation)
	}

	lid := 1
	present, deputation, _ = store.SumPresentYear(nil, 1, 1, &lid, 2025)
	if present != 8 || deputation != 1 {
		t.Errorf("lecturer-scoped sums = %d/%d, want 8/1", present, deputation)
	}
}

func TestPruneDailyPastDay(t *testing.T) {
	store := NewAttendanceStore(newTestDB(t))

	for day := 1; day <= 6; day++ {
		rec := model.AttendanceRecordModel{
			StudentID: 1, SubjectID: 1, LecturerID: 1,
			Date:   time.Date(2025, 9, day, 0, 0, 0, 0, time.UTC),
			Status: model.StatusPresent,
		}
		if err := store.DB.Create(&rec).Error; err != nil {
			t.Fatalf("seed day %d: %v", day, err)
		}
	}

	// delta bulan jadi 4 → hari ke-5 dan ke-6 dipangkas
	pruned, err := store.PruneDailyPastDay(nil, 1, 1, 9, 2025, 4)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if pruned != 2 {
		t.Errorf("pruned = %d, want 2", pruned)
	}

	// delta >= jumlah hari bulan → no-op
	pruned, err = store.PruneDailyPastDay(nil, 1, 1, 9, 2025, 31)
	if err != nil {
		t.Fatalf("prune noop: %v", err)
	}
	if pruned != 0 {
		t.Errorf("noop pruned = %d, want 0", pruned)
	}
}

func TestDeleteMonth_ReturnsCounts(t *testing.T) {
	store := NewAttendanceStore(newTestDB(t))

	rec := model.AttendanceRecordModel{
		StudentID: 1, SubjectID: 1, LecturerID: 1,
		Date:   time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
		Status: model.StatusAbsent,
	}
	if err := store.DB.Create(&rec).Error; err != nil {
		t.Fatalf("seed daily: %v", err)
	}
	sum := model.MonthlyAttendanceSummaryModel{
		SubjectID: 1, LecturerID: 1, Month: 9, Year: 2025, TotalClasses: 10,
	}
	if err := store.DB.Create(&sum).Error; err != nil {
		t.Fatalf("seed summary: %v", err)
	}

	found, err := store.CountMonth(nil, 9, 2025)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if found.DailyRecords != 1 || found.Summaries != 1 || found.StudentAttendance != 0 {
		t.Errorf("found = %+v, want 1/0/1", found)
	}

	deleted, err := store.DeleteMonth(nil, 9, 2025)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.DailyRecords != 1 || deleted.Summaries != 1 {
		t.Errorf("deleted = %+v, want daily 1 summaries 1", deleted)
	}
}
