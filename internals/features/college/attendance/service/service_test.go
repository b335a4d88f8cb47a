package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	academicsModel "moulya_backend/internals/features/college/academics/model"
	attendanceModel "moulya_backend/internals/features/college/attendance/model"
)

// newTestDB: DB in-memory terisolasi per test. Tabel audit sengaja tidak
// di-migrate; jalur audit best-effort harus tetap lolos tanpa tabelnya.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&academicsModel.CourseModel{},
		&academicsModel.SubjectModel{},
		&academicsModel.LecturerModel{},
		&academicsModel.StudentModel{},
		&academicsModel.StudentEnrollmentModel{},
		&academicsModel.SubjectAssignmentModel{},
		&attendanceModel.AttendanceRecordModel{},
		&attendanceModel.MonthlyAttendanceSummaryModel{},
		&attendanceModel.MonthlyStudentAttendanceModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedAssignment(t *testing.T, db *gorm.DB, lecturerID, subjectID int) {
	t.Helper()
	a := academicsModel.SubjectAssignmentModel{
		LecturerID:   lecturerID,
		SubjectID:    subjectID,
		AcademicYear: 2025,
		IsActive:     true,
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
}

func seedStudent(t *testing.T, db *gorm.DB, studentID int, roll, name string, subjectID int) {
	t.Helper()
	s := academicsModel.StudentModel{
		StudentID:    studentID,
		StudentName:  name,
		RollNumber:   roll,
		CourseID:     1,
		AcademicYear: 2025,
		IsActive:     true,
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	e := academicsModel.StudentEnrollmentModel{
		StudentID:    studentID,
		SubjectID:    subjectID,
		AcademicYear: 2025,
		IsActive:     true,
	}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
}
