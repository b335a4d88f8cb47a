package database

import (
	"log"
	"os"

	academicsModel "moulya_backend/internals/features/college/academics/model"
	attendanceModel "moulya_backend/internals/features/college/attendance/model"
	auditModel "moulya_backend/internals/features/college/audit/model"
	marksModel "moulya_backend/internals/features/college/marks/model"
	userModel "moulya_backend/internals/features/college/users/model"
)

// Migrate menjalankan AutoMigrate untuk semua tabel. Di-skip bila
// DB_AUTOMIGRATE=false (produksi yang skemanya dikelola terpisah).
func Migrate() {
	if os.Getenv("DB_AUTOMIGRATE") == "false" {
		log.Println("⏭️ AutoMigrate dilewati (DB_AUTOMIGRATE=false)")
		return
	}

	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&academicsModel.CourseModel{},
		&academicsModel.SubjectModel{},
		&academicsModel.LecturerModel{},
		&academicsModel.StudentModel{},
		&academicsModel.StudentEnrollmentModel{},
		&academicsModel.SubjectAssignmentModel{},
		&attendanceModel.AttendanceRecordModel{},
		&attendanceModel.MonthlyAttendanceSummaryModel{},
		&attendanceModel.MonthlyStudentAttendanceModel{},
		&marksModel.StudentMarksModel{},
		&auditModel.AuditLogModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	log.Println("✅ AutoMigrate selesai.")
}
