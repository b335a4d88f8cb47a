// file: internals/features/college/attendance/route/attendance_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "moulya_backend/internals/features/college/attendance/controller"
)

// LecturerAttendanceRoutes dipasang di group yang sudah ber-auth role lecturer.
func LecturerAttendanceRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := attendanceController.NewLecturerAttendanceController(db)

	attendance := api.Group("/attendance")
	attendance.Post("/monthly", ctrl.SubmitMonthly)
	attendance.Post("/daily", ctrl.RecordDaily)
	attendance.Post("/deputation", ctrl.RecordDeputation)
	attendance.Get("/hints/:subject_id", ctrl.PriorHints)
	attendance.Get("/report/:subject_id", ctrl.SubjectReport)
}

// ManagementReportRoutes dipasang di group management.
func ManagementReportRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := attendanceController.NewManagementReportController(db)

	reports := api.Group("/reports")
	reports.Get("/monthly/:subject_id", ctrl.MonthlyBreakdown)
	reports.Get("/cumulative/:subject_id", ctrl.CumulativeReport)
	reports.Get("/shortage/:subject_id", ctrl.ShortageReport)
	reports.Get("/student/:student_id", ctrl.StudentDetail)
}
