// file: internals/features/college/marks/route/marks_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	marksController "moulya_backend/internals/features/college/marks/controller"
)

// LecturerMarksRoutes dipasang di group yang sudah ber-auth role lecturer.
func LecturerMarksRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := marksController.NewLecturerMarksController(db)

	marks := api.Group("/marks")
	marks.Post("/", ctrl.AddMarks)
	marks.Get("/report/:subject_id", ctrl.SubjectReport)
}

// ManagementMarksRoutes dipasang di group management.
func ManagementMarksRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := marksController.NewManagementMarksController(db)

	reports := api.Group("/reports")
	reports.Get("/marks/:subject_id", ctrl.SubjectReport)
}
