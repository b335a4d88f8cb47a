// file: internals/features/college/academics/controller/lecturer_portal_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsService "moulya_backend/internals/features/college/academics/service"
	helper "moulya_backend/internals/helpers"
	"moulya_backend/internals/middlewares/auth"
)

// Portal lecturer: hanya baca, scoped ke lecturer yang login.
type LecturerPortalController struct {
	DB          *gorm.DB
	Assignments *academicsService.AssignmentService
	Enrollments *academicsService.EnrollmentService
}

func NewLecturerPortalController(db *gorm.DB) *LecturerPortalController {
	return &LecturerPortalController{
		DB:          db,
		Assignments: academicsService.NewAssignmentService(db),
		Enrollments: academicsService.NewEnrollmentService(db),
	}
}

// GET /api/lecturer/subjects
func (h *LecturerPortalController) MySubjects(c *fiber.Ctx) error {
	lecturerID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	subjects, err := h.Assignments.AssignedSubjects(lecturerID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subject")
	}
	return helper.JsonList(c, "", subjects, nil)
}

// GET /api/lecturer/subjects/:subject_id/students
func (h *LecturerPortalController) SubjectStudents(c *fiber.Ctx) error {
	lecturerID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	subjectID, err := helper.ParamInt(c, "subject_id")
	if err != nil {
		return err
	}

	assigned, err := h.Assignments.IsActivelyAssigned(nil, lecturerID, subjectID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek penugasan")
	}
	if !assigned {
		return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak ditugaskan ke subject ini")
	}

	students, err := h.Enrollments.ActiveStudents(nil, subjectID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil student")
	}
	return helper.JsonList(c, "", students, nil)
}
