// file: internals/features/college/academics/controller/enrollment_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsDTO "moulya_backend/internals/features/college/academics/dto"
	academicsService "moulya_backend/internals/features/college/academics/service"
	helper "moulya_backend/internals/helpers"
)

// EnrollmentController: enrollment siswa + penugasan lecturer (sisi management).
type EnrollmentController struct {
	DB          *gorm.DB
	Enrollments *academicsService.EnrollmentService
	Assignments *academicsService.AssignmentService
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{
		DB:          db,
		Enrollments: academicsService.NewEnrollmentService(db),
		Assignments: academicsService.NewAssignmentService(db),
	}
}

// POST /api/management/enrollments
func (h *EnrollmentController) EnrollStudents(c *fiber.Ctx) error {
	var req academicsDTO.EnrollStudentsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	enrolled, err := h.Enrollments.EnrollStudents(req.SubjectID, req.StudentIDs, req.AcademicYear)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal enroll student")
	}
	return helper.JsonOK(c, "Enrollment tersimpan", fiber.Map{
		"subject_id": req.SubjectID,
		"enrolled":   enrolled,
		"requested":  len(req.StudentIDs),
	})
}

// DELETE /api/management/enrollments
func (h *EnrollmentController) UnenrollStudents(c *fiber.Ctx) error {
	var req academicsDTO.UnenrollStudentsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	removed, err := h.Enrollments.UnenrollStudents(req.SubjectID, req.StudentIDs)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal unenroll student")
	}
	return helper.JsonOK(c, "Enrollment dinonaktifkan", fiber.Map{
		"subject_id": req.SubjectID,
		"removed":    removed,
	})
}

// GET /api/management/enrollments/:subject_id
func (h *EnrollmentController) ListEnrolled(c *fiber.Ctx) error {
	subjectID, err := helper.ParamInt(c, "subject_id")
	if err != nil {
		return err
	}
	students, err := h.Enrollments.ActiveStudents(nil, subjectID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil enrollment")
	}
	return helper.JsonList(c, "", students, nil)
}

// POST /api/management/assignments
func (h *EnrollmentController) AssignLecturer(c *fiber.Ctx) error {
	var req academicsDTO.AssignLecturerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := h.Assignments.AssignLecturer(req.LecturerID, req.SubjectID, req.AcademicYear); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menugaskan lecturer")
	}
	return helper.JsonOK(c, "Lecturer ditugaskan", fiber.Map{
		"lecturer_id": req.LecturerID,
		"subject_id":  req.SubjectID,
	})
}

// DELETE /api/management/assignments
func (h *EnrollmentController) UnassignLecturer(c *fiber.Ctx) error {
	var req academicsDTO.AssignLecturerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	removed, err := h.Assignments.UnassignLecturer(req.LecturerID, req.SubjectID, req.AcademicYear)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencabut penugasan")
	}
	if !removed {
		return helper.JsonError(c, fiber.StatusNotFound, "Penugasan aktif tidak ditemukan")
	}
	return helper.JsonOK(c, "Penugasan dicabut", fiber.Map{
		"lecturer_id": req.LecturerID,
		"subject_id":  req.SubjectID,
	})
}
