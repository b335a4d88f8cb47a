// file: internals/features/college/marks/controller/marks_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	marksDTO "moulya_backend/internals/features/college/marks/dto"
	marksService "moulya_backend/internals/features/college/marks/service"
	helper "moulya_backend/internals/helpers"
	"moulya_backend/internals/middlewares/auth"
)

type LecturerMarksController struct {
	DB    *gorm.DB
	Marks *marksService.MarksService
}

func NewLecturerMarksController(db *gorm.DB) *LecturerMarksController {
	return &LecturerMarksController{
		DB:    db,
		Marks: marksService.NewMarksService(db),
	}
}

func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, marksService.ErrNotAuthorized):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, marksService.ErrInvalidInput):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses data nilai")
	}
}

// POST /api/lecturer/marks
func (h *LecturerMarksController) AddMarks(c *fiber.Ctx) error {
	lecturerID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req marksDTO.AddMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	entries := make([]marksService.MarkEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entry := marksService.MarkEntry{
			StudentID:      e.StudentID,
			AssessmentType: e.AssessmentType,
			MarksObtained:  e.MarksObtained,
			MaxMarks:       e.MaxMarks,
		}
		if e.AssessmentDate != "" {
			d, err := time.Parse("2006-01-02", e.AssessmentDate)
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "Format assessment_date harus YYYY-MM-DD")
			}
			entry.AssessmentDate = &d
		}
		entries = append(entries, entry)
	}

	result, err := h.Marks.AddMarks(req.SubjectID, lecturerID, entries)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonOK(c, "Nilai tersimpan", marksDTO.AddMarksResponse{
		SubjectID: req.SubjectID,
		Added:     result.Added,
		Updated:   result.Updated,
		Skipped:   result.Skipped,
	})
}

// GET /api/lecturer/marks/report/:subject_id
func (h *LecturerMarksController) SubjectReport(c *fiber.Ctx) error {
	lecturerID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	subjectID, err := helper.ParamInt(c, "subject_id")
	if err != nil {
		return err
	}

	rows, classAverage, err := h.Marks.SubjectReportForLecturer(subjectID, lecturerID)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{
		"subject_id":    subjectID,
		"class_average": classAverage,
		"threshold":     marksService.DeficiencyThreshold,
		"students":      rows,
	})
}

// Laporan nilai sisi management, tanpa cek penugasan.
type ManagementMarksController struct {
	DB    *gorm.DB
	Marks *marksService.MarksService
}

func NewManagementMarksController(db *gorm.DB) *ManagementMarksController {
	return &ManagementMarksController{
		DB:    db,
		Marks: marksService.NewMarksService(db),
	}
}

// GET /api/management/reports/marks/:subject_id
func (h *ManagementMarksController) SubjectReport(c *fiber.Ctx) error {
	subjectID, err := helper.ParamInt(c, "subject_id")
	if err != nil {
		return err
	}

	rows, classAverage, err := h.Marks.SubjectReport(subjectID)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{
		"subject_id":    subjectID,
		"class_average": classAverage,
		"threshold":     marksService.DeficiencyThreshold,
		"students":      rows,
	})
}
