// file: internals/features/college/attendance/controller/management_report_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceService "moulya_backend/internals/features/college/attendance/service"
	helper "moulya_backend/internals/helpers"
)

// Laporan sisi management: lintas lecturer, lintas subject.
type ManagementReportController struct {
	DB         *gorm.DB
	Aggregator *attendanceService.AggregatorService
}

func NewManagementReportController(db *gorm.DB) *ManagementReportController {
	return &ManagementReportController{
		DB:         db,
		Aggregator: attendanceService.NewAggregatorService(db),
	}
}

// GET /api/management/reports/monthly/:subject_id?lecturer_id=&month=&year=
func (h *ManagementReportController) MonthlyBreakdown(c *fiber.Ctx) error {
	subjectID, err := helper.ParamInt(c, "subject_id")
	if err != nil {
		return err
	}
	lecturerID := helper.QueryInt(c, "lecturer_id", 0)
	month := helper.QueryInt(c, "month", 0)
	year := helper.QueryInt(c, "year", 0)
	if lecturerID <= 0 || month < 1 || month > 12 || year < 2000 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query lecturer_id/month/year tidak valid")
	}

	rows, err := h.Aggregator.MonthlyBreakdown(subjectID, lecturerID, month, year)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonList(c, "", rows, nil)
}

// GET /api/management/reports/cumulative/:subject_id?year=&lecturer_id=
// lecturer_id opsional: kosong → jumlahkan lintas pergantian pengajar.
func (h *ManagementReportController) CumulativeReport(c *fiber.Ctx) error {
	subjectID, err := helper.ParamInt(c, "subject_id")
	if err != nil {
		return err
	}
	year := helper.QueryInt(c, "year", 0)
	if year < 2000 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query year tidak valid")
	}
	var lecturerID *int
	if v := helper.QueryInt(c, "lecturer_id", 0); v > 0 {
		lecturerID = &v
	}

	rows, err := h.Aggregator.SubjectReport(subjectID, lecturerID, year)
	if err != nil {
		return serviceError(c, err)
	}
	total, err := h.Aggregator.CumulativeTotalClasses(subjectID, lecturerID, year)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{
		"subject_id":    subjectID,
		"year":          year,
		"total_classes": total,
		"students":      rows,
	})
}

// GET /api/management/reports/student/:student_id?subject_id=&year=&lecturer_id=
// Detail kumulatif setahun untuk satu siswa pada satu subject.
func (h *ManagementReportController) StudentDetail(c *fiber.Ctx) error {
	studentID, err := helper.ParamInt(c, "student_id")
	if err != nil {
		return err
	}
	subjectID := helper.QueryInt(c, "subject_id", 0)
	year := helper.QueryInt(c, "year", 0)
	if subjectID <= 0 || year < 2000 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query subject_id/year tidak valid")
	}
	var lecturerID *int
	if v := helper.QueryInt(c, "lecturer_id", 0); v > 0 {
		lecturerID = &v
	}

	cum, err := h.Aggregator.StudentCumulativeAttendance(studentID, subjectID, lecturerID, year)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{
		"subject_id":   subjectID,
		"year":         year,
		"attendance":   cum,
		"has_shortage": h.Aggregator.HasShortage(cum.Percentage),
	})
}

// GET /api/management/reports/shortage/:subject_id?year=&lecturer_id=
func (h *ManagementReportController) ShortageReport(c *fiber.Ctx) error {
	subjectID, err := helper.ParamInt(c, "subject_id")
	if err != nil {
		return err
	}
	year := helper.QueryInt(c, "year", 0)
	if year < 2000 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query year tidak valid")
	}
	var lecturerID *int
	if v := helper.QueryInt(c, "lecturer_id", 0); v > 0 {
		lecturerID = &v
	}

	rows, err := h.Aggregator.ShortageReport(subjectID, lecturerID, year)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{
		"subject_id": subjectID,
		"year":       year,
		"threshold":  h.Aggregator.ShortageThreshold,
		"students":   rows,
	})
}
