// file: internals/features/college/attendance/controller/lecturer_attendance_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceDTO "moulya_backend/internals/features/college/attendance/dto"
	attendanceService "moulya_backend/internals/features/college/attendance/service"
	helper "moulya_backend/internals/helpers"
	"moulya_backend/internals/middlewares/auth"
)

type LecturerAttendanceController struct {
	DB         *gorm.DB
	Reconciler *attendanceService.ReconcilerService
	Aggregator *attendanceService.AggregatorService
}

func NewLecturerAttendanceController(db *gorm.DB) *LecturerAttendanceController {
	return &LecturerAttendanceController{
		DB:         db,
		Reconciler: attendanceService.NewReconcilerService(db),
		Aggregator: attendanceService.NewAggregatorService(db),
	}
}

func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, attendanceService.ErrNotAuthorized):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, attendanceService.ErrInvalidInput):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses data kehadiran")
	}
}

// POST /api/lecturer/attendance/monthly
func (h *LecturerAttendanceController) SubmitMonthly(c *fiber.Ctx) error {
	lecturerID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req attendanceDTO.SubmitMonthlyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	sub := attendanceService.MonthlySubmission{
		SubjectID:                req.SubjectID,
		LecturerID:               lecturerID,
		Month:                    req.Month,
		Year:                     req.Year,
		TotalClassesCumulative:   req.TotalClasses,
		StudentCumulativePresent: req.StudentAttendance,
	}
	if err := h.Reconciler.SubmitMonthly(sub); err != nil {
		return serviceError(c, err)
	}

	// delta tersimpan diambil ulang supaya response mencerminkan state final
	summary, err := h.Reconciler.Store.GetSummary(nil, req.SubjectID, lecturerID, req.Month, req.Year)
	if err != nil || summary == nil {
		return helper.JsonOK(c, "Kehadiran bulanan tersimpan", nil)
	}
	return helper.JsonOK(c, "Kehadiran bulanan tersimpan", attendanceDTO.SubmitMonthlyResponse{
		SubjectID:    req.SubjectID,
		Month:        req.Month,
		Year:         req.Year,
		MonthClasses: summary.TotalClasses,
		Students:     summary.TotalStudents,
	})
}

// POST /api/lecturer/attendance/daily
func (h *LecturerAttendanceController) RecordDaily(c *fiber.Ctx) error {
	lecturerID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req attendanceDTO.RecordDailyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	day := time.Now().UTC()
	if req.Date != "" {
		day, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format date harus YYYY-MM-DD")
		}
	}

	if err := h.Reconciler.RecordDaily(req.SubjectID, lecturerID, day, req.Statuses); err != nil {
		return serviceError(c, err)
	}
	return helper.JsonOK(c, "Kehadiran harian tersimpan", fiber.Map{
		"subject_id": req.SubjectID,
		"date":       day.Format("2006-01-02"),
		"students":   len(req.Statuses),
	})
}

// POST /api/lecturer/attendance/deputation
func (h *LecturerAttendanceController) RecordDeputation(c *fiber.Ctx) error {
	lecturerID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req attendanceDTO.RecordDeputationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := h.Reconciler.RecordDeputation(req.SubjectID, lecturerID, req.Year, req.Month, req.DeputationCounts); err != nil {
		return serviceError(c, err)
	}
	return helper.JsonOK(c, "Deputation tersimpan", fiber.Map{
		"subject_id": req.SubjectID,
		"students":   len(req.DeputationCounts),
	})
}

// GET /api/lecturer/attendance/hints/:subject_id?month=&year=
// Bantuan form: prior kumulatif supaya UI bisa menampilkan batas minimum.
func (h *LecturerAttendanceController) PriorHints(c *fiber.Ctx) error {
	lecturerID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	subjectID, err := helper.ParamInt(c, "subject_id")
	if err != nil {
		return err
	}
	month := helper.QueryInt(c, "month", 0)
	year := helper.QueryInt(c, "year", 0)
	if month < 1 || month > 12 || year < 2000 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query month/year tidak valid")
	}

	hints, err := h.Aggregator.PriorCumulativeHints(subjectID, lecturerID, month, year)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonOK(c, "", attendanceDTO.PriorHintsResponse{
		SubjectID:         subjectID,
		Month:             month,
		Year:              year,
		PriorTotalClasses: hints.PriorTotalClasses,
		PriorPresent:      hints.PriorPresent,
	})
}

// GET /api/lecturer/attendance/report/:subject_id?year=
// Laporan kumulatif subject untuk lecturer ybs saja.
func (h *LecturerAttendanceController) SubjectReport(c *fiber.Ctx) error {
	lecturerID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	subjectID, err := helper.ParamInt(c, "subject_id")
	if err != nil {
		return err
	}
	year := helper.QueryInt(c, "year", 0)
	if year < 2000 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query year tidak valid")
	}

	rows, err := h.Aggregator.SubjectReport(subjectID, &lecturerID, year)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonList(c, "", rows, nil)
}
