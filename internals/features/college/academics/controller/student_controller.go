// file: internals/features/college/academics/controller/student_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsDTO "moulya_backend/internals/features/college/academics/dto"
	academicsModel "moulya_backend/internals/features/college/academics/model"
	attendanceRepo "moulya_backend/internals/features/college/attendance/repository"
	auditService "moulya_backend/internals/features/college/audit/service"
	helper "moulya_backend/internals/helpers"
)

type StudentController struct {
	DB    *gorm.DB
	Store *attendanceRepo.AttendanceStore
	Audit *auditService.AuditService
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{
		DB:    db,
		Store: attendanceRepo.NewAttendanceStore(db),
		Audit: auditService.NewAuditService(db),
	}
}

// POST /api/management/students
func (h *StudentController) CreateStudent(c *fiber.Ctx) error {
	var req academicsDTO.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(&m).Error; err != nil {
		if isDuplicateErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Roll number sudah digunakan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat student")
	}
	return helper.JsonCreated(c, "Student berhasil dibuat", m)
}

// GET /api/management/students?course_id=&academic_year=
func (h *StudentController) ListStudents(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	q := h.DB.Model(&academicsModel.StudentModel{})
	if courseID := helper.QueryInt(c, "course_id", 0); courseID > 0 {
		q = q.Where("course_id = ?", courseID)
	}
	if year := helper.QueryInt(c, "academic_year", 0); year > 0 {
		q = q.Where("academic_year = ?", year)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil student")
	}
	var students []academicsModel.StudentModel
	if err := q.Order("roll_number ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil student")
	}
	return helper.JsonList(c, "", students, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// PATCH /api/management/students/:id
func (h *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id, err := helper.ParamInt(c, "id")
	if err != nil {
		return err
	}
	var req academicsDTO.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.StudentName != nil {
		updates["student_name"] = strings.TrimSpace(*req.StudentName)
	}
	if req.RollNumber != nil {
		updates["roll_number"] = strings.ToUpper(strings.TrimSpace(*req.RollNumber))
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	res := h.DB.Model(&academicsModel.StudentModel{}).Where("student_id = ?", id).Updates(updates)
	if res.Error != nil {
		if isDuplicateErr(res.Error) {
			return helper.JsonError(c, fiber.StatusConflict, "Roll number sudah digunakan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah student")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Student tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Student berhasil diubah", fiber.Map{"student_id": id})
}

// DELETE /api/management/students/:id
// Hard delete + cascade semua record kehadiran siswa. Destruktif; di-audit.
func (h *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id, err := helper.ParamInt(c, "id")
	if err != nil {
		return err
	}

	var m academicsModel.StudentModel
	if err := h.DB.Take(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil student")
	}

	var daily, monthly int64
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		daily, monthly, err = h.Store.DeleteAllForStudent(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).
			Delete(&academicsModel.StudentEnrollmentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&academicsModel.StudentModel{}, id).Error; err != nil {
			return err
		}
		// audit dalam transaksi yang sama: delete tanpa jejak tidak boleh commit
		return h.Audit.Record(tx, auditService.ActionCascadeDelete, "management",
			[]string{"students", "student_enrollments", "attendance_records", "monthly_student_attendances"},
			fiber.Map{
				"student_id":     id,
				"roll_number":    m.RollNumber,
				"daily_deleted":  daily,
				"monthly_deleted": monthly,
			})
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus student")
	}

	return helper.JsonDeleted(c, "Student dan seluruh record kehadirannya dihapus", fiber.Map{
		"student_id":      id,
		"daily_deleted":   daily,
		"monthly_deleted": monthly,
	})
}
