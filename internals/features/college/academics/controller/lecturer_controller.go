// file: internals/features/college/academics/controller/lecturer_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	academicsDTO "moulya_backend/internals/features/college/academics/dto"
	academicsModel "moulya_backend/internals/features/college/academics/model"
	attendanceRepo "moulya_backend/internals/features/college/attendance/repository"
	auditService "moulya_backend/internals/features/college/audit/service"
	helper "moulya_backend/internals/helpers"
)

type LecturerController struct {
	DB    *gorm.DB
	Store *attendanceRepo.AttendanceStore
	Audit *auditService.AuditService
}

func NewLecturerController(db *gorm.DB) *LecturerController {
	return &LecturerController{
		DB:    db,
		Store: attendanceRepo.NewAttendanceStore(db),
		Audit: auditService.NewAuditService(db),
	}
}

// POST /api/management/lecturers
func (h *LecturerController) CreateLecturer(c *fiber.Ctx) error {
	var req academicsDTO.CreateLecturerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	m := academicsModel.LecturerModel{
		LecturerName: strings.TrimSpace(req.LecturerName),
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		if isDuplicateErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Username sudah digunakan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat lecturer")
	}
	return helper.JsonCreated(c, "Lecturer berhasil dibuat", m)
}

// GET /api/management/lecturers
func (h *LecturerController) ListLecturers(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := h.DB.Model(&academicsModel.LecturerModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil lecturer")
	}
	var lecturers []academicsModel.LecturerModel
	if err := h.DB.Order("lecturer_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&lecturers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil lecturer")
	}
	return helper.JsonList(c, "", lecturers, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/management/lecturers/:id
func (h *LecturerController) GetLecturer(c *fiber.Ctx) error {
	id, err := helper.ParamInt(c, "id")
	if err != nil {
		return err
	}
	var m academicsModel.LecturerModel
	if err := h.DB.Take(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lecturer tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil lecturer")
	}
	return helper.JsonOK(c, "", m)
}

// PATCH /api/management/lecturers/:id
func (h *LecturerController) UpdateLecturer(c *fiber.Ctx) error {
	id, err := helper.ParamInt(c, "id")
	if err != nil {
		return err
	}
	var req academicsDTO.UpdateLecturerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.LecturerName != nil {
		updates["lecturer_name"] = strings.TrimSpace(*req.LecturerName)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
		}
		updates["password_hash"] = string(hash)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	res := h.DB.Model(&academicsModel.LecturerModel{}).Where("lecturer_id = ?", id).Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah lecturer")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Lecturer tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Lecturer berhasil diubah", fiber.Map{"lecturer_id": id})
}

// DELETE /api/management/lecturers/:id
// Hard delete + cascade semua record kehadiran yang ditulis lecturer tsb.
// Destruktif; di-audit. Untuk pergantian pengajar biasa pakai is_active=false.
func (h *LecturerController) DeleteLecturer(c *fiber.Ctx) error {
	id, err := helper.ParamInt(c, "id")
	if err != nil {
		return err
	}

	var m academicsModel.LecturerModel
	if err := h.DB.Take(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lecturer tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil lecturer")
	}

	var daily, monthly, summaries int64
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		daily, monthly, summaries, err = h.Store.DeleteAllForLecturer(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("lecturer_id = ?", id).
			Delete(&academicsModel.SubjectAssignmentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&academicsModel.LecturerModel{}, id).Error; err != nil {
			return err
		}
		return h.Audit.Record(tx, auditService.ActionCascadeDelete, "management",
			[]string{"lecturers", "subject_assignments", "attendance_records",
				"monthly_student_attendances", "monthly_attendance_summaries"},
			fiber.Map{
				"lecturer_id":       id,
				"username":          m.Username,
				"daily_deleted":     daily,
				"monthly_deleted":   monthly,
				"summaries_deleted": summaries,
			})
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus lecturer")
	}

	return helper.JsonDeleted(c, "Lecturer dan seluruh record kehadirannya dihapus", fiber.Map{
		"lecturer_id":       id,
		"daily_deleted":     daily,
		"monthly_deleted":   monthly,
		"summaries_deleted": summaries,
	})
}
