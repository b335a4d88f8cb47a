// file: internals/features/college/academics/controller/subject_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsDTO "moulya_backend/internals/features/college/academics/dto"
	academicsModel "moulya_backend/internals/features/college/academics/model"
	helper "moulya_backend/internals/helpers"
)

type SubjectController struct {
	DB *gorm.DB
}

func NewSubjectController(db *gorm.DB) *SubjectController { return &SubjectController{DB: db} }

// POST /api/management/subjects
func (h *SubjectController) CreateSubject(c *fiber.Ctx) error {
	var req academicsDTO.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var courseCnt int64
		if err := tx.Model(&academicsModel.CourseModel{}).
			Where("course_id = ?", req.CourseID).
			Count(&courseCnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek course")
		}
		if courseCnt == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Course tidak ditemukan")
		}

		// kode unik per course selama masih aktif; subject nonaktif boleh
		// memakai kode yang sama (dicek di sini, bukan constraint DB)
		var cnt int64
		if err := tx.Model(&academicsModel.SubjectModel{}).
			Where("course_id = ? AND lower(subject_code) = lower(?) AND is_active = ?",
				req.CourseID, strings.TrimSpace(req.SubjectCode), true).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek duplikasi kode")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Kode subject sudah digunakan di course ini")
		}

		m := req.ToModel()
		if err := tx.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat subject")
		}
		c.Locals("created_subject", m)
		return nil
	}); err != nil {
		return err
	}

	m := c.Locals("created_subject").(academicsModel.SubjectModel)
	return helper.JsonCreated(c, "Subject berhasil dibuat", m)
}

// GET /api/management/subjects?course_id=&active=
func (h *SubjectController) ListSubjects(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&academicsModel.SubjectModel{})
	if courseID := helper.QueryInt(c, "course_id", 0); courseID > 0 {
		q = q.Where("course_id = ?", courseID)
	}
	if active := strings.TrimSpace(c.Query("active")); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subject")
	}
	var subjects []academicsModel.SubjectModel
	if err := q.Order("subject_code ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&subjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subject")
	}
	return helper.JsonList(c, "", subjects, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/management/subjects/:id
func (h *SubjectController) GetSubject(c *fiber.Ctx) error {
	id, err := helper.ParamInt(c, "id")
	if err != nil {
		return err
	}
	var m academicsModel.SubjectModel
	if err := h.DB.Take(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subject")
	}
	return helper.JsonOK(c, "", m)
}

// PATCH /api/management/subjects/:id
func (h *SubjectController) UpdateSubject(c *fiber.Ctx) error {
	id, err := helper.ParamInt(c, "id")
	if err != nil {
		return err
	}
	var req academicsDTO.UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.SubjectName != nil {
		updates["subject_name"] = strings.TrimSpace(*req.SubjectName)
	}
	if req.SubjectCode != nil {
		updates["subject_code"] = strings.ToUpper(strings.TrimSpace(*req.SubjectCode))
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Semester != nil {
		updates["semester"] = *req.Semester
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	res := h.DB.Model(&academicsModel.SubjectModel{}).Where("subject_id = ?", id).Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah subject")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Subject tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Subject berhasil diubah", fiber.Map{"subject_id": id})
}
