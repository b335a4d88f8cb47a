// file: internals/features/college/academics/controller/course_controller.go
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

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController { return &CourseController{DB: db} }

// POST /api/management/courses
func (h *CourseController) CreateCourse(c *fiber.Ctx) error {
	var req academicsDTO.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(&m).Error; err != nil {
		if isDuplicateErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Kode course sudah digunakan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat course")
	}
	return helper.JsonCreated(c, "Course berhasil dibuat", m)
}

// GET /api/management/courses
func (h *CourseController) ListCourses(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := h.DB.Model(&academicsModel.CourseModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil course")
	}
	var courses []academicsModel.CourseModel
	if err := h.DB.Order("course_code ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil course")
	}
	return helper.JsonList(c, "", courses, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/management/courses/:id
func (h *CourseController) GetCourse(c *fiber.Ctx) error {
	id, err := helper.ParamInt(c, "id")
	if err != nil {
		return err
	}
	var m academicsModel.CourseModel
	if err := h.DB.Take(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil course")
	}
	return helper.JsonOK(c, "", m)
}

// PATCH /api/management/courses/:id
func (h *CourseController) UpdateCourse(c *fiber.Ctx) error {
	id, err := helper.ParamInt(c, "id")
	if err != nil {
		return err
	}
	var req academicsDTO.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.CourseName != nil {
		updates["course_name"] = strings.TrimSpace(*req.CourseName)
	}
	if req.CourseCode != nil {
		updates["course_code"] = strings.ToUpper(strings.TrimSpace(*req.CourseCode))
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	res := h.DB.Model(&academicsModel.CourseModel{}).Where("course_id = ?", id).Updates(updates)
	if res.Error != nil {
		if isDuplicateErr(res.Error) {
			return helper.JsonError(c, fiber.StatusConflict, "Kode course sudah digunakan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah course")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Course berhasil diubah", fiber.Map{"course_id": id})
}

func isDuplicateErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
