// file: internals/features/college/users/controller/auth_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userDTO "moulya_backend/internals/features/college/users/dto"
	userService "moulya_backend/internals/features/college/users/service"
	helper "moulya_backend/internals/helpers"
)

type AuthController struct {
	DB   *gorm.DB
	Auth *userService.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Auth: userService.NewAuthService(db)}
}

// POST /api/auth/login/management
func (h *AuthController) LoginManagement(c *fiber.Ctx) error {
	return h.login(c, h.Auth.LoginManagement)
}

// POST /api/auth/login/lecturer
func (h *AuthController) LoginLecturer(c *fiber.Ctx) error {
	return h.login(c, h.Auth.LoginLecturer)
}

func (h *AuthController) login(c *fiber.Ctx, fn func(username, password string) (userService.LoginResult, error)) error {
	var req userDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := fn(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, userService.ErrBadCredentials) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}

	return helper.JsonOK(c, "Login berhasil", userDTO.LoginResponse{
		AccessToken: res.Token,
		TokenType:   "Bearer",
		ExpiresIn:   res.ExpiresIn,
		Role:        res.Role,
		UserID:      res.UserID,
		Name:        res.Name,
	})
}
