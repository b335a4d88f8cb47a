// file: internals/features/college/users/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "moulya_backend/internals/features/college/users/controller"
	"moulya_backend/internals/middlewares"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := userController.NewAuthController(db)

	login := api.Group("/login", middlewares.LoginRateLimiter())
	login.Post("/management", ctrl.LoginManagement)
	login.Post("/lecturer", ctrl.LoginLecturer)
}
