// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsRoute "moulya_backend/internals/features/college/academics/route"
	attendanceRoute "moulya_backend/internals/features/college/attendance/route"
	marksRoute "moulya_backend/internals/features/college/marks/route"
	userRoute "moulya_backend/internals/features/college/users/route"
	"moulya_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== AUTH (public + rate-limited) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authGroup := app.Group("/api/auth")
	userRoute.AuthRoutes(authGroup, db)

	// ===================== LECTURER =====================
	log.Println("[INFO] Setting up LECTURER group...")
	lecturer := app.Group("/api/lecturer",
		auth.AuthMiddleware(),
		auth.RequireRole(auth.RoleLecturer),
	)
	academicsRoute.LecturerAcademicsRoutes(lecturer, db)
	attendanceRoute.LecturerAttendanceRoutes(lecturer, db)
	marksRoute.LecturerMarksRoutes(lecturer, db)

	// ===================== MANAGEMENT =====================
	log.Println("[INFO] Setting up MANAGEMENT group...")
	management := app.Group("/api/management",
		auth.AuthMiddleware(),
		auth.RequireRole(auth.RoleManagement),
	)
	academicsRoute.ManagementAcademicsRoutes(management, db)
	attendanceRoute.ManagementReportRoutes(management, db)
	marksRoute.ManagementMarksRoutes(management, db)

	// ===================== UTILS =====================
	app.Get("/api/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"uptime": time.Since(startTime).String(),
		})
	})
}
