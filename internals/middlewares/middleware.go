package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupMiddlewares memasang middleware global (urutan penting).
// Recover dipasang paling awal supaya panic dari handler mana pun
// jadi 500, bukan mematikan server.
func SetupMiddlewares(app *fiber.App) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
