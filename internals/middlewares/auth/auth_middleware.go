// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"moulya_backend/internals/configs"
)

const (
	RoleManagement = "management"
	RoleLecturer   = "lecturer"
)

// AuthMiddleware memverifikasi Bearer JWT dan menyimpan user_id + role di Locals.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
			}
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// Validasi exp
		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().After(time.Unix(int64(exp), 0)) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
			}
		}

		userID, ok := claims["sub"].(float64)
		if !ok || userID <= 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid subject")
		}
		role, _ := claims["role"].(string)

		c.Locals("user_id", int(userID))
		c.Locals("role", role)
		return c.Next()
	}
}

// RequireRole menolak request yang role-nya tidak cocok (dipasang setelah AuthMiddleware).
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if got, _ := c.Locals("role").(string); got != role {
			return fiber.NewError(fiber.StatusForbidden, "Akses ditolak untuk role ini")
		}
		return c.Next()
	}
}

// UserID mengambil user id hasil AuthMiddleware.
func UserID(c *fiber.Ctx) (int, error) {
	id, ok := c.Locals("user_id").(int)
	if !ok || id <= 0 {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return parts[1], nil
		}
		return "", fiber.NewError(fiber.StatusUnauthorized, "Format Authorization tidak valid")
	}
	// fallback cookie
	if tok := c.Cookies("access_token"); tok != "" {
		return tok, nil
	}
	return "", fiber.NewError(fiber.StatusUnauthorized, "Token tidak ditemukan")
}
