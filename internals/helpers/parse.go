// file: internals/helpers/parse.go
package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ParamInt membaca path param sebagai int positif.
func ParamInt(c *fiber.Ctx, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(c.Params(name)))
	if err != nil || v <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Parameter "+name+" tidak valid")
	}
	return v, nil
}

// QueryInt membaca query param sebagai int; kosong → default.
func QueryInt(c *fiber.Ctx, name string, def int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
