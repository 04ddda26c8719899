package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// OrderBy reads ?sort_by= and ?order= and returns a safe ORDER BY
// expression. Only keys present in allowed are honoured.
func OrderBy(c *fiber.Ctx, allowed map[string]string, defaultKey, defaultOrder string) string {
	key := strings.TrimSpace(c.Query("sort_by"))
	col, ok := allowed[key]
	if !ok {
		col = allowed[defaultKey]
	}

	order := strings.ToLower(strings.TrimSpace(c.Query("order", defaultOrder)))
	if order != "asc" && order != "desc" {
		order = strings.ToLower(defaultOrder)
	}
	if order != "asc" {
		order = "desc"
	}
	return col + " " + strings.ToUpper(order)
}
