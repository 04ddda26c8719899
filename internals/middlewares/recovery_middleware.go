package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"njangitech_backend/internals/helpers/logger"
)

// RecoveryMiddleware turns a panic into a 500 and logs it.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.ErrorCtx(c.UserContext(), "panic recovered",
				zap.String("panic", fmt.Sprint(e)),
				zap.String("path", c.Path()),
			)
		},
	})
}
