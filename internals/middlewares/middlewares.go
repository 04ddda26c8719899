package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"njangitech_backend/internals/configs"
	accessLog "njangitech_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the global chain. Order matters: recovery wraps
// everything, the request context must exist before the access log reads it.
func SetupMiddlewares(app *fiber.App, cfg *configs.AppConfig) {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(timeout))
	app.Use(accessLog.LoggerMiddleware())
	app.Use(CorsMiddleware(cfg.CORSOrigins))
	app.Use(GlobalRateLimiter(300))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
}
