package logger

import (
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

var quietPaths = map[string]bool{"/health": true, "/metrics": true}

// LoggerMiddleware writes one access line per request, tagged with the
// request id. Probe endpoints are not logged.
func LoggerMiddleware() fiber.Handler {
	return AccessLog(os.Stdout)
}

func AccessLog(out io.Writer) fiber.Handler {
	return logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return quietPaths[c.Path()]
		},
		Output:     out,
		TimeFormat: "2006-01-02T15:04:05Z07:00",
		TimeZone:   "UTC",
		Format:     "${time} rid=${locals:request_id} ${ip} ${method} ${path} status=${status} latency=${latency}\n",
	})
}
