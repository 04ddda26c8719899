package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"njangitech_backend/internals/configs"
	database "njangitech_backend/internals/databases"
	contributionRoute "njangitech_backend/internals/features/contributions/route"
	creditRoute "njangitech_backend/internals/features/credits/route"
	ledgerRoute "njangitech_backend/internals/features/ledger/route"
	memberRoute "njangitech_backend/internals/features/members/route"
	penaltyRoute "njangitech_backend/internals/features/penalties/route"
	projectRoute "njangitech_backend/internals/features/projects/route"
	reportRoute "njangitech_backend/internals/features/reports/route"
	sessionRoute "njangitech_backend/internals/features/sessions/route"
	tontineRoute "njangitech_backend/internals/features/tontines/route"
	tourRoute "njangitech_backend/internals/features/tours/route"
	"njangitech_backend/internals/helpers/logger"
	"njangitech_backend/internals/middlewares/auth"
)

var startTime time.Time

func BaseRoutes(app *fiber.App, db *gorm.DB, cfg *configs.AppConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("njangitech api")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		dbStatus := "connected"
		status := "ok"
		code := fiber.StatusOK
		if err := database.Ping(ctx, db); err != nil {
			dbStatus = "unreachable"
			status = "down"
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":         status,
			"database":       dbStatus,
			"server_time":    time.Now().UTC().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    cfg.Environment,
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// SetupRoutes mounts the public probes and the authenticated /api/a group.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.AppConfig) {
	startTime = time.Now()

	BaseRoutes(app, db, cfg)

	admin := app.Group("/api/a",
		auth.AuthJWT(auth.AuthJWTOpts{
			Secret:              cfg.JWTSecret,
			Disabled:            cfg.AuthDisabled,
			AllowCookieFallback: true,
		}),
	)

	logger.Info("mounting admin routes")
	memberRoute.MemberAdminRoutes(admin, db)
	tontineRoute.TontineAdminRoutes(admin, db)
	sessionRoute.SessionAdminRoutes(admin, db, cfg.Rules)
	contributionRoute.ContributionAdminRoutes(admin, db)
	creditRoute.CreditAdminRoutes(admin, db, cfg.Rules)
	penaltyRoute.PenaltyAdminRoutes(admin, db)
	tourRoute.TourAdminRoutes(admin, db)
	projectRoute.ProjectAdminRoutes(admin, db)
	ledgerRoute.LedgerAdminRoutes(admin, db)
	reportRoute.ReportAdminRoutes(admin, db, cfg.Rules)
}
