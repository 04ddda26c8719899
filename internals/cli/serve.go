package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	database "njangitech_backend/internals/databases"
	balanceService "njangitech_backend/internals/features/balance/service"
	creditService "njangitech_backend/internals/features/credits/service"
	"njangitech_backend/internals/helpers/logger"
	"njangitech_backend/internals/middlewares"
	routes "njangitech_backend/internals/route"
	"njangitech_backend/internals/scheduler"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("migrate", false, "Run auto migration before serving")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close(db)

	if m, _ := cmd.Flags().GetBool("migrate"); m {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
	}
	database.TunePool(db)
	database.WarmUpQueries(db)

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})
	middlewares.SetupMiddlewares(app, cfg)
	routes.SetupRoutes(app, db, cfg)

	credits := creditService.New(db, balanceService.New(db), cfg.Rules)
	job, err := scheduler.StartOverdueRefresh(cfg.OverdueRefreshCron, scheduler.RefreshFunc(func(ctx context.Context) (int, error) {
		res, err := credits.RefreshOverdueStatuses(ctx)
		if err != nil {
			return 0, err
		}
		return res.Updated, nil
	}), time.Minute)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		scheduler.Stop(job)
		return err
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	scheduler.Stop(job)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.ShutdownWithContext(ctx)
}
