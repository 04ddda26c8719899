package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"njangitech_backend/internals/helpers/logger"
)

// OverdueRefresher is satisfied by the credits service.
type OverdueRefresher interface {
	RefreshOverdue(ctx context.Context) (int, error)
}

// RefreshFunc adapts a plain function to OverdueRefresher.
type RefreshFunc func(ctx context.Context) (int, error)

func (f RefreshFunc) RefreshOverdue(ctx context.Context) (int, error) { return f(ctx) }

// StartOverdueRefresh runs the overdue refresh on schedule. An empty schedule
// disables it and returns a nil cron.
func StartOverdueRefresh(schedule string, r OverdueRefresher, timeout time.Duration) (*cron.Cron, error) {
	if schedule == "" {
		logger.Info("overdue refresh scheduler disabled")
		return nil, nil
	}
	if timeout <= 0 {
		timeout = time.Minute
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(schedule, func() { runOnce(r, timeout) }); err != nil {
		return nil, fmt.Errorf("overdue refresh schedule %q: %w", schedule, err)
	}
	c.Start()
	logger.Info("overdue refresh scheduler started", zap.String("schedule", schedule))
	return c, nil
}

func runOnce(r OverdueRefresher, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	n, err := r.RefreshOverdue(ctx)
	if err != nil {
		logger.Error("overdue refresh failed", zap.Error(err))
		return
	}
	logger.Info("overdue refresh done", zap.Int("updated", n), zap.Duration("took", time.Since(start)))
}

// Stop waits for a running job to finish.
func Stop(c *cron.Cron) {
	if c == nil {
		return
	}
	<-c.Stop().Done()
}
