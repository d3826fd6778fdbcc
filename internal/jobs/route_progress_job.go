package jobs

import (
	"context"
	"log/slog"

	"lastmile/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RouteProgressJob periodically recounts stop totals on active routes so
// dashboard counters stay close to the orders table even when individual
// submissions raced.
type RouteProgressJob struct {
	handler commands.RecountRouteProgressCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRouteProgressJob creates a job that recounts route progress once a
// minute.
func NewRouteProgressJob(handler commands.RecountRouteProgressCommandHandler, logger *slog.Logger) *RouteProgressJob {
	return &RouteProgressJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "route_progress_job"),
	}
}

// Start schedules the recount to run every minute.
func (j *RouteProgressJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewRecountRouteProgressCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Route progress recount failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Route progress job started (running every minute)")
	return nil
}

// Stop stops the recount job.
func (j *RouteProgressJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Route progress job stopped")
}
