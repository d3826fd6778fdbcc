package jobs

import (
	"fmt"
	"log/slog"

	"lastmile/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	routeProgressJob *RouteProgressJob
}

// NewJobManager creates a job manager with all required jobs wired to
// their command handlers.
func NewJobManager(
	recountHandler commands.RecountRouteProgressCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		routeProgressJob: NewRouteProgressJob(recountHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.routeProgressJob.Start(); err != nil {
		return fmt.Errorf("failed to start route progress job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.routeProgressJob.Stop()
}
