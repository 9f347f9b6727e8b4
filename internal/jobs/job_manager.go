package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	autoApprovalJob *AutoApprovalJob
}

// NewJobManager creates a job manager with all required jobs wired to their
// command handlers.
func NewJobManager(
	approveHandler commands.ApprovePendingOrdersCommandHandler,
	autoApprovalSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		autoApprovalJob: NewAutoApprovalJob(approveHandler, autoApprovalSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.autoApprovalJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-approval job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.autoApprovalJob.Stop()
}
