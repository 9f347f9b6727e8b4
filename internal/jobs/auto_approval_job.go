package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"fulfillment/internal/core/application/usecases/commands"
)

// AutoApprovalJob runs the auto-approval sweep on a schedule, promoting
// orders whose approval deadline passed without an admin decision.
type AutoApprovalJob struct {
	handler  commands.ApprovePendingOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAutoApprovalJob creates the sweep job. The schedule is a six-field cron
// expression with a seconds column.
func NewAutoApprovalJob(
	handler commands.ApprovePendingOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *AutoApprovalJob {
	return &AutoApprovalJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "auto_approval_job"),
	}
}

// Start begins running the sweep on the configured schedule.
func (j *AutoApprovalJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewApprovePendingOrdersCommand()

		approved, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "auto-approval sweep failed", "error", err)
			return
		}
		if approved > 0 {
			j.logger.InfoContext(ctx, "auto-approval sweep completed", "approved", approved)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "auto-approval job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep job.
func (j *AutoApprovalJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "auto-approval job stopped")
}
