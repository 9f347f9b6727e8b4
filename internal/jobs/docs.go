// Package jobs provides scheduled background tasks for the fulfillment
// coordinator.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. AutoApprovalJob - Promotes orders whose approval window elapsed without
// an admin decision. The sweep is idempotent: orders already decided are
// skipped, and a failure on one order never stops the rest of the batch.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(approveHandler, schedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The auto-approval schedule comes from configuration (AUTO_APPROVAL_CRON),
// a six-field cron expression with a seconds column, e.g. "0 * * * * *" for
// once a minute.
package jobs
