// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order and delivery
// lifecycle.
//
// # Available Jobs
//
// 1. ReconciliationJob - Runs every minute to converge order/delivery pairs
// whose statuses drifted apart after a failed propagation
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Reconciliation runs are best-effort: a pair that cannot be repaired is
// skipped and retried on the next run
// - Failed job starts will stop any already running jobs
package jobs
