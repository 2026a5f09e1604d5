// Package jobs provides scheduled background tasks for the order marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the marketplace needs.
//
// # Available Jobs
//
// 1. OrderExpiryJob - Runs every five minutes to expire open orders whose
// pickup window has closed and notify their owners
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(expireOrdersHandler, engine, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The expiry job uses "@every 5m". Pickup windows are hours long, so a five
// minute sweep granularity is plenty; each sweep runs in one database
// transaction and skips orders that got claimed between the candidate scan
// and the row lock.
//
// # Error Handling
//
// - Sweep failures are logged and retried on the next tick
// - Notification failures never roll back the expiry itself
// - Failed job starts will stop any already running jobs
package jobs
