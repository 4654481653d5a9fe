// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// ReturnCompletionJob - completes refunded returns whose grace period has elapsed.
//
// # Usage
//
//	job := jobs.NewReturnCompletionJob(&autoCompleteHandler, cfg.ReturnCompletionSchedule, metrics, logger)
//	jobManager := jobs.NewJobManager(job)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and counted; the next tick processes the same backlog again.
// Failed job starts stop any already running jobs.
package jobs
