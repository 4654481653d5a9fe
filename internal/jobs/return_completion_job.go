package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/returns"

	"github.com/robfig/cron/v3"
)

// DefaultReturnCompletionSchedule runs the job at the top of every minute.
const DefaultReturnCompletionSchedule = "0 * * * * *"

const returnCompletionJobName = "return_completion"

// autoCompleter is the use case the job drives.
type autoCompleter interface {
	Handle(ctx context.Context, cmd commands.AutoCompleteReturnsCommand) ([]*returns.ReturnRequest, error)
}

// JobMetrics counts job runs by outcome.
type JobMetrics interface {
	JobRun(job string, err error)
}

// ReturnCompletionJob closes refunded returns once their grace period is over.
type ReturnCompletionJob struct {
	handler  autoCompleter
	schedule string
	cron     *cron.Cron
	metrics  JobMetrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewReturnCompletionJob creates the job. An empty schedule falls back to
// DefaultReturnCompletionSchedule; the schedule has a seconds field.
func NewReturnCompletionJob(
	handler autoCompleter,
	schedule string,
	metrics JobMetrics,
	logger *slog.Logger,
) *ReturnCompletionJob {
	if schedule == "" {
		schedule = DefaultReturnCompletionSchedule
	}
	return &ReturnCompletionJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		metrics:  metrics,
		logger:   logger.With("component", "return_completion_job"),
		now:      time.Now,
	}
}

// Start schedules the job.
func (j *ReturnCompletionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Return completion job started", "schedule", j.schedule)
	return nil
}

// Run performs one pass. Failures are logged; the next tick retries.
func (j *ReturnCompletionJob) Run(ctx context.Context) {
	completed, err := j.handler.Handle(ctx, commands.NewAutoCompleteReturnsCommand(j.now()))
	if j.metrics != nil {
		j.metrics.JobRun(returnCompletionJobName, err)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Return completion job failed", "error", err)
		return
	}
	if len(completed) > 0 {
		j.logger.InfoContext(ctx, "Returns completed", "count", len(completed))
	}
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *ReturnCompletionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Return completion job stopped")
}
