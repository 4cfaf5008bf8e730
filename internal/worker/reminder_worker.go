package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/pondkeeper/pondkeeper/internal/logger"
	"github.com/pondkeeper/pondkeeper/internal/metrics"
	"github.com/pondkeeper/pondkeeper/internal/reminder"
)

// ReminderWorker runs one reminder sweep per Process call. The scheduler
// enqueues it at a fixed interval; the budget bounds how long a single sweep
// may run before the remaining accounts are deferred to the next run.
type ReminderWorker struct {
	svc    reminder.Service
	budget time.Duration
}

// NewReminderWorker creates a reminder sweep job.
func NewReminderWorker(svc reminder.Service, budget time.Duration) *ReminderWorker {
	return &ReminderWorker{svc: svc, budget: budget}
}

// Process implements worker.Job.
func (w *ReminderWorker) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, w.budget)
	defer cancel()

	log.Debug(LogMsgReminderSweepStarting, "budget", w.budget.String())

	result, err := w.svc.EvaluateAndDispatch(ctx, time.Now().UTC())
	if err != nil {
		log.Error(LogMsgReminderSweepFailed, "error", err)
		return fmt.Errorf("reminder sweep: %w", err)
	}

	metrics.RemindersSent.Add(float64(result.Notified))
	metrics.TokensPruned.Add(float64(result.Pruned))

	log.Info(LogMsgReminderSweepCompleted,
		"evaluated", result.Evaluated,
		"notified", result.Notified,
		"pruned", result.Pruned,
		"skipped", result.Skipped)

	return nil
}
