package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondkeeper/pondkeeper/internal/reminder"
)

type stubSweeper struct {
	result      *reminder.SweepResult
	err         error
	sawDeadline bool
}

func (s *stubSweeper) RecordActivity(context.Context, string, int, string) error { return nil }

func (s *stubSweeper) RegisterDevice(context.Context, string, string, string) error { return nil }

func (s *stubSweeper) EvaluateAndDispatch(ctx context.Context, _ time.Time) (*reminder.SweepResult, error) {
	_, s.sawDeadline = ctx.Deadline()
	return s.result, s.err
}

func TestReminderWorkerProcess(t *testing.T) {
	sweeper := &stubSweeper{result: &reminder.SweepResult{Evaluated: 3, Notified: 2}}
	w := NewReminderWorker(sweeper, time.Minute)

	require.NoError(t, w.Process(context.Background()))
	assert.True(t, sweeper.sawDeadline, "sweep context should carry the budget deadline")
}

func TestReminderWorkerProcessError(t *testing.T) {
	sweepErr := errors.New("list failed")
	sweeper := &stubSweeper{err: sweepErr}
	w := NewReminderWorker(sweeper, time.Minute)

	err := w.Process(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, sweepErr)
}
