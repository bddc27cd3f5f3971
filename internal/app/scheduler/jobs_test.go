package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/config"
)

type MockJobs struct {
	mock.Mock
}

func (m *MockJobs) SendReminders(ctx context.Context) int {
	return m.Called(ctx).Int(0)
}

func (m *MockJobs) RenewOverdue(ctx context.Context) (int, int) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduleJobs(t *testing.T) {
	ctx := context.Background()
	jobs := new(MockJobs)
	jobs.On("SendReminders", ctx).Return(2).Once()
	jobs.On("RenewOverdue", ctx).Return(1, 1).Once()

	c := newCron(newNoopLogger())
	err := scheduleJobs(ctx, c, config.Scheduler{
		ReminderSchedule: "0 9 * * *",
		RenewalSchedule:  "5 0 * * *",
	}, jobs, newNoopLogger())
	require.NoError(t, err)

	entries := c.Entries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		e.Job.Run()
	}
	jobs.AssertExpectations(t)
}

func TestScheduleJobs_InvalidSchedule(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Scheduler
	}{
		{name: "неверное расписание напоминаний", cfg: config.Scheduler{ReminderSchedule: "every day", RenewalSchedule: "5 0 * * *"}},
		{name: "неверное расписание продления", cfg: config.Scheduler{ReminderSchedule: "0 9 * * *", RenewalSchedule: "* *"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := new(MockJobs)
			err := scheduleJobs(context.Background(), newCron(newNoopLogger()), tt.cfg, jobs, newNoopLogger())
			assert.Error(t, err)
			jobs.AssertNotCalled(t, "SendReminders", mock.Anything)
		})
	}
}
