package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/magabrotheeeer/subscription-tracker/internal/config"
)

// Jobs задачи, которые планировщик запускает по расписанию.
type Jobs interface {
	SendReminders(ctx context.Context) int
	RenewOverdue(ctx context.Context) (renewed, deactivated int)
}

func newCron(logger *slog.Logger) *cron.Cron {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	return cron.New(cron.WithChain(cron.Recover(cronLogger)))
}

// scheduleJobs регистрирует задачи напоминаний и продления. Неверное расписание не даёт стартовать.
func scheduleJobs(ctx context.Context, c *cron.Cron, cfg config.Scheduler, jobs Jobs, logger *slog.Logger) error {
	if _, err := c.AddFunc(cfg.ReminderSchedule, func() {
		sent := jobs.SendReminders(ctx)
		logger.Info("reminder job finished", slog.Int("published", sent))
	}); err != nil {
		return fmt.Errorf("schedule reminder job %q: %w", cfg.ReminderSchedule, err)
	}
	logger.Info("scheduled reminder job", slog.String("schedule", cfg.ReminderSchedule))

	if _, err := c.AddFunc(cfg.RenewalSchedule, func() {
		renewed, deactivated := jobs.RenewOverdue(ctx)
		logger.Info("renewal job finished", slog.Int("renewed", renewed), slog.Int("deactivated", deactivated))
	}); err != nil {
		return fmt.Errorf("schedule renewal job %q: %w", cfg.RenewalSchedule, err)
	}
	logger.Info("scheduled renewal job", slog.String("schedule", cfg.RenewalSchedule))

	return nil
}
