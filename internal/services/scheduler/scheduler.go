// Package scheduler содержит фоновые задачи: рассылку напоминаний о платежах и окончании
// пробного периода через RabbitMQ и продление просроченных подписок.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/billing"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Repository запросы планировщика по всем пользователям.
type Repository interface {
	FindDueReminders(ctx context.Context, today models.Date) ([]models.Reminder, error)
	FindTrialReminders(ctx context.Context, today models.Date) ([]models.Reminder, error)
	FindOverdue(ctx context.Context, today models.Date) ([]*models.Subscription, error)
	UpdateNextPaymentDate(ctx context.Context, id int, next models.Date) error
	Deactivate(ctx context.Context, id int) error
}

// Service выполняет задачи планировщика.
type Service struct {
	repo    Repository
	channel rabbitmq.Channel
	log     *slog.Logger
	today   func() models.Date
}

// New создает новый экземпляр Service.
func New(repo Repository, channel rabbitmq.Channel, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		channel: channel,
		log:     log,
		today:   models.Today,
	}
}

// SendReminders публикует напоминания о ближайших списаниях и окончании пробных периодов.
// Возвращает число опубликованных сообщений. Ошибки логируются, задача продолжает работу.
func (s *Service) SendReminders(ctx context.Context) int {
	const op = "services.scheduler.SendReminders"
	log := s.log.With(slog.String("op", op))
	today := s.today()

	published := 0
	due, err := s.repo.FindDueReminders(ctx, today)
	if err != nil {
		log.Error("failed to find upcoming payments", sl.Err(err))
	}
	published += s.publish(log, rabbitmq.RoutingUpcoming, due)

	trials, err := s.repo.FindTrialReminders(ctx, today)
	if err != nil {
		log.Error("failed to find ending trials", sl.Err(err))
	}
	published += s.publish(log, rabbitmq.RoutingTrial, trials)

	log.Info("reminders published", slog.Int("count", published))
	return published
}

func (s *Service) publish(log *slog.Logger, routingKey string, reminders []models.Reminder) int {
	n := 0
	for _, r := range reminders {
		if err := rabbitmq.PublishMessage(s.channel, rabbitmq.NotificationsExchange, routingKey, r); err != nil {
			log.Error("failed to publish reminder",
				slog.String("routing_key", routingKey),
				slog.String("service", r.ServiceName),
				sl.Err(err))
			continue
		}
		n++
	}
	return n
}

// RenewOverdue переносит дату платежа автоматически продлеваемых подписок на целое число периодов
// вперёд, остальные просроченные подписки отключает.
func (s *Service) RenewOverdue(ctx context.Context) (renewed, deactivated int) {
	const op = "services.scheduler.RenewOverdue"
	log := s.log.With(slog.String("op", op))
	today := s.today()

	subs, err := s.repo.FindOverdue(ctx, today)
	if err != nil {
		log.Error("failed to find overdue subscriptions", sl.Err(err))
		return 0, 0
	}

	for _, sub := range subs {
		if !sub.AutoRenews {
			if err := s.repo.Deactivate(ctx, sub.ID); err != nil {
				log.Error("failed to deactivate subscription", slog.Int("id", sub.ID), sl.Err(err))
				continue
			}
			deactivated++
			continue
		}

		next, err := billing.Advance(sub.NextPaymentDate, today, sub.BillingPeriod)
		if err != nil {
			log.Error("failed to compute next payment date", slog.Int("id", sub.ID), sl.Err(err))
			continue
		}
		if err := s.repo.UpdateNextPaymentDate(ctx, sub.ID, next); err != nil {
			log.Error("failed to update next payment date", slog.Int("id", sub.ID), sl.Err(err))
			continue
		}
		renewed++
	}

	log.Info("overdue subscriptions processed", slog.Int("renewed", renewed), slog.Int("deactivated", deactivated))
	return renewed, deactivated
}
