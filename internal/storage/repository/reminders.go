package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Запросы планировщика работают по всем пользователям и вызываются только из фоновых задач.

const reminderSelect = `SELECT u.email, u.username, s.name, s.price::text, s.currency, %s,
				COALESCE(ns.days_before, 3)
			  FROM subscriptions s
			  JOIN users u ON u.uid = s.user_uid
			  LEFT JOIN notification_settings ns ON ns.user_uid = s.user_uid
			  WHERE s.is_active = true
			    AND COALESCE(ns.email_enabled, true) = true
			    AND %s = $1::date + COALESCE(ns.days_before, 3)%s
			  ORDER BY s.id`

// FindDueReminders возвращает напоминания о списаниях, до которых осталось days_before дней.
// Пользователи без настроек получают значения по умолчанию.
func (s *Storage) FindDueReminders(ctx context.Context, today models.Date) ([]models.Reminder, error) {
	const op = "storage.FindDueReminders"
	query := fmt.Sprintf(reminderSelect, "s.next_payment_date", "s.next_payment_date", "")
	return s.queryReminders(ctx, op, query, models.ReminderUpcomingPayment, today)
}

// FindTrialReminders возвращает напоминания об окончании пробного периода.
func (s *Storage) FindTrialReminders(ctx context.Context, today models.Date) ([]models.Reminder, error) {
	const op = "storage.FindTrialReminders"
	query := fmt.Sprintf(reminderSelect, "s.trial_end_date", "s.trial_end_date", " AND s.has_trial = true")
	return s.queryReminders(ctx, op, query, models.ReminderTrialEnding, today)
}

func (s *Storage) queryReminders(ctx context.Context, op, query string, kind models.ReminderKind, today models.Date) ([]models.Reminder, error) {
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, query, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Reminder
	for rows.Next() {
		r := models.Reminder{Kind: kind}
		if err := rows.Scan(&r.Email, &r.Username, &r.ServiceName, &r.Price, &r.Currency,
			&r.DueDate, &r.DaysBefore); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindOverdue возвращает активные подписки, дата платежа которых уже прошла.
func (s *Storage) FindOverdue(ctx context.Context, today models.Date) ([]*models.Subscription, error) {
	const op = "storage.FindOverdue"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE is_active = true AND next_payment_date < $1
			  ORDER BY id`
	return s.querySubscriptions(ctx, op, query, today)
}

// UpdateNextPaymentDate переносит дату следующего платежа.
func (s *Storage) UpdateNextPaymentDate(ctx context.Context, id int, next models.Date) error {
	const op = "storage.UpdateNextPaymentDate"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE subscriptions SET next_payment_date = $1 WHERE id = $2`, next, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affected(res, op)
}

// Deactivate помечает подписку неактивной.
func (s *Storage) Deactivate(ctx context.Context, id int) error {
	const op = "storage.Deactivate"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE subscriptions SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affected(res, op)
}
