package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

const subscriptionColumns = `id, user_uid, name, price, currency, billing_period,
	next_payment_date, is_active, has_trial, trial_end_date, auto_renews`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*models.Subscription, error) {
	var s models.Subscription
	var period string
	if err := row.Scan(&s.ID, &s.UserUID, &s.Name, &s.Price, &s.Currency, &period,
		&s.NextPaymentDate, &s.IsActive, &s.HasTrial, &s.TrialEndDate, &s.AutoRenews); err != nil {
		return nil, err
	}
	s.BillingPeriod = models.BillingPeriod(period)
	return &s, nil
}

func duplicateNameError(op string) error {
	return fmt.Errorf("%s: %w", op, models.NewFieldError("name", models.ErrDuplicateName))
}

// ExistsByName проверяет, есть ли у пользователя подписка с тем же именем без учёта регистра
// и пробелов по краям. excludeID исключает обновляемую запись, 0 означает «не исключать».
func (s *Storage) ExistsByName(ctx context.Context, userUID, name string, excludeID int) (bool, error) {
	const op = "storage.ExistsByName"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	query := `SELECT EXISTS (
				SELECT 1 FROM subscriptions
				WHERE user_uid = $1
				  AND lower(btrim(name)) = lower(btrim($2))
				  AND id <> $3
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, userUID, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// CreateSubscription сохраняет подписку пользователя и возвращает запись из базы.
// Повтор имени возвращает models.FieldError с models.ErrDuplicateName.
func (s *Storage) CreateSubscription(ctx context.Context, userUID string, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.CreateSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	exists, err := s.ExistsByName(ctx, userUID, sub.Name, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, duplicateNameError(op)
	}

	return s.insertSubscription(ctx, op, userUID, sub)
}

// insertSubscription вставляет строку без предварительной проверки имени.
// Гонку двух одновременных запросов разрешает уникальный индекс uniq_subscriptions_user_name.
func (s *Storage) insertSubscription(ctx context.Context, op, userUID string, sub models.Subscription) (*models.Subscription, error) {
	query := `INSERT INTO subscriptions (user_uid, name, price, currency, billing_period,
				next_payment_date, is_active, has_trial, trial_end_date, auto_renews)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + subscriptionColumns
	row := s.DB.QueryRowContext(ctx, query,
		userUID, sub.Name, sub.Price, sub.Currency, string(sub.BillingPeriod),
		sub.NextPaymentDate, sub.IsActive, sub.HasTrial, sub.TrialEndDate, sub.AutoRenews)
	created, err := scanSubscription(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateNameError(op)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ReadSubscription возвращает подписку пользователя по id.
func (s *Storage) ReadSubscription(ctx context.Context, userUID string, id int) (*models.Subscription, error) {
	const op = "storage.ReadSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1 AND user_uid = $2`
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, id, userUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// ListSubscriptions возвращает подписки пользователя по возрастанию id.
// limit == nil отдаёт все записи.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string, limit *int, offset int) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE user_uid = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	return s.querySubscriptions(ctx, op, query, userUID, limit, offset)
}

// ListActiveSubscriptions возвращает активные подписки пользователя по возрастанию id.
func (s *Storage) ListActiveSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "storage.ListActiveSubscriptions"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE user_uid = $1 AND is_active = true
			  ORDER BY id`
	return s.querySubscriptions(ctx, op, query, userUID)
}

func (s *Storage) querySubscriptions(ctx context.Context, op, query string, args ...any) ([]*models.Subscription, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSubscription полностью заменяет поля подписки пользователя и возвращает новую версию.
func (s *Storage) UpdateSubscription(ctx context.Context, userUID string, id int, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.UpdateSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	exists, err := s.ExistsByName(ctx, userUID, sub.Name, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, duplicateNameError(op)
	}

	return s.replaceSubscription(ctx, op, userUID, id, sub)
}

// replaceSubscription перезаписывает строку без предварительной проверки имени.
func (s *Storage) replaceSubscription(ctx context.Context, op, userUID string, id int, sub models.Subscription) (*models.Subscription, error) {
	query := `UPDATE subscriptions
			  SET name = $1, price = $2, currency = $3, billing_period = $4, next_payment_date = $5,
			      is_active = $6, has_trial = $7, trial_end_date = $8, auto_renews = $9
			  WHERE id = $10 AND user_uid = $11
			  RETURNING ` + subscriptionColumns
	row := s.DB.QueryRowContext(ctx, query,
		sub.Name, sub.Price, sub.Currency, string(sub.BillingPeriod), sub.NextPaymentDate,
		sub.IsActive, sub.HasTrial, sub.TrialEndDate, sub.AutoRenews, id, userUID)
	updated, err := scanSubscription(row)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		case isUniqueViolation(err):
			return nil, duplicateNameError(op)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteSubscription удаляет подписку пользователя.
func (s *Storage) DeleteSubscription(ctx context.Context, userUID string, id int) error {
	const op = "storage.DeleteSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1 AND user_uid = $2`, id, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affected(res, op)
}
