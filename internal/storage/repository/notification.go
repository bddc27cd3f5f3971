package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

const settingsColumns = `id, user_uid, days_before, email_enabled, push_enabled`

func scanSettings(row rowScanner) (*models.NotificationSettings, error) {
	var ns models.NotificationSettings
	if err := row.Scan(&ns.ID, &ns.UserUID, &ns.DaysBefore, &ns.EmailEnabled, &ns.PushEnabled); err != nil {
		return nil, err
	}
	return &ns, nil
}

// UpsertSettings создаёт настройки пользователя или обновляет существующие одним запросом.
// created == true, если запись была вставлена.
func (s *Storage) UpsertSettings(ctx context.Context, settings models.NotificationSettings) (*models.NotificationSettings, bool, error) {
	const op = "storage.UpsertSettings"
	if err := checkCtx(ctx, op); err != nil {
		return nil, false, err
	}

	query := `INSERT INTO notification_settings (user_uid, days_before, email_enabled, push_enabled)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (user_uid) DO UPDATE
			  SET days_before = EXCLUDED.days_before,
			      email_enabled = EXCLUDED.email_enabled,
			      push_enabled = EXCLUDED.push_enabled
			  RETURNING ` + settingsColumns + `, (xmax = 0) AS inserted`
	var ns models.NotificationSettings
	var created bool
	err := s.DB.QueryRowContext(ctx, query,
		settings.UserUID, settings.DaysBefore, settings.EmailEnabled, settings.PushEnabled).
		Scan(&ns.ID, &ns.UserUID, &ns.DaysBefore, &ns.EmailEnabled, &ns.PushEnabled, &created)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return &ns, created, nil
}

// ListSettings возвращает настройки пользователя: пустой список или одну запись.
func (s *Storage) ListSettings(ctx context.Context, userUID string) ([]*models.NotificationSettings, error) {
	const op = "storage.ListSettings"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+settingsColumns+` FROM notification_settings WHERE user_uid = $1 ORDER BY id`, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.NotificationSettings, 0, 1)
	for rows.Next() {
		ns, err := scanSettings(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, ns)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReadSettings возвращает настройки по id, если они принадлежат пользователю.
func (s *Storage) ReadSettings(ctx context.Context, userUID string, id int) (*models.NotificationSettings, error) {
	const op = "storage.ReadSettings"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT `+settingsColumns+` FROM notification_settings WHERE id = $1 AND user_uid = $2`, id, userUID)
	ns, err := scanSettings(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ns, nil
}

// UpdateSettings заменяет поля настроек пользователя.
func (s *Storage) UpdateSettings(ctx context.Context, userUID string, id int, settings models.NotificationSettings) (*models.NotificationSettings, error) {
	const op = "storage.UpdateSettings"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE notification_settings
			  SET days_before = $1, email_enabled = $2, push_enabled = $3
			  WHERE id = $4 AND user_uid = $5
			  RETURNING ` + settingsColumns
	ns, err := scanSettings(s.DB.QueryRowContext(ctx, query,
		settings.DaysBefore, settings.EmailEnabled, settings.PushEnabled, id, userUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ns, nil
}

// DeleteSettings удаляет настройки пользователя.
func (s *Storage) DeleteSettings(ctx context.Context, userUID string, id int) error {
	const op = "storage.DeleteSettings"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM notification_settings WHERE id = $1 AND user_uid = $2`, id, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affected(res, op)
}
