package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

const friendRequestSelect = `SELECT fr.id, fr.from_user_uid, fu.username, fr.to_user_uid, tu.username,
				fr.status, fr.created_at
			  FROM friend_requests fr
			  JOIN users fu ON fu.uid = fr.from_user_uid
			  JOIN users tu ON tu.uid = fr.to_user_uid`

func scanFriendRequest(row rowScanner) (*models.FriendRequest, error) {
	var fr models.FriendRequest
	var status string
	if err := row.Scan(&fr.ID, &fr.FromUserUID, &fr.FromUsername, &fr.ToUserUID, &fr.ToUsername,
		&status, &fr.CreatedAt); err != nil {
		return nil, err
	}
	fr.Status = models.FriendRequestStatus(status)
	return &fr, nil
}

// CreateFriendRequest создаёт заявку в статусе pending от fromUID к toUID.
// Неизвестный получатель даёт models.ErrUserNotFound, повтор пары даёт models.ErrFriendRequestExists,
// заявка самому себе даёт models.ErrSelfFriendRequest.
func (s *Storage) CreateFriendRequest(ctx context.Context, fromUID, toUID string) (*models.FriendRequest, error) {
	const op = "storage.CreateFriendRequest"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `WITH fr AS (
				INSERT INTO friend_requests (from_user_uid, to_user_uid)
				VALUES ($1, $2)
				RETURNING id, from_user_uid, to_user_uid, status, created_at
			  )
			  SELECT fr.id, fr.from_user_uid, fu.username, fr.to_user_uid, tu.username,
				fr.status, fr.created_at
			  FROM fr
			  JOIN users fu ON fu.uid = fr.from_user_uid
			  JOIN users tu ON tu.uid = fr.to_user_uid`
	fr, err := scanFriendRequest(s.DB.QueryRowContext(ctx, query, fromUID, toUID))
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		case isUniqueViolation(err):
			return nil, fmt.Errorf("%s: %w", op, models.ErrFriendRequestExists)
		case isCheckViolation(err, "chk_friend_requests_not_self"):
			return nil, fmt.Errorf("%s: %w", op, models.ErrSelfFriendRequest)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return fr, nil
}

// ListFriendRequests возвращает заявки, где пользователь отправитель или получатель.
func (s *Storage) ListFriendRequests(ctx context.Context, userUID string) ([]*models.FriendRequest, error) {
	const op = "storage.ListFriendRequests"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := friendRequestSelect + `
			  WHERE fr.from_user_uid = $1 OR fr.to_user_uid = $1
			  ORDER BY fr.id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.FriendRequest, 0)
	for rows.Next() {
		fr, err := scanFriendRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, fr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReadFriendRequest возвращает заявку, если пользователь её участник.
func (s *Storage) ReadFriendRequest(ctx context.Context, userUID string, id int) (*models.FriendRequest, error) {
	const op = "storage.ReadFriendRequest"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := friendRequestSelect + `
			  WHERE fr.id = $1 AND (fr.from_user_uid = $2 OR fr.to_user_uid = $2)`
	fr, err := scanFriendRequest(s.DB.QueryRowContext(ctx, query, id, userUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return fr, nil
}

// UpdateFriendRequestStatus меняет статус заявки. Менять может только получатель.
func (s *Storage) UpdateFriendRequestStatus(ctx context.Context, recipientUID string, id int, status models.FriendRequestStatus) error {
	const op = "storage.UpdateFriendRequestStatus"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE friend_requests SET status = $1 WHERE id = $2 AND to_user_uid = $3`,
		string(status), id, recipientUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affected(res, op)
}

// DeleteFriendRequest удаляет заявку, если пользователь её участник.
func (s *Storage) DeleteFriendRequest(ctx context.Context, userUID string, id int) error {
	const op = "storage.DeleteFriendRequest"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM friend_requests WHERE id = $1 AND (from_user_uid = $2 OR to_user_uid = $2)`, id, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affected(res, op)
}

// ListAcceptedFriends возвращает вторых участников принятых заявок в порядке id заявки.
func (s *Storage) ListAcceptedFriends(ctx context.Context, userUID string) ([]models.Friend, error) {
	const op = "storage.ListAcceptedFriends"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT u.uid, u.username
			  FROM friend_requests fr
			  JOIN users u ON u.uid = CASE WHEN fr.from_user_uid = $1 THEN fr.to_user_uid ELSE fr.from_user_uid END
			  WHERE fr.status = 'accepted'
			    AND (fr.from_user_uid = $1 OR fr.to_user_uid = $1)
			  ORDER BY fr.id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Friend
	for rows.Next() {
		var f models.Friend
		if err := rows.Scan(&f.UID, &f.Username); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
