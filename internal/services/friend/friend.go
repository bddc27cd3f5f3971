// Package friend управляет заявками в друзья.
package friend

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Repository хранилище заявок.
type Repository interface {
	CreateFriendRequest(ctx context.Context, fromUID, toUID string) (*models.FriendRequest, error)
	ListFriendRequests(ctx context.Context, userUID string) ([]*models.FriendRequest, error)
	ReadFriendRequest(ctx context.Context, userUID string, id int) (*models.FriendRequest, error)
	UpdateFriendRequestStatus(ctx context.Context, recipientUID string, id int, status models.FriendRequestStatus) error
	DeleteFriendRequest(ctx context.Context, userUID string, id int) error
}

// Service бизнес-логика графа дружбы.
type Service struct {
	repo Repository
}

// New создает Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create отправляет заявку от userUID пользователю toUID.
// Ошибки проверки возвращаются как models.FieldError по полю to_user.
func (s *Service) Create(ctx context.Context, userUID, toUID string) (*models.FriendRequest, error) {
	to, err := uuid.Parse(toUID)
	if err != nil {
		return nil, models.NewFieldError("to_user", models.ErrUserNotFound)
	}
	// uid сравниваются как UUID: регистр и форма записи не важны.
	if from, err := uuid.Parse(userUID); err == nil && from == to {
		return nil, models.NewFieldError("to_user", models.ErrSelfFriendRequest)
	}
	fr, err := s.repo.CreateFriendRequest(ctx, userUID, to.String())
	switch {
	case errors.Is(err, models.ErrSelfFriendRequest):
		return nil, models.NewFieldError("to_user", models.ErrSelfFriendRequest)
	case errors.Is(err, models.ErrUserNotFound):
		return nil, models.NewFieldError("to_user", models.ErrUserNotFound)
	case errors.Is(err, models.ErrFriendRequestExists):
		return nil, models.NewFieldError("to_user", models.ErrFriendRequestExists)
	case err != nil:
		return nil, err
	}
	return fr, nil
}

// List возвращает заявки, где пользователь отправитель или получатель.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.FriendRequest, error) {
	return s.repo.ListFriendRequests(ctx, userUID)
}

// Read возвращает заявку, если пользователь её участник.
func (s *Service) Read(ctx context.Context, userUID string, id int) (*models.FriendRequest, error) {
	return s.repo.ReadFriendRequest(ctx, userUID, id)
}

// UpdateStatus принимает или отклоняет заявку. Это может сделать только получатель,
// отправитель получает models.ErrForbidden.
func (s *Service) UpdateStatus(ctx context.Context, userUID string, id int, status models.FriendRequestStatus) (*models.FriendRequest, error) {
	if status != models.FriendRequestAccepted && status != models.FriendRequestRejected {
		return nil, models.NewFieldError("status", models.ErrInvalidStatus)
	}
	fr, err := s.repo.ReadFriendRequest(ctx, userUID, id)
	if err != nil {
		return nil, err
	}
	if fr.ToUserUID != userUID {
		return nil, models.ErrForbidden
	}
	if err := s.repo.UpdateFriendRequestStatus(ctx, userUID, id, status); err != nil {
		return nil, err
	}
	fr.Status = status
	return fr, nil
}

// Delete удаляет заявку. Доступно обоим участникам.
func (s *Service) Delete(ctx context.Context, userUID string, id int) error {
	return s.repo.DeleteFriendRequest(ctx, userUID, id)
}
