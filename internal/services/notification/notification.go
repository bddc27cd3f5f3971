// Package notification управляет настройками напоминаний пользователя.
package notification

import (
	"context"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Repository хранилище настроек. Все методы ограничены владельцем userUID.
type Repository interface {
	UpsertSettings(ctx context.Context, settings models.NotificationSettings) (*models.NotificationSettings, bool, error)
	ListSettings(ctx context.Context, userUID string) ([]*models.NotificationSettings, error)
	ReadSettings(ctx context.Context, userUID string, id int) (*models.NotificationSettings, error)
	UpdateSettings(ctx context.Context, userUID string, id int, settings models.NotificationSettings) (*models.NotificationSettings, error)
	DeleteSettings(ctx context.Context, userUID string, id int) error
}

// Service бизнес-логика настроек уведомлений.
type Service struct {
	repo Repository
}

// New создает Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert создаёт настройки пользователя или перезаписывает существующие.
// Незаполненные поля получают значения по умолчанию. created сообщает, была ли запись новой.
func (s *Service) Upsert(ctx context.Context, userUID string, req models.DummyNotificationSettings) (*models.NotificationSettings, bool, error) {
	return s.repo.UpsertSettings(ctx, req.ToSettings(userUID))
}

// List возвращает настройки пользователя.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.NotificationSettings, error) {
	return s.repo.ListSettings(ctx, userUID)
}

// Read возвращает настройки по id.
func (s *Service) Read(ctx context.Context, userUID string, id int) (*models.NotificationSettings, error) {
	return s.repo.ReadSettings(ctx, userUID, id)
}

// Update заменяет настройки по id.
func (s *Service) Update(ctx context.Context, userUID string, id int, req models.DummyNotificationSettings) (*models.NotificationSettings, error) {
	return s.repo.UpdateSettings(ctx, userUID, id, req.ToSettings(userUID))
}

// Delete удаляет настройки по id.
func (s *Service) Delete(ctx context.Context, userUID string, id int) error {
	return s.repo.DeleteSettings(ctx, userUID, id)
}
