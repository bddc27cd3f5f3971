// Package subscription содержит бизнес-логику подписок: CRUD с проверкой уникальности имени,
// сводку расходов с кешированием и поиск общих с друзьями подписок.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/subscription-tracker/internal/cache"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/billing"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Repository определяет методы хранилища подписок. Все методы ограничены владельцем userUID.
type Repository interface {
	CreateSubscription(ctx context.Context, userUID string, sub models.Subscription) (*models.Subscription, error)
	ReadSubscription(ctx context.Context, userUID string, id int) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context, userUID string, limit *int, offset int) ([]*models.Subscription, error)
	ListActiveSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error)
	UpdateSubscription(ctx context.Context, userUID string, id int, sub models.Subscription) (*models.Subscription, error)
	DeleteSubscription(ctx context.Context, userUID string, id int) error
}

// FriendRepository отдаёт друзей пользователя по принятым заявкам.
type FriendRepository interface {
	ListAcceptedFriends(ctx context.Context, userUID string) ([]models.Friend, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// Service реализует бизнес-логику работы с подписками.
type Service struct {
	repo       Repository
	friends    FriendRepository
	cache      Cache
	summaryTTL time.Duration
	log        *slog.Logger
	today      func() models.Date
}

// New создает Service. cache может быть nil, тогда сводка всегда считается заново.
func New(repo Repository, friends FriendRepository, cache Cache, summaryTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		friends:    friends,
		cache:      cache,
		summaryTTL: summaryTTL,
		log:        log,
		today:      models.Today,
	}
}

// Create проверяет запрос и сохраняет подписку пользователя.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummySubscription) (*models.Subscription, error) {
	sub, err := FromRequest(req)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.CreateSubscription(ctx, userUID, sub)
	if err != nil {
		return nil, err
	}
	s.invalidateSummary(ctx, userUID)
	return created, nil
}

// Read возвращает подписку пользователя.
func (s *Service) Read(ctx context.Context, userUID string, id int) (*models.Subscription, error) {
	return s.repo.ReadSubscription(ctx, userUID, id)
}

// List возвращает подписки пользователя. limit == nil означает без ограничения.
func (s *Service) List(ctx context.Context, userUID string, limit *int, offset int) ([]*models.Subscription, error) {
	return s.repo.ListSubscriptions(ctx, userUID, limit, offset)
}

// Update полностью заменяет подписку пользователя.
func (s *Service) Update(ctx context.Context, userUID string, id int, req models.DummySubscription) (*models.Subscription, error) {
	sub, err := FromRequest(req)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateSubscription(ctx, userUID, id, sub)
	if err != nil {
		return nil, err
	}
	s.invalidateSummary(ctx, userUID)
	return updated, nil
}

// Delete удаляет подписку пользователя.
func (s *Service) Delete(ctx context.Context, userUID string, id int) error {
	if err := s.repo.DeleteSubscription(ctx, userUID, id); err != nil {
		return err
	}
	s.invalidateSummary(ctx, userUID)
	return nil
}

// Summary возвращает сводку расходов по активным подпискам, по возможности из кеша.
func (s *Service) Summary(ctx context.Context, userUID string) (models.Summary, error) {
	const op = "services.subscription.Summary"
	today := s.today()
	key := cache.SummaryKey(userUID, today)

	if s.cache != nil {
		var cached models.Summary
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("failed to read summary from cache", slog.String("op", op), sl.Err(err))
		}
		if found {
			return cached, nil
		}
	}

	subs, err := s.repo.ListActiveSubscriptions(ctx, userUID)
	if err != nil {
		return models.Summary{}, fmt.Errorf("%s: %w", op, err)
	}
	summary, err := ComputeSummary(subs, today)
	if err != nil {
		return models.Summary{}, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summary, s.summaryTTL); err != nil {
			s.log.Warn("failed to cache summary", slog.String("op", op), sl.Err(err))
		}
	}
	return summary, nil
}

// ComputeSummary считает месячную и годовую сумму по подпискам.
// Подписки в незавершённом пробном периоде не входят в суммы, но входят в count.
func ComputeSummary(subs []*models.Subscription, today models.Date) (models.Summary, error) {
	monthly, yearly := decimal.Zero, decimal.Zero
	for _, sub := range subs {
		if sub.InTrial(today) {
			continue
		}
		m, err := billing.Monthly(sub.Price, sub.BillingPeriod)
		if err != nil {
			return models.Summary{}, err
		}
		y, err := billing.Yearly(sub.Price, sub.BillingPeriod)
		if err != nil {
			return models.Summary{}, err
		}
		monthly = monthly.Add(m)
		yearly = yearly.Add(y)
	}
	return models.Summary{
		MonthlyTotal: monthly.Round(2).InexactFloat64(),
		YearlyTotal:  yearly.Round(2).InexactFloat64(),
		Count:        len(subs),
	}, nil
}

// Common ищет подписки пользователя, совпадающие по имени с подписками друзей.
func (s *Service) Common(ctx context.Context, userUID string) ([]models.CommonSubscription, error) {
	const op = "services.subscription.Common"

	friends, err := s.friends.ListAcceptedFriends(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result := make([]models.CommonSubscription, 0)
	if len(friends) == 0 {
		return result, nil
	}

	mine, err := s.repo.ListActiveSubscriptions(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, friend := range friends {
		theirs, err := s.repo.ListActiveSubscriptions(ctx, friend.UID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for _, my := range mine {
			for _, their := range theirs {
				if normalizeName(my.Name) != normalizeName(their.Name) {
					continue
				}
				result = append(result, models.CommonSubscription{
					Friend:     friend.Username,
					Service:    my.Name,
					YouPay:     my.Price.InexactFloat64(),
					FriendPays: their.Price.InexactFloat64(),
					Suggestion: models.SharedPlanSuggestion,
				})
			}
		}
	}
	return result, nil
}

// FromRequest переводит DTO в модель, подставляя значения по умолчанию.
func FromRequest(req models.DummySubscription) (models.Subscription, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Subscription{}, models.NewFieldError("name", models.ErrRequired)
	}
	if req.Price == nil {
		return models.Subscription{}, models.NewFieldError("price", models.ErrRequired)
	}
	price := decimal.NewFromFloat(*req.Price)
	if !price.Equal(price.Round(2)) {
		return models.Subscription{}, models.NewFieldError("price", models.ErrPricePrecision)
	}

	next, err := models.ParseDate(req.NextPaymentDate)
	if err != nil {
		return models.Subscription{}, models.NewFieldError("next_payment_date", models.ErrInvalidDate)
	}

	sub := models.Subscription{
		Name:            name,
		Price:           price,
		Currency:        req.Currency,
		BillingPeriod:   models.BillingPeriod(req.BillingPeriod),
		NextPaymentDate: next,
		IsActive:        boolOr(req.IsActive, true),
		HasTrial:        boolOr(req.HasTrial, false),
		AutoRenews:      boolOr(req.AutoRenews, true),
	}
	if sub.Currency == "" {
		sub.Currency = models.DefaultCurrency
	}
	if req.TrialEndDate != nil && *req.TrialEndDate != "" {
		trialEnd, err := models.ParseDate(*req.TrialEndDate)
		if err != nil {
			return models.Subscription{}, models.NewFieldError("trial_end_date", models.ErrInvalidDate)
		}
		sub.TrialEndDate = &trialEnd
	}
	return sub, nil
}

func (s *Service) invalidateSummary(ctx context.Context, userUID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cache.SummaryKey(userUID, s.today())); err != nil {
		s.log.Warn("failed to invalidate summary cache", slog.String("user_uid", userUID), sl.Err(err))
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
