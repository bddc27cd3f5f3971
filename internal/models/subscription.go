// Package models содержит доменные структуры сервиса: подписки, настройки уведомлений,
// заявки в друзья и пользователей, а также DTO для приёма данных из JSON-запросов.
package models

import (
	"github.com/shopspring/decimal"
)

// BillingPeriod период списания оплаты за подписку.
type BillingPeriod string

const (
	// BillingWeekly еженедельное списание.
	BillingWeekly BillingPeriod = "weekly"
	// BillingMonthly ежемесячное списание.
	BillingMonthly BillingPeriod = "monthly"
	// BillingYearly ежегодное списание.
	BillingYearly BillingPeriod = "yearly"
)

// DefaultCurrency используется, если валюта не передана в запросе.
const DefaultCurrency = "EUR"

// Subscription представляет собой основную модель подписки,
// используемую в бизнес-логике и хранилище.
// TrialEndDate может быть nil пробного периода нет или дата не указана.
type Subscription struct {
	ID              int             `json:"id"`
	UserUID         string          `json:"user"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	BillingPeriod   BillingPeriod   `json:"billing_period"`
	NextPaymentDate Date            `json:"next_payment_date"`
	IsActive        bool            `json:"is_active"`
	HasTrial        bool            `json:"has_trial"`
	TrialEndDate    *Date           `json:"trial_end_date"`
	AutoRenews      bool            `json:"auto_renews"`
}

// InTrial сообщает, идёт ли у подписки незавершённый пробный период на дату today.
func (s *Subscription) InTrial(today Date) bool {
	return s.HasTrial && s.TrialEndDate != nil && !s.TrialEndDate.Before(today.Time)
}

// DummySubscription используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Subscription.
// Даты приходят строками, чтобы их можно было валидировать и парсить вручную,
// необязательные флаги указателями, чтобы отличить "не передано" от false.
type DummySubscription struct {
	Name            string   `json:"name" validate:"required,max=100"`
	Price           *float64 `json:"price" validate:"required,gte=0,lte=99999999.99"`
	Currency        string   `json:"currency" validate:"omitempty,max=10"`
	BillingPeriod   string   `json:"billing_period" validate:"required,oneof=weekly monthly yearly"`
	NextPaymentDate string   `json:"next_payment_date" validate:"required,date"`
	IsActive        *bool    `json:"is_active"`
	HasTrial        *bool    `json:"has_trial"`
	TrialEndDate    *string  `json:"trial_end_date" validate:"omitempty,date"`
	AutoRenews      *bool    `json:"auto_renews"`
}

// Summary сводка расходов пользователя по активным подпискам.
type Summary struct {
	MonthlyTotal float64 `json:"monthly_total"`
	YearlyTotal  float64 `json:"yearly_total"`
	Count        int     `json:"count"`
}

// CommonSubscription совпадение подписки пользователя с подпиской друга.
type CommonSubscription struct {
	Friend     string  `json:"friend"`
	Service    string  `json:"service"`
	YouPay     float64 `json:"you_pay"`
	FriendPays float64 `json:"friend_pays"`
	Suggestion string  `json:"suggestion"`
}

// SharedPlanSuggestion фиксированная рекомендация для найденных совпадений.
const SharedPlanSuggestion = "Consider using a shared or family plan to reduce costs."
