package models

// ReminderKind различает типы напоминаний.
type ReminderKind string

const (
	// ReminderUpcomingPayment скоро очередное списание.
	ReminderUpcomingPayment ReminderKind = "upcoming_payment"
	// ReminderTrialEnding скоро закончится пробный период.
	ReminderTrialEnding ReminderKind = "trial_ending"
)

// Reminder сообщение, которое планировщик публикует в RabbitMQ, а sender превращает в письмо.
type Reminder struct {
	Kind        ReminderKind `json:"kind"`
	Email       string       `json:"email"`
	Username    string       `json:"username"`
	ServiceName string       `json:"service_name"`
	Price       string       `json:"price"`
	Currency    string       `json:"currency"`
	DueDate     Date         `json:"due_date"`
	DaysBefore  int          `json:"days_before"`
}
