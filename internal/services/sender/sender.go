// Package sender превращает напоминания из очереди в письма и отправляет их по SMTP.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/smtp"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Transport открывает SMTP-сессию.
type Transport interface {
	Connect() (smtp.Client, error)
	From() string
}

// Service отправляет письма-напоминания.
type Service struct {
	transport Transport
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport Transport, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// HandleReminder разбирает сообщение из очереди и отправляет письмо.
// Ошибка возвращается вызывающему, чтобы сообщение вернулось в очередь.
func (s *Service) HandleReminder(body []byte) error {
	const op = "services.sender.HandleReminder"
	var r models.Reminder
	if err := json.Unmarshal(body, &r); err != nil {
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}
	if r.Email == "" {
		return fmt.Errorf("%s: reminder has no recipient", op)
	}

	subject, text, err := Render(r)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.sendEmail(r.Email, subject, text); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("reminder sent",
		slog.String("kind", string(r.Kind)),
		slog.String("to", r.Email),
		slog.String("service", r.ServiceName))
	return nil
}

// Render собирает тему и текст письма для напоминания.
func Render(r models.Reminder) (subject, body string, err error) {
	switch r.Kind {
	case models.ReminderUpcomingPayment:
		subject = fmt.Sprintf("Upcoming payment: %s", r.ServiceName)
		body = fmt.Sprintf("Hello, %s!\n\nYour %s subscription renews on %s (in %s).\nAmount: %s %s.\n",
			r.Username, r.ServiceName, r.DueDate, days(r.DaysBefore), r.Price, r.Currency)
	case models.ReminderTrialEnding:
		subject = fmt.Sprintf("Trial ending: %s", r.ServiceName)
		body = fmt.Sprintf("Hello, %s!\n\nYour %s trial ends on %s (in %s).\nAfter that you will be charged %s %s.\n",
			r.Username, r.ServiceName, r.DueDate, days(r.DaysBefore), r.Price, r.Currency)
	default:
		return "", "", fmt.Errorf("unknown reminder kind %q", r.Kind)
	}
	return subject, body, nil
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func (s *Service) sendEmail(to, subject, bodyText string) error {
	from := s.transport.From()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			s.log.Debug("smtp client close", sl.Err(err))
		}
	}()

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("MAIL FROM %s: %w", from, err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO %s: %w", to, err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		_ = wc.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}
	return client.Quit()
}
