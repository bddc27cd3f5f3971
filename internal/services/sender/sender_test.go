package sender

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/smtp"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) From() string {
	return m.Called().String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error { return m.Called(from).Error(0) }
func (m *MockSMTPClient) Rcpt(to string) error   { return m.Called(to).Error(0) }
func (m *MockSMTPClient) Quit() error            { return m.Called().Error(0) }
func (m *MockSMTPClient) Close() error           { return m.Called().Error(0) }

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

type bufferWriter struct {
	data   []byte
	closed bool
}

func (w *bufferWriter) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *bufferWriter) Close() error {
	w.closed = true
	return nil
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func reminderBody(t *testing.T, kind models.ReminderKind) []byte {
	body, err := json.Marshal(models.Reminder{
		Kind:        kind,
		Email:       "alice@example.com",
		Username:    "alice",
		ServiceName: "Netflix",
		Price:       "15.99",
		Currency:    "EUR",
		DueDate:     models.NewDate(time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC)),
		DaysBefore:  3,
	})
	require.NoError(t, err)
	return body
}

func TestService_HandleReminder(t *testing.T) {
	tests := []struct {
		name        string
		kind        models.ReminderKind
		wantSubject string
	}{
		{name: "upcoming payment", kind: models.ReminderUpcomingPayment, wantSubject: "Subject: Upcoming payment: Netflix"},
		{name: "trial ending", kind: models.ReminderTrialEnding, wantSubject: "Subject: Trial ending: Netflix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(MockTransport)
			client := new(MockSMTPClient)
			writer := &bufferWriter{}

			transport.On("From").Return("bot@example.com")
			transport.On("Connect").Return(client, nil).Once()
			client.On("Mail", "bot@example.com").Return(nil).Once()
			client.On("Rcpt", "alice@example.com").Return(nil).Once()
			client.On("Data").Return(writer, nil).Once()
			client.On("Quit").Return(nil).Once()
			client.On("Close").Return(nil).Once()

			err := New(transport, newNoopLogger()).HandleReminder(reminderBody(t, tt.kind))
			require.NoError(t, err)

			msg := string(writer.data)
			assert.True(t, writer.closed)
			assert.Contains(t, msg, "To: alice@example.com")
			assert.Contains(t, msg, tt.wantSubject)
			assert.Contains(t, msg, "2025-03-13")
			assert.Contains(t, msg, "15.99 EUR")
			client.AssertExpectations(t)
			transport.AssertExpectations(t)
		})
	}
}

func TestService_HandleReminder_Errors(t *testing.T) {
	t.Run("invalid JSON", func(t *testing.T) {
		transport := new(MockTransport)
		err := New(transport, newNoopLogger()).HandleReminder([]byte("invalid json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error unmarshalling message")
		transport.AssertNotCalled(t, "Connect")
	})

	t.Run("unknown kind", func(t *testing.T) {
		transport := new(MockTransport)
		err := New(transport, newNoopLogger()).HandleReminder(reminderBody(t, "birthday"))
		assert.Error(t, err)
		transport.AssertNotCalled(t, "Connect")
	})

	t.Run("SMTP connection error", func(t *testing.T) {
		transport := new(MockTransport)
		transport.On("From").Return("bot@example.com")
		transport.On("Connect").Return(nil, errors.New("connection error")).Once()

		err := New(transport, newNoopLogger()).HandleReminder(reminderBody(t, models.ReminderUpcomingPayment))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection error")
	})

	t.Run("recipient rejected closes client", func(t *testing.T) {
		transport := new(MockTransport)
		client := new(MockSMTPClient)
		transport.On("From").Return("bot@example.com")
		transport.On("Connect").Return(client, nil).Once()
		client.On("Mail", "bot@example.com").Return(nil).Once()
		client.On("Rcpt", "alice@example.com").Return(errors.New("550 no such user")).Once()
		client.On("Close").Return(nil).Once()

		err := New(transport, newNoopLogger()).HandleReminder(reminderBody(t, models.ReminderTrialEnding))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "550")
		client.AssertExpectations(t)
	})
}

func TestRender_SingularDay(t *testing.T) {
	_, body, err := Render(models.Reminder{Kind: models.ReminderUpcomingPayment, DaysBefore: 1})
	require.NoError(t, err)
	assert.Contains(t, body, "in 1 day)")
}
