package create

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/handlertest"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userUID string, req models.DummySubscription) (*models.Subscription, error) {
	args := m.Called(ctx, userUID, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	valid := models.DummySubscription{
		Name:            "Netflix",
		Price:           handlertest.Ptr(15.99),
		BillingPeriod:   "monthly",
		NextPaymentDate: "2025-03-13",
	}
	created := &models.Subscription{
		ID:            7,
		Name:          "Netflix",
		Price:         decimal.RequireFromString("15.99"),
		Currency:      "EUR",
		BillingPeriod: models.BillingMonthly,
		IsActive:      true,
		AutoRenews:    true,
	}

	tests := []struct {
		name           string
		req            handlertest.Request
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание подписки",
			req:  handlertest.Request{Body: valid},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, handlertest.UserUID, valid).Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":7`,
		},
		{
			name:           "невалидные данные",
			req:            handlertest.Request{Body: models.DummySubscription{BillingPeriod: "daily"}},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"billing_period":["\"daily\" is not a valid choice"]`,
		},
		{
			name: "неверный формат даты",
			req: handlertest.Request{Body: models.DummySubscription{
				Name:            "Netflix",
				Price:           handlertest.Ptr(15.99),
				BillingPeriod:   "monthly",
				NextPaymentDate: "13.03.2025",
			}},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"fields":{"next_payment_date":["` + models.ErrInvalidDate.Error() + `"]}`,
		},
		{
			name:           "некорректный JSON",
			req:            handlertest.Request{Body: "not a json"},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "отсутствует авторизация",
			req:            handlertest.Request{Body: valid, Anonymous: true},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name: "дубликат имени",
			req:  handlertest.Request{Body: valid},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, handlertest.UserUID, valid).
					Return(nil, models.NewFieldError("name", models.ErrDuplicateName))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"fields":{"name":["subscription with this name already exists"]}`,
		},
		{
			name: "ошибка сервиса",
			req:  handlertest.Request{Body: valid},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, handlertest.UserUID, valid).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create subscription"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			tt.req.Method = http.MethodPost
			tt.req.Target = "/api/v1/subscriptions"
			w := handlertest.Serve(t, New(handlertest.NoopLogger(), mockService), tt.req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
