package settingslist

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/handlertest"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userUID string) ([]*models.NotificationSettings, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.([]*models.NotificationSettings), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "одна запись",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, handlertest.UserUID).Return([]*models.NotificationSettings{
					{ID: 4, UserUID: handlertest.UserUID, DaysBefore: 3, EmailEnabled: true},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","data":[{"id":4,"user":"` + handlertest.UserUID +
				`","days_before":3,"email_enabled":true,"push_enabled":false}]}`,
		},
		{
			name: "настроек нет",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, handlertest.UserUID).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":[]}`,
		},
		{
			name: "ошибка сервиса",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, handlertest.UserUID).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not list notification settings"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			w := handlertest.Serve(t, New(handlertest.NoopLogger(), mockService), handlertest.Request{
				Method: http.MethodGet, Target: "/api/v1/notification-settings",
			})

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
