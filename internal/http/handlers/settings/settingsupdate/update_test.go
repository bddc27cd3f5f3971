package settingsupdate

import (
	"context"
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

func (m *MockService) Update(ctx context.Context, userUID string, id int, req models.DummyNotificationSettings) (*models.NotificationSettings, error) {
	args := m.Called(ctx, userUID, id, req)
	if res := args.Get(0); res != nil {
		return res.(*models.NotificationSettings), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	req := models.DummyNotificationSettings{EmailEnabled: handlertest.Ptr(false), PushEnabled: handlertest.Ptr(true)}

	tests := []struct {
		name           string
		id             string
		body           any
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное обновление",
			id:   "1",
			body: req,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, handlertest.UserUID, 1, req).
					Return(&models.NotificationSettings{ID: 1, DaysBefore: 3, PushEnabled: true}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"push_enabled":true`,
		},
		{
			name:           "days_before больше года",
			id:             "1",
			body:           models.DummyNotificationSettings{DaysBefore: handlertest.Ptr(400)},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"days_before":["ensure this value is less than or equal to 365"]`,
		},
		{
			name: "чужие настройки",
			id:   "9",
			body: req,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, handlertest.UserUID, 9, req).Return(nil, models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			w := handlertest.Serve(t, New(handlertest.NoopLogger(), mockService), handlertest.Request{
				Method: http.MethodPut,
				Target: "/api/v1/notification-settings/" + tt.id,
				Body:   tt.body,
				Params: map[string]string{"id": tt.id},
			})

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
