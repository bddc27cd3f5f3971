package list

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

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userUID string, limit *int, offset int) ([]*models.Subscription, error) {
	args := m.Called(ctx, userUID, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "без пагинации",
			target: "/api/v1/subscriptions",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, handlertest.UserUID, (*int)(nil), 0).
					Return([]*models.Subscription{{ID: 1, Name: "Netflix"}, {ID: 2, Name: "Spotify"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Spotify"`,
		},
		{
			name:   "limit и offset",
			target: "/api/v1/subscriptions?limit=5&offset=10",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, handlertest.UserUID, handlertest.Ptr(5), 10).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":[]}`,
		},
		{
			name:           "некорректный limit",
			target:         "/api/v1/subscriptions?limit=-1&offset=x",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"offset":["must be a non-negative integer"]`,
		},
		{
			name:   "ошибка сервиса",
			target: "/api/v1/subscriptions",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, handlertest.UserUID, (*int)(nil), 0).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not list subscriptions"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			w := handlertest.Serve(t, New(handlertest.NoopLogger(), mockService), handlertest.Request{
				Method: http.MethodGet,
				Target: tt.target,
			})

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
