package friendcreate

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

func (m *MockService) Create(ctx context.Context, userUID, toUID string) (*models.FriendRequest, error) {
	args := m.Called(ctx, userUID, toUID)
	if res := args.Get(0); res != nil {
		return res.(*models.FriendRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	const bob = "22222222-2222-2222-2222-222222222222"

	tests := []struct {
		name           string
		body           any
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "заявка создана",
			body: models.DummyFriendRequest{ToUser: bob},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, handlertest.UserUID, bob).Return(&models.FriendRequest{
					ID: 1, FromUserUID: handlertest.UserUID, ToUserUID: bob, Status: models.FriendRequestPending,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"status":"pending"`,
		},
		{
			name:           "to_user не uuid",
			body:           models.DummyFriendRequest{ToUser: "bob"},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"to_user":["must be a valid UUID"]`,
		},
		{
			name: "заявка самому себе",
			body: models.DummyFriendRequest{ToUser: handlertest.UserUID},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, handlertest.UserUID, handlertest.UserUID).
					Return(nil, models.NewFieldError("to_user", models.ErrSelfFriendRequest))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"to_user":["cannot send friend request to yourself"]`,
		},
		{
			name: "повторная заявка",
			body: models.DummyFriendRequest{ToUser: bob},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, handlertest.UserUID, bob).
					Return(nil, models.NewFieldError("to_user", models.ErrFriendRequestExists))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"to_user":["friend request already exists"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			w := handlertest.Serve(t, New(handlertest.NoopLogger(), mockService), handlertest.Request{
				Method: http.MethodPost, Target: "/api/v1/friends", Body: tt.body,
			})

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
