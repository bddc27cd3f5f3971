package settingsremove

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

func (m *MockService) Delete(ctx context.Context, userUID string, id int) error {
	return m.Called(ctx, userUID, id).Error(0)
}

func TestRemoveHandler(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "успешное удаление", expectedStatus: http.StatusNoContent},
		{name: "не найдены", err: models.ErrNotFound, expectedStatus: http.StatusNotFound},
		{name: "ошибка сервиса", err: errors.New("db error"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockService.On("Delete", mock.Anything, handlertest.UserUID, 3).Return(tt.err)

			w := handlertest.Serve(t, New(handlertest.NoopLogger(), mockService), handlertest.Request{
				Method: http.MethodDelete,
				Target: "/api/v1/notification-settings/3",
				Params: map[string]string{"id": "3"},
			})

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
