package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/validation"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

func TestValidationError_FieldsByJSONName(t *testing.T) {
	price := -1.0
	req := models.DummySubscription{
		Name:            "",
		Price:           &price,
		BillingPeriod:   "daily",
		NextPaymentDate: "13-03-2025",
	}
	err := validation.New().Struct(req)
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, []string{"this field is required"}, resp.Fields["name"])
	assert.Equal(t, []string{"ensure this value is greater than or equal to 0"}, resp.Fields["price"])
	assert.Equal(t, []string{`"daily" is not a valid choice`}, resp.Fields["billing_period"])
	assert.Equal(t, []string{models.ErrInvalidDate.Error()}, resp.Fields["next_payment_date"])
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantFields Fields
	}{
		{
			name:       "field error",
			err:        fmt.Errorf("storage: %w", models.NewFieldError("name", models.ErrDuplicateName)),
			wantStatus: http.StatusBadRequest,
			wantFields: Fields{"name": {models.ErrDuplicateName.Error()}},
		},
		{name: "not found", err: fmt.Errorf("op: %w", models.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "forbidden", err: models.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "user exists", err: models.ErrUserExists, wantStatus: http.StatusConflict},
		{name: "invalid credentials", err: models.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "unknown", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := FromError(tt.err, "internal error")
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.wantFields, resp.Fields)
			if status == http.StatusInternalServerError {
				assert.Equal(t, "internal error", resp.Error)
			}
		})
	}
}
