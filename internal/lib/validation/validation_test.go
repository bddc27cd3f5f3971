package validation

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestNew_SubscriptionDates(t *testing.T) {
	valid := func() models.DummySubscription {
		return models.DummySubscription{
			Name:            "Netflix",
			Price:           ptr(9.99),
			BillingPeriod:   "monthly",
			NextPaymentDate: "2026-01-01",
		}
	}

	tests := []struct {
		name      string
		modify    func(*models.DummySubscription)
		wantField string
	}{
		{name: "корректные даты", modify: func(_ *models.DummySubscription) {}},
		{name: "корректная дата окончания пробного периода", modify: func(r *models.DummySubscription) {
			r.TrialEndDate = ptr("2026-02-01")
		}},
		{name: "неверный формат даты платежа", modify: func(r *models.DummySubscription) {
			r.NextPaymentDate = "01.01.2026"
		}, wantField: "next_payment_date"},
		{name: "несуществующая дата платежа", modify: func(r *models.DummySubscription) {
			r.NextPaymentDate = "2026-02-30"
		}, wantField: "next_payment_date"},
		{name: "неверная дата окончания пробного периода", modify: func(r *models.DummySubscription) {
			r.TrialEndDate = ptr("tomorrow")
		}, wantField: "trial_end_date"},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.modify(&req)

			var err error
			require.NotPanics(t, func() { err = v.Struct(req) })
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			verrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field())
			assert.Equal(t, DateTag, verrs[0].Tag())
		})
	}
}
