// Package billing приводит стоимость подписок с разными периодами списания
// к месячному и годовому эквиваленту и сдвигает даты очередного платежа.
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

var (
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
)

// Monthly возвращает месячный эквивалент цены.
func Monthly(price decimal.Decimal, period models.BillingPeriod) (decimal.Decimal, error) {
	switch period {
	case models.BillingMonthly:
		return price, nil
	case models.BillingYearly:
		return price.Div(monthsPerYear), nil
	case models.BillingWeekly:
		return price.Mul(weeksPerYear).Div(monthsPerYear), nil
	default:
		return decimal.Zero, fmt.Errorf("billing.Monthly: unknown billing period %q", period)
	}
}

// Yearly возвращает годовой эквивалент цены.
func Yearly(price decimal.Decimal, period models.BillingPeriod) (decimal.Decimal, error) {
	switch period {
	case models.BillingMonthly:
		return price.Mul(monthsPerYear), nil
	case models.BillingYearly:
		return price, nil
	case models.BillingWeekly:
		return price.Mul(weeksPerYear), nil
	default:
		return decimal.Zero, fmt.Errorf("billing.Yearly: unknown billing period %q", period)
	}
}

// Next возвращает дату платежа, следующую за from через один период.
func Next(from models.Date, period models.BillingPeriod) (models.Date, error) {
	return shift(from, period, 1)
}

// Advance сдвигает дату платежа на целое число периодов, пока она не станет не раньше today.
// Каждый шаг отсчитывается от from, поэтому платёж 31-го числа после короткого месяца
// возвращается на последний день следующих месяцев.
func Advance(from, today models.Date, period models.BillingPeriod) (models.Date, error) {
	if !from.Before(today.Time) {
		if _, err := shift(from, period, 0); err != nil {
			return from, err
		}
		return from, nil
	}
	for n := 1; ; n++ {
		next, err := shift(from, period, n)
		if err != nil {
			return from, err
		}
		if !next.Before(today.Time) {
			return next, nil
		}
	}
}

// shift возвращает дату через n периодов от anchor.
func shift(anchor models.Date, period models.BillingPeriod, n int) (models.Date, error) {
	switch period {
	case models.BillingWeekly:
		return models.NewDate(anchor.AddDate(0, 0, 7*n)), nil
	case models.BillingMonthly:
		return addMonths(anchor, n), nil
	case models.BillingYearly:
		return addMonths(anchor, 12*n), nil
	default:
		return anchor, fmt.Errorf("billing: unknown billing period %q", period)
	}
}

// addMonths прибавляет n месяцев. День, которого нет в целевом месяце, заменяется последним днём месяца.
func addMonths(d models.Date, n int) models.Date {
	y, m, day := d.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return models.NewDate(time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC))
}
