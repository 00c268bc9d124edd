package service

import (
	"testing"

	"github.com/segyhp/propmgmt/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rentPayment(id int64, date domain.Date, amount int64) *domain.Payment {
	return &domain.Payment{
		PaymentID:     id,
		LeaseID:       1,
		TenantID:      1,
		Amount:        decimal.NewFromInt(amount),
		PaymentDate:   date,
		PaymentMethod: domain.PaymentMethodCheck,
		PaymentType:   domain.PaymentTypeRent,
	}
}

func TestMissingPaymentPeriods_NoPayments(t *testing.T) {
	rent := decimal.NewFromInt(1000)
	periods := MissingPaymentPeriods(domain.NewDate(2023, 1, 1), rent, nil, domain.NewDate(2023, 3, 15))

	require.Len(t, periods, 3)
	for i, p := range periods {
		assert.Equal(t, 2023, p.Year)
		assert.Equal(t, i+1, p.Month)
		assert.True(t, p.AmountDue.Equal(rent))
	}
	assert.Equal(t, "January", periods[0].MonthName)
	assert.Equal(t, "March", periods[2].MonthName)
}

func TestMissingPaymentPeriods_OnePayment(t *testing.T) {
	rent := decimal.NewFromInt(1000)
	payments := []*domain.Payment{rentPayment(1, domain.NewDate(2023, 2, 15), 1000)}

	periods := MissingPaymentPeriods(domain.NewDate(2023, 1, 1), rent, payments, domain.NewDate(2023, 3, 15))

	require.Len(t, periods, 2)
	assert.Equal(t, 1, periods[0].Month)
	assert.Equal(t, 3, periods[1].Month)
	for _, p := range periods {
		assert.True(t, p.AmountDue.Equal(rent))
	}
}

func TestMissingPaymentPeriods_PartialPaymentSatisfiesMonth(t *testing.T) {
	payments := []*domain.Payment{rentPayment(1, domain.NewDate(2023, 1, 20), 1)}

	periods := MissingPaymentPeriods(domain.NewDate(2023, 1, 1), decimal.NewFromInt(1000), payments, domain.NewDate(2023, 1, 31))

	assert.Empty(t, periods)
	assert.NotNil(t, periods)
}

func TestMissingPaymentPeriods_MonthEndStartCrossesYear(t *testing.T) {
	periods := MissingPaymentPeriods(domain.NewDate(2022, 10, 31), decimal.NewFromInt(900), nil, domain.NewDate(2023, 3, 1))

	require.Len(t, periods, 6)
	got := make([][2]int, 0, len(periods))
	for _, p := range periods {
		got = append(got, [2]int{p.Year, p.Month})
	}
	assert.Equal(t, [][2]int{{2022, 10}, {2022, 11}, {2022, 12}, {2023, 1}, {2023, 2}, {2023, 3}}, got)
}

func TestMissingPaymentPeriods_FutureStart(t *testing.T) {
	periods := MissingPaymentPeriods(domain.NewDate(2024, 1, 1), decimal.NewFromInt(900), nil, domain.NewDate(2023, 12, 31))
	assert.Empty(t, periods)
}

func TestMissingPaymentPeriods_DoesNotMutateInput(t *testing.T) {
	payments := []*domain.Payment{
		rentPayment(2, domain.NewDate(2023, 3, 1), 1000),
		rentPayment(1, domain.NewDate(2023, 1, 1), 1000),
	}

	MissingPaymentPeriods(domain.NewDate(2023, 1, 1), decimal.NewFromInt(1000), payments, domain.NewDate(2023, 3, 15))

	assert.Equal(t, int64(2), payments[0].PaymentID)
	assert.Equal(t, "2023-03-01", payments[0].PaymentDate.String())
}
