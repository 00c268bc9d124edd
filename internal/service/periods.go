package service

import (
	"time"

	"github.com/segyhp/propmgmt/internal/domain"
	"github.com/segyhp/propmgmt/pkg/utils"

	"github.com/shopspring/decimal"
)

type yearMonth struct {
	year  int
	month time.Month
}

func (ym yearMonth) after(other yearMonth) bool {
	if ym.year != other.year {
		return ym.year > other.year
	}
	return ym.month > other.month
}

// MissingPaymentPeriods lists every calendar month from the lease start
// through today's month that has no payment recorded. Any payment in a month
// satisfies it regardless of amount.
func MissingPaymentPeriods(leaseStart domain.Date, monthlyRent decimal.Decimal, payments []*domain.Payment, today domain.Date) []domain.MissingPaymentPeriod {
	paid := make(map[yearMonth]struct{}, len(payments))
	for _, p := range payments {
		paid[yearMonth{p.PaymentDate.Year(), p.PaymentDate.Month()}] = struct{}{}
	}

	last := yearMonth{today.Year(), today.Month()}
	periods := []domain.MissingPaymentPeriod{}

	for current := leaseStart.Time; ; current = utils.NextMonth(current) {
		ym := yearMonth{current.Year(), current.Month()}
		if ym.after(last) {
			break
		}
		if _, ok := paid[ym]; ok {
			continue
		}
		periods = append(periods, domain.MissingPaymentPeriod{
			Year:      ym.year,
			Month:     int(ym.month),
			MonthName: utils.MonthName(int(ym.month)),
			AmountDue: monthlyRent,
		})
	}

	return periods
}
