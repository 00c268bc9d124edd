package service

import (
	"context"
	"errors"

	"github.com/segyhp/propmgmt/internal/domain"
	customError "github.com/segyhp/propmgmt/pkg/errors"
)

// UnitsWithMissingPayments returns the unit report of every unit whose
// current lease has at least one unpaid month
func (s *ReportService) UnitsWithMissingPayments(ctx context.Context) ([]*domain.UnitBalanceReport, error) {
	units, err := s.UnitRepo.GetAll(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	reports := []*domain.UnitBalanceReport{}
	for _, unit := range units {
		report, err := s.UnitBalanceReport(ctx, unit.UnitID)
		if errors.Is(err, customError.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(report.MissingPeriods) > 0 {
			reports = append(reports, report)
		}
	}
	return reports, nil
}

// TenantsWithBalance returns the report of every active tenant whose current
// lease has an outstanding balance
func (s *ReportService) TenantsWithBalance(ctx context.Context) ([]*domain.TenantBalanceReport, error) {
	tenants, err := s.TenantRepo.GetAll(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	reports := []*domain.TenantBalanceReport{}
	for _, tenant := range tenants {
		if !tenant.IsActive() {
			continue
		}
		report, err := s.TenantBalanceReport(ctx, tenant.TenantID)
		if errors.Is(err, customError.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if report.LeaseSummary != nil && report.LeaseSummary.Balance.IsPositive() {
			reports = append(reports, report)
		}
	}
	return reports, nil
}
