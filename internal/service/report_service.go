package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/segyhp/propmgmt/internal/domain"
	"github.com/segyhp/propmgmt/internal/repository"
	customError "github.com/segyhp/propmgmt/pkg/errors"
	"github.com/segyhp/propmgmt/pkg/utils"

	"github.com/shopspring/decimal"
)

// ReportService builds balance reports from repository data. Every report is
// computed fresh per call; the service holds no state besides its clock.
type ReportService struct {
	PropertyRepo repository.PropertyRepository
	UnitRepo     repository.UnitRepository
	TenantRepo   repository.TenantRepository
	LeaseRepo    repository.LeaseRepository
	PaymentRepo  repository.PaymentRepository
	now          func() time.Time
}

type ReportOption func(*ReportService)

// WithClock overrides the source of "today"
func WithClock(now func() time.Time) ReportOption {
	return func(s *ReportService) {
		s.now = now
	}
}

func NewReportService(repos *repository.Repositories, opts ...ReportOption) *ReportService {
	s := &ReportService{
		PropertyRepo: repos.Properties,
		UnitRepo:     repos.Units,
		TenantRepo:   repos.Tenants,
		LeaseRepo:    repos.Leases,
		PaymentRepo:  repos.Payments,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// today is the current calendar date in UTC
func (s *ReportService) today() domain.Date {
	return domain.DateOf(s.now().UTC())
}

// unitLedger is the balance state of one unit as of today
type unitLedger struct {
	activeTenants []*domain.Tenant
	lease         *domain.Lease
	rentPayments  []*domain.Payment
	totalDue      decimal.Decimal
	totalPaid     decimal.Decimal
	missing       []domain.MissingPaymentPeriod
}

func (l *unitLedger) balance() decimal.Decimal {
	return l.totalDue.Sub(l.totalPaid)
}

// TenantBalanceReport summarizes a tenant's payments and the balance of their
// current lease
func (s *ReportService) TenantBalanceReport(ctx context.Context, tenantID int64) (*domain.TenantBalanceReport, error) {
	// 1. Resolve tenant, then its unit and property when present
	tenant, err := s.TenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, lookupError(err, customError.WrapTenantNotFound(tenantID))
	}

	report := &domain.TenantBalanceReport{
		TenantID:   tenant.TenantID,
		TenantName: tenant.Name,
		UnitID:     tenant.UnitID,
	}

	if tenant.UnitID != nil {
		unit, err := s.UnitRepo.GetByID(ctx, *tenant.UnitID)
		switch {
		case err == nil:
			propertyID := unit.PropertyID
			report.PropertyID = &propertyID
		case !errors.Is(err, repository.ErrNotFound):
			return nil, customError.WrapDatabaseError(err)
		}
	}

	// 2. Payment summary across every payment the tenant made
	payments, err := s.PaymentRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	report.PaymentSummary = summarizePayments(payments)

	// 3. Lease balance for the current lease
	leases, err := s.LeaseRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if lease := selectActiveLease(leases); lease != nil {
		months := s.monthsActive(lease)
		due := utils.RentDue(lease.RentAmount, months)
		paid := sumAmounts(filterPayments(payments, func(p *domain.Payment) bool {
			return p.LeaseID == lease.LeaseID && p.IsRent()
		}))

		report.LeaseSummary = &domain.LeaseFinancialSummary{
			LeaseID:      lease.LeaseID,
			RentAmount:   lease.RentAmount,
			StartDate:    lease.StartDate,
			EndDate:      lease.EndDate,
			MonthsActive: months,
			TotalRentDue: due,
			TotalPaid:    paid,
			Balance:      due.Sub(paid),
		}
	}

	return report, nil
}

// PropertyFinancialSummary rolls up rent due and paid across every active
// lease of every occupied unit in a property
func (s *ReportService) PropertyFinancialSummary(ctx context.Context, propertyID int64) (*domain.PropertyFinancialSummary, error) {
	property, err := s.PropertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, lookupError(err, customError.WrapPropertyNotFound(propertyID))
	}

	units, err := s.UnitRepo.GetByProperty(ctx, propertyID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	summary := &domain.PropertyFinancialSummary{
		PropertyID:    property.ID,
		PropertyName:  property.Name,
		UnitCount:     len(units),
		TotalRentDue:  decimal.Zero,
		TotalPaid:     decimal.Zero,
		UnitSummaries: make([]domain.UnitFinancialSummary, 0, len(units)),
	}

	for _, unit := range units {
		unitSummary := domain.UnitFinancialSummary{
			UnitID:   unit.UnitID,
			UnitName: unit.UnitName,
			Tenants:  []domain.TenantFinancialSummary{},
			RentDue:  decimal.Zero,
			RentPaid: decimal.Zero,
			Balance:  decimal.Zero,
		}

		activeTenants, err := s.activeTenants(ctx, unit.UnitID)
		if err != nil {
			return nil, err
		}
		if len(activeTenants) == 0 {
			summary.UnitSummaries = append(summary.UnitSummaries, unitSummary)
			continue
		}

		unitSummary.Occupied = true
		summary.OccupiedUnits++

		leases, err := s.LeaseRepo.GetByUnit(ctx, unit.UnitID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		for _, lease := range leases {
			if !lease.IsActive() {
				continue
			}

			due := utils.RentDue(lease.RentAmount, s.monthsActive(lease))
			rentPayments, err := s.leaseRentPayments(ctx, lease.LeaseID)
			if err != nil {
				return nil, err
			}
			paid := sumAmounts(rentPayments)

			unitSummary.RentDue = unitSummary.RentDue.Add(due)
			unitSummary.RentPaid = unitSummary.RentPaid.Add(paid)

			for _, tenantID := range lease.TenantIDs {
				tenant, err := s.TenantRepo.GetByID(ctx, tenantID)
				if errors.Is(err, repository.ErrNotFound) {
					continue
				}
				if err != nil {
					return nil, customError.WrapDatabaseError(err)
				}
				unitSummary.Tenants = append(unitSummary.Tenants, domain.TenantFinancialSummary{
					TenantID:   tenant.TenantID,
					TenantName: tenant.Name,
					LeaseID:    lease.LeaseID,
					RentAmount: lease.RentAmount,
					RentDue:    due,
					RentPaid:   paid,
					Balance:    due.Sub(paid),
				})
			}
		}

		unitSummary.Balance = unitSummary.RentDue.Sub(unitSummary.RentPaid)
		summary.TotalRentDue = summary.TotalRentDue.Add(unitSummary.RentDue)
		summary.TotalPaid = summary.TotalPaid.Add(unitSummary.RentPaid)
		summary.UnitSummaries = append(summary.UnitSummaries, unitSummary)
	}

	summary.TotalBalance = summary.TotalRentDue.Sub(summary.TotalPaid)
	return summary, nil
}

// UnitBalanceReport details occupancy, the current lease balance, rent payment
// history and unpaid months of a unit
func (s *ReportService) UnitBalanceReport(ctx context.Context, unitID int64) (*domain.UnitBalanceReport, error) {
	unit, err := s.UnitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, lookupError(err, customError.WrapUnitNotFound(unitID))
	}

	property, err := s.PropertyRepo.GetByID(ctx, unit.PropertyID)
	if err != nil {
		return nil, lookupError(err, customError.WrapPropertyNotFound(unit.PropertyID))
	}

	ledger, err := s.unitLedger(ctx, unit)
	if err != nil {
		return nil, err
	}

	report := &domain.UnitBalanceReport{
		UnitID:         unit.UnitID,
		UnitName:       unit.UnitName,
		PropertyID:     property.ID,
		PropertyName:   property.Name,
		Status:         domain.UnitStatusVacant,
		Tenants:        make([]domain.TenantInfo, 0, len(ledger.activeTenants)),
		TotalDue:       ledger.totalDue,
		TotalPaid:      ledger.totalPaid,
		Balance:        ledger.balance(),
		MissingPeriods: ledger.missing,
		PaymentHistory: []domain.PaymentHistoryEntry{},
	}

	if len(ledger.activeTenants) > 0 {
		report.Status = domain.UnitStatusOccupied
	}
	for _, t := range ledger.activeTenants {
		report.Tenants = append(report.Tenants, domain.TenantInfo{
			TenantID: t.TenantID,
			Name:     t.Name,
			Email:    t.Email,
			Phone:    t.Phone,
			Status:   t.Status,
		})
	}

	if lease := ledger.lease; lease != nil {
		leaseID, rent := lease.LeaseID, lease.RentAmount
		start, end := lease.StartDate, lease.EndDate
		report.ActiveLeaseID = &leaseID
		report.RentAmount = &rent
		report.LeaseStartDate = &start
		report.LeaseEndDate = &end

		// newest first
		for i := len(ledger.rentPayments) - 1; i >= 0; i-- {
			p := ledger.rentPayments[i]
			report.PaymentHistory = append(report.PaymentHistory, domain.PaymentHistoryEntry{
				PaymentID: p.PaymentID,
				Date:      p.PaymentDate,
				Amount:    p.Amount,
				Method:    p.PaymentMethod,
			})
		}
	}

	return report, nil
}

// PropertyBalanceReport lists the balance of every unit in a property, units
// owing the most first
func (s *ReportService) PropertyBalanceReport(ctx context.Context, propertyID int64) (*domain.PropertyBalanceReport, error) {
	property, err := s.PropertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, lookupError(err, customError.WrapPropertyNotFound(propertyID))
	}

	units, err := s.UnitRepo.GetByProperty(ctx, propertyID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	report := &domain.PropertyBalanceReport{
		PropertyID:   property.ID,
		PropertyName: property.Name,
		ReportDate:   s.today(),
		UnitCount:    len(units),
		TotalDue:     decimal.Zero,
		TotalPaid:    decimal.Zero,
		UnitBalances: make([]domain.UnitBalanceInfo, 0, len(units)),
	}

	for _, unit := range units {
		ledger, err := s.unitLedger(ctx, unit)
		if err != nil {
			return nil, err
		}

		info := domain.UnitBalanceInfo{
			UnitID:              unit.UnitID,
			UnitName:            unit.UnitName,
			Occupied:            len(ledger.activeTenants) > 0,
			TenantCount:         len(ledger.activeTenants),
			TotalDue:            ledger.totalDue,
			TotalPaid:           ledger.totalPaid,
			Balance:             ledger.balance(),
			HasMissingPayments:  len(ledger.missing) > 0,
			MissingPaymentCount: len(ledger.missing),
		}
		if ledger.lease != nil {
			rent := ledger.lease.RentAmount
			info.RentAmount = &rent
		}

		if info.Occupied {
			report.OccupiedUnits++
		}
		if info.Balance.IsPositive() {
			report.UnitsWithBalance++
		}
		report.TotalDue = report.TotalDue.Add(info.TotalDue)
		report.TotalPaid = report.TotalPaid.Add(info.TotalPaid)
		report.UnitBalances = append(report.UnitBalances, info)
	}

	report.TotalBalance = report.TotalDue.Sub(report.TotalPaid)

	sort.SliceStable(report.UnitBalances, func(i, j int) bool {
		return report.UnitBalances[i].Balance.GreaterThan(report.UnitBalances[j].Balance)
	})

	return report, nil
}

// AllPropertiesBalanceReport rolls up the balance report of every property,
// properties owing the most first. Properties removed while the report is
// built are skipped.
func (s *ReportService) AllPropertiesBalanceReport(ctx context.Context) (*domain.AllPropertiesBalanceReport, error) {
	properties, err := s.PropertyRepo.GetAll(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	report := &domain.AllPropertiesBalanceReport{
		ReportDate:        s.today(),
		TotalDue:          decimal.Zero,
		TotalPaid:         decimal.Zero,
		PropertySummaries: make([]domain.PropertyBalanceSummary, 0, len(properties)),
	}

	for _, property := range properties {
		propertyReport, err := s.PropertyBalanceReport(ctx, property.ID)
		if errors.Is(err, customError.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		report.TotalUnits += propertyReport.UnitCount
		report.OccupiedUnits += propertyReport.OccupiedUnits
		report.TotalDue = report.TotalDue.Add(propertyReport.TotalDue)
		report.TotalPaid = report.TotalPaid.Add(propertyReport.TotalPaid)

		report.PropertySummaries = append(report.PropertySummaries, domain.PropertyBalanceSummary{
			PropertyID:       propertyReport.PropertyID,
			Name:             propertyReport.PropertyName,
			UnitCount:        propertyReport.UnitCount,
			OccupiedUnits:    propertyReport.OccupiedUnits,
			TotalDue:         propertyReport.TotalDue,
			TotalPaid:        propertyReport.TotalPaid,
			Balance:          decimal.NewNullDecimal(propertyReport.TotalBalance),
			UnitsWithBalance: propertyReport.UnitsWithBalance,
		})
	}

	report.PropertyCount = len(report.PropertySummaries)
	report.TotalBalance = report.TotalDue.Sub(report.TotalPaid)
	SortPropertySummaries(report.PropertySummaries)

	return report, nil
}

// BalanceReport dispatches to the unit, property or portfolio report.
// A unit id takes precedence over a property id.
func (s *ReportService) BalanceReport(ctx context.Context, query domain.BalanceQuery) (interface{}, error) {
	switch {
	case query.UnitID != nil:
		return s.UnitBalanceReport(ctx, *query.UnitID)
	case query.PropertyID != nil:
		return s.PropertyBalanceReport(ctx, *query.PropertyID)
	default:
		return s.AllPropertiesBalanceReport(ctx)
	}
}

// SortPropertySummaries orders summaries by balance descending, treating a
// missing balance as zero. Equal balances keep their order.
func SortPropertySummaries(summaries []domain.PropertyBalanceSummary) {
	balance := func(s domain.PropertyBalanceSummary) decimal.Decimal {
		if !s.Balance.Valid {
			return decimal.Zero
		}
		return s.Balance.Decimal
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return balance(summaries[i]).GreaterThan(balance(summaries[j]))
	})
}

// unitLedger computes occupancy and the balance of the selected active lease
// of a unit
func (s *ReportService) unitLedger(ctx context.Context, unit *domain.Unit) (*unitLedger, error) {
	activeTenants, err := s.activeTenants(ctx, unit.UnitID)
	if err != nil {
		return nil, err
	}

	leases, err := s.LeaseRepo.GetByUnit(ctx, unit.UnitID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	ledger := &unitLedger{
		activeTenants: activeTenants,
		lease:         selectActiveLease(leases),
		rentPayments:  []*domain.Payment{},
		totalDue:      decimal.Zero,
		totalPaid:     decimal.Zero,
		missing:       []domain.MissingPaymentPeriod{},
	}
	if ledger.lease == nil {
		return ledger, nil
	}

	ledger.rentPayments, err = s.leaseRentPayments(ctx, ledger.lease.LeaseID)
	if err != nil {
		return nil, err
	}

	ledger.totalDue = utils.RentDue(ledger.lease.RentAmount, s.monthsActive(ledger.lease))
	ledger.totalPaid = sumAmounts(ledger.rentPayments)
	ledger.missing = MissingPaymentPeriods(ledger.lease.StartDate, ledger.lease.RentAmount, ledger.rentPayments, s.today())

	return ledger, nil
}

func (s *ReportService) activeTenants(ctx context.Context, unitID int64) ([]*domain.Tenant, error) {
	tenants, err := s.TenantRepo.GetByUnit(ctx, unitID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	active := make([]*domain.Tenant, 0, len(tenants))
	for _, t := range tenants {
		if t.IsActive() {
			active = append(active, t)
		}
	}
	return active, nil
}

// leaseRentPayments returns the rent payments of a lease ordered by date
func (s *ReportService) leaseRentPayments(ctx context.Context, leaseID int64) ([]*domain.Payment, error) {
	payments, err := s.PaymentRepo.GetByLease(ctx, leaseID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return filterPayments(payments, (*domain.Payment).IsRent), nil
}

func (s *ReportService) monthsActive(lease *domain.Lease) int {
	return utils.MonthsBetween(lease.StartDate.Time, lease.EndDate.Time, s.today().Time)
}

// selectActiveLease picks the active lease with the latest start date.
// Leases starting on the same day keep repository order.
func selectActiveLease(leases []*domain.Lease) *domain.Lease {
	var selected *domain.Lease
	for _, lease := range leases {
		if !lease.IsActive() {
			continue
		}
		if selected == nil || lease.StartDate.After(selected.StartDate) {
			selected = lease
		}
	}
	return selected
}

func summarizePayments(payments []*domain.Payment) domain.PaymentSummary {
	summary := domain.PaymentSummary{
		Count:                 len(payments),
		TotalAmount:           decimal.Zero,
		RentAmount:            decimal.Zero,
		SecurityDepositAmount: decimal.Zero,
		LateFeeAmount:         decimal.Zero,
		UtilityAmount:         decimal.Zero,
		MaintenanceAmount:     decimal.Zero,
		OtherAmount:           decimal.Zero,
	}

	for _, p := range payments {
		summary.TotalAmount = summary.TotalAmount.Add(p.Amount)
		switch p.PaymentType {
		case domain.PaymentTypeRent:
			summary.RentAmount = summary.RentAmount.Add(p.Amount)
		case domain.PaymentTypeSecurityDeposit:
			summary.SecurityDepositAmount = summary.SecurityDepositAmount.Add(p.Amount)
		case domain.PaymentTypeLateFee:
			summary.LateFeeAmount = summary.LateFeeAmount.Add(p.Amount)
		case domain.PaymentTypeUtility:
			summary.UtilityAmount = summary.UtilityAmount.Add(p.Amount)
		case domain.PaymentTypeMaintenance:
			summary.MaintenanceAmount = summary.MaintenanceAmount.Add(p.Amount)
		case domain.PaymentTypeOther:
			summary.OtherAmount = summary.OtherAmount.Add(p.Amount)
		}
	}
	return summary
}

func filterPayments(payments []*domain.Payment, keep func(*domain.Payment) bool) []*domain.Payment {
	filtered := make([]*domain.Payment, 0, len(payments))
	for _, p := range payments {
		if keep(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func sumAmounts(payments []*domain.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// lookupError maps a missing row to the entity's not-found error and anything
// else to a database error
func lookupError(err error, notFound *customError.BusinessError) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return customError.WrapDatabaseError(err)
}
