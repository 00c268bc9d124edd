package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// report consumers expect amounts as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	UnitStatusOccupied = "occupied"
	UnitStatusVacant   = "vacant"
)

// PaymentSummary breaks a set of payments down by payment type
type PaymentSummary struct {
	Count                 int             `json:"count"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
	RentAmount            decimal.Decimal `json:"rent_amount"`
	SecurityDepositAmount decimal.Decimal `json:"security_deposit_amount"`
	LateFeeAmount         decimal.Decimal `json:"late_fee_amount"`
	UtilityAmount         decimal.Decimal `json:"utility_amount"`
	MaintenanceAmount     decimal.Decimal `json:"maintenance_amount"`
	OtherAmount           decimal.Decimal `json:"other_amount"`
}

// LeaseFinancialSummary is rent due against rent paid for one lease.
// A negative balance is a credit.
type LeaseFinancialSummary struct {
	LeaseID      int64           `json:"lease_id"`
	RentAmount   decimal.Decimal `json:"rent_amount"`
	StartDate    Date            `json:"start_date"`
	EndDate      Date            `json:"end_date"`
	MonthsActive int             `json:"months_active"`
	TotalRentDue decimal.Decimal `json:"total_rent_due"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	Balance      decimal.Decimal `json:"balance"`
}

// MissingPaymentPeriod is a month with rent due and no payment recorded
type MissingPaymentPeriod struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	MonthName string          `json:"month_name"`
	AmountDue decimal.Decimal `json:"amount_due"`
}

type TenantBalanceReport struct {
	TenantID       int64                  `json:"tenant_id"`
	TenantName     string                 `json:"tenant_name"`
	UnitID         *int64                 `json:"unit_id"`
	PropertyID     *int64                 `json:"property_id"`
	LeaseSummary   *LeaseFinancialSummary `json:"lease_summary"`
	PaymentSummary PaymentSummary         `json:"payment_summary"`
}

type TenantInfo struct {
	TenantID int64   `json:"tenant_id"`
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Status   string  `json:"status"`
}

type PaymentHistoryEntry struct {
	PaymentID int64           `json:"payment_id"`
	Date      Date            `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
}

type UnitBalanceReport struct {
	UnitID         int64                  `json:"unit_id"`
	UnitName       string                 `json:"unit_name"`
	PropertyID     int64                  `json:"property_id"`
	PropertyName   string                 `json:"property_name"`
	Status         string                 `json:"status"`
	Tenants        []TenantInfo           `json:"tenants"`
	ActiveLeaseID  *int64                 `json:"active_lease_id"`
	RentAmount     *decimal.Decimal       `json:"rent_amount"`
	LeaseStartDate *Date                  `json:"lease_start_date"`
	LeaseEndDate   *Date                  `json:"lease_end_date"`
	TotalDue       decimal.Decimal        `json:"total_due"`
	TotalPaid      decimal.Decimal        `json:"total_paid"`
	Balance        decimal.Decimal        `json:"balance"`
	MissingPeriods []MissingPaymentPeriod `json:"missing_periods"`
	PaymentHistory []PaymentHistoryEntry  `json:"payment_history"`
}

// UnitBalanceInfo is the per-unit row of a property balance report
type UnitBalanceInfo struct {
	UnitID              int64            `json:"unit_id"`
	UnitName            string           `json:"unit_name"`
	Occupied            bool             `json:"occupied"`
	TenantCount         int              `json:"tenant_count"`
	RentAmount          *decimal.Decimal `json:"rent_amount"`
	TotalDue            decimal.Decimal  `json:"total_due"`
	TotalPaid           decimal.Decimal  `json:"total_paid"`
	Balance             decimal.Decimal  `json:"balance"`
	HasMissingPayments  bool             `json:"has_missing_payments"`
	MissingPaymentCount int              `json:"missing_payment_count"`
}

type PropertyBalanceReport struct {
	PropertyID       int64             `json:"property_id"`
	PropertyName     string            `json:"property_name"`
	ReportDate       Date              `json:"report_date"`
	UnitCount        int               `json:"unit_count"`
	OccupiedUnits    int               `json:"occupied_units"`
	TotalDue         decimal.Decimal   `json:"total_due"`
	TotalPaid        decimal.Decimal   `json:"total_paid"`
	TotalBalance     decimal.Decimal   `json:"total_balance"`
	UnitsWithBalance int               `json:"units_with_balance"`
	UnitBalances     []UnitBalanceInfo `json:"unit_balances"`
}

// PropertyBalanceSummary is the per-property row of the portfolio report.
// Balance is nullable; an invalid balance sorts as zero.
type PropertyBalanceSummary struct {
	PropertyID       int64               `json:"property_id"`
	Name             string              `json:"name"`
	UnitCount        int                 `json:"unit_count"`
	OccupiedUnits    int                 `json:"occupied_units"`
	TotalDue         decimal.Decimal     `json:"total_due"`
	TotalPaid        decimal.Decimal     `json:"total_paid"`
	Balance          decimal.NullDecimal `json:"balance"`
	UnitsWithBalance int                 `json:"units_with_balance"`
}

type AllPropertiesBalanceReport struct {
	ReportDate        Date                     `json:"report_date"`
	PropertyCount     int                      `json:"property_count"`
	TotalUnits        int                      `json:"total_units"`
	OccupiedUnits     int                      `json:"occupied_units"`
	TotalDue          decimal.Decimal          `json:"total_due"`
	TotalPaid         decimal.Decimal          `json:"total_paid"`
	TotalBalance      decimal.Decimal          `json:"total_balance"`
	PropertySummaries []PropertyBalanceSummary `json:"property_summaries"`
}

type TenantFinancialSummary struct {
	TenantID   int64           `json:"tenant_id"`
	TenantName string          `json:"tenant_name"`
	LeaseID    int64           `json:"lease_id"`
	RentAmount decimal.Decimal `json:"rent_amount"`
	RentDue    decimal.Decimal `json:"rent_due"`
	RentPaid   decimal.Decimal `json:"rent_paid"`
	Balance    decimal.Decimal `json:"balance"`
}

type UnitFinancialSummary struct {
	UnitID   int64                    `json:"unit_id"`
	UnitName string                   `json:"unit_name"`
	Occupied bool                     `json:"occupied"`
	Tenants  []TenantFinancialSummary `json:"tenants"`
	RentDue  decimal.Decimal          `json:"rent_due"`
	RentPaid decimal.Decimal          `json:"rent_paid"`
	Balance  decimal.Decimal          `json:"balance"`
}

// PropertyFinancialSummary rolls every active lease of a property up into
// unit and tenant rows
type PropertyFinancialSummary struct {
	PropertyID    int64                  `json:"property_id"`
	PropertyName  string                 `json:"property_name"`
	UnitCount     int                    `json:"unit_count"`
	OccupiedUnits int                    `json:"occupied_units"`
	TotalRentDue  decimal.Decimal        `json:"total_rent_due"`
	TotalPaid     decimal.Decimal        `json:"total_paid"`
	TotalBalance  decimal.Decimal        `json:"total_balance"`
	UnitSummaries []UnitFinancialSummary `json:"unit_summaries"`
}

// BalanceQuery selects which balance report BalanceReport builds.
// UnitID wins over PropertyID; neither selects the portfolio report.
type BalanceQuery struct {
	PropertyID *int64
	UnitID     *int64
}
