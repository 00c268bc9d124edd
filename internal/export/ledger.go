package export

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/segyhp/propmgmt/internal/domain"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ReportSource is the part of the report service an export needs
type ReportSource interface {
	AllPropertiesBalanceReport(ctx context.Context) (*domain.AllPropertiesBalanceReport, error)
	PropertyBalanceReport(ctx context.Context, propertyID int64) (*domain.PropertyBalanceReport, error)
}

// Ledger is the portfolio report with the unit rows of every property
type Ledger struct {
	Portfolio  *domain.AllPropertiesBalanceReport
	Properties []*domain.PropertyBalanceReport
}

// BuildLedger loads the portfolio report and one property report per summary,
// in summary order
func BuildLedger(ctx context.Context, reports ReportSource) (*Ledger, error) {
	portfolio, err := reports.AllPropertiesBalanceReport(ctx)
	if err != nil {
		return nil, err
	}

	ledger := &Ledger{
		Portfolio:  portfolio,
		Properties: make([]*domain.PropertyBalanceReport, 0, len(portfolio.PropertySummaries)),
	}
	for _, summary := range portfolio.PropertySummaries {
		report, err := reports.PropertyBalanceReport(ctx, summary.PropertyID)
		if err != nil {
			return nil, fmt.Errorf("property %d: %w", summary.PropertyID, err)
		}
		ledger.Properties = append(ledger.Properties, report)
	}
	return ledger, nil
}

// Filename is the download name of the ledger in format
func (l *Ledger) Filename(format string) string {
	return fmt.Sprintf("balance-report-%s.%s", l.Portfolio.ReportDate, format)
}

var propertyColumns = []string{
	"Property ID",
	"Property",
	"Units",
	"Occupied Units",
	"Total Due",
	"Total Paid",
	"Balance",
	"Units With Balance",
}

var unitColumns = []string{
	"Property ID",
	"Property",
	"Unit ID",
	"Unit",
	"Occupied",
	"Tenants",
	"Rent",
	"Total Due",
	"Total Paid",
	"Balance",
	"Missing Payments",
}

func propertyRow(summary domain.PropertyBalanceSummary) []interface{} {
	balance := decimal.Zero
	if summary.Balance.Valid {
		balance = summary.Balance.Decimal
	}
	return []interface{}{
		summary.PropertyID,
		summary.Name,
		summary.UnitCount,
		summary.OccupiedUnits,
		summary.TotalDue,
		summary.TotalPaid,
		balance,
		summary.UnitsWithBalance,
	}
}

func totalRow(portfolio *domain.AllPropertiesBalanceReport) []interface{} {
	return []interface{}{
		"",
		"Total",
		portfolio.TotalUnits,
		portfolio.OccupiedUnits,
		portfolio.TotalDue,
		portfolio.TotalPaid,
		portfolio.TotalBalance,
		"",
	}
}

func unitRow(property *domain.PropertyBalanceReport, unit domain.UnitBalanceInfo) []interface{} {
	var rent interface{} = ""
	if unit.RentAmount != nil {
		rent = *unit.RentAmount
	}
	return []interface{}{
		property.PropertyID,
		property.PropertyName,
		unit.UnitID,
		unit.UnitName,
		unit.Occupied,
		unit.TenantCount,
		rent,
		unit.TotalDue,
		unit.TotalPaid,
		unit.Balance,
		unit.MissingPaymentCount,
	}
}

func formatCell(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		if v {
			return "yes"
		}
		return "no"
	case decimal.Decimal:
		return v.StringFixed(2)
	default:
		return fmt.Sprint(v)
	}
}
