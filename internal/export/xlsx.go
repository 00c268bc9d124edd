package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	propertiesSheet = "Properties"
	unitsSheet      = "Units"
	moneyFormat     = "#,##0.00"
)

// WriteXLSX writes a workbook with a Properties sheet and a Units sheet
func WriteXLSX(w io.Writer, ledger *Ledger) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), propertiesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(unitsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(moneyFormat)})
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(ledger.Portfolio.PropertySummaries)+1)
	for _, summary := range ledger.Portfolio.PropertySummaries {
		rows = append(rows, propertyRow(summary))
	}
	rows = append(rows, totalRow(ledger.Portfolio))
	if err := writeSheet(f, propertiesSheet, propertyColumns, rows, header, money); err != nil {
		return err
	}

	rows = rows[:0]
	for _, property := range ledger.Properties {
		for _, unit := range property.UnitBalances {
			rows = append(rows, unitRow(property, unit))
		}
	}
	if err := writeSheet(f, unitsSheet, unitColumns, rows, header, money); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, columns []string, rows [][]interface{}, header, money int) error {
	headerRow := make([]interface{}, len(columns))
	for i, c := range columns {
		headerRow[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
		return err
	}

	for i, row := range rows {
		rowNum := i + 2
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := setCell(f, sheet, cell, value, money); err != nil {
				return err
			}
		}
	}
	return nil
}

// setCell stores amounts as numbers so the sheet can total them
func setCell(f *excelize.File, sheet, cell string, value interface{}, money int) error {
	amount, ok := value.(decimal.Decimal)
	if !ok {
		return f.SetCellValue(sheet, cell, cellValue(value))
	}
	if err := f.SetCellFloat(sheet, cell, amount.InexactFloat64(), -1, 64); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, money)
}

func cellValue(value interface{}) interface{} {
	if b, ok := value.(bool); ok {
		return formatCell(b)
	}
	return value
}

func strPtr(s string) *string {
	return &s
}
