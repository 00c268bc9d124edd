package export

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes the property table, a blank line, then the unit table
func WriteCSV(w io.Writer, ledger *Ledger) error {
	out := csv.NewWriter(w)

	if err := out.Write(propertyColumns); err != nil {
		return err
	}
	for _, summary := range ledger.Portfolio.PropertySummaries {
		if err := out.Write(formatRow(propertyRow(summary))); err != nil {
			return err
		}
	}
	if err := out.Write(formatRow(totalRow(ledger.Portfolio))); err != nil {
		return err
	}

	// csv.Writer cannot emit an empty record
	out.Flush()
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	if err := out.Write(unitColumns); err != nil {
		return err
	}
	for _, property := range ledger.Properties {
		for _, unit := range property.UnitBalances {
			if err := out.Write(formatRow(unitRow(property, unit))); err != nil {
				return err
			}
		}
	}

	out.Flush()
	return out.Error()
}

func formatRow(values []interface{}) []string {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = formatCell(v)
	}
	return row
}
