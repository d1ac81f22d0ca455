// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mankru71/OpinionHub/models"
)

// CSV renders tally rows as delimited text. The option text field is
// always double-quoted (inner quotes doubled), percent carries exactly
// two decimals. Row order follows the input.
func CSV(rows []models.TallyRow) []byte {
	var buf bytes.Buffer
	buf.WriteString("Option,Votes,Percent\n")
	for _, row := range rows {
		text := strings.ReplaceAll(row.Text, `"`, `""`)
		fmt.Fprintf(&buf, "\"%s\",%d,%.2f\n", text, row.Votes, row.Percent)
	}
	return buf.Bytes()
}

// XLSX renders tally rows as a workbook with a single "Results" sheet:
// a header row, then one row per option with numeric vote and percent
// cells (percent rounded to two decimals).
func XLSX(rows []models.TallyRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, header := range []string{"Option", "Votes", "Percent"} {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []any{
			row.Text,
			row.Votes,
			math.Round(row.Percent*100) / 100,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
