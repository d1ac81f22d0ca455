// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package export renders poll tallies for download.

Both formats take the same tally rows and preserve their order:

	data := export.CSV(tally.Rows)
	data, err := export.XLSX(tally.Rows)

CSV always double-quotes the option text (inner quotes doubled) and
prints percent with two decimals. XLSX produces a workbook with a
single "Results" sheet via excelize, with numeric vote and percent
cells so spreadsheets can chart them directly.
*/
package export
