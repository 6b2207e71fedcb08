package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates a styled workbook download of a price list and
// returns the file contents as a byte slice. This is the presentational
// export: currency cells are formatted strings and item names carry their
// status icons, unlike the raw canonical table the workbook store writes.
func GenerateExcel(title, exportedAt string, rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are capped at 31 chars.
	sheetName := title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Price List"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 9, 14, 28, 14, 12, 10, 14, 12, 10, 12, 14, 12, 12}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	alertStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10, Color: "#B91C1C"},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create alert style: %w", err)
	}

	// Row 1: title, row 2: export stamp.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge stamp: %w", err)
	}
	f.SetCellValue(sheetName, "A2", "Exported: "+exportedAt)
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	// Row 4: column headers.
	for i, h := range Columns {
		cell := fmt.Sprintf("%s4", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A4", lastCol+"4", headerStyle)

	// Data rows from row 5.
	rowNum := 5
	for _, r := range rows {
		rowStr := fmt.Sprintf("%d", rowNum)

		f.SetCellValue(sheetName, "A"+rowStr, r.No)
		f.SetCellValue(sheetName, "B"+rowStr, r.Reverse)
		f.SetCellValue(sheetName, "C"+rowStr, StatusLabel(r))
		f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(DisplayName(r)))
		f.SetCellValue(sheetName, "E"+rowStr, FormatKRW(r.PurchaseCost))
		f.SetCellValue(sheetName, "F"+rowStr, FormatPercent(r.TargetMarginPct))
		f.SetCellValue(sheetName, "G"+rowStr, FormatPercent(r.ActualMarginPct))
		f.SetCellValue(sheetName, "H"+rowStr, FormatKRW(r.MarginAmount))
		f.SetCellValue(sheetName, "I"+rowStr, FormatSigned(r.TargetGap))
		f.SetCellValue(sheetName, "J"+rowStr, FormatPercent(r.FeeRatePct))
		f.SetCellValue(sheetName, "K"+rowStr, FormatKRW(r.FeeAmount))
		f.SetCellValue(sheetName, "L"+rowStr, FormatKRW(r.SellingPrice))
		f.SetCellValue(sheetName, "M"+rowStr, sanitizeExcelCell(r.UpdatedAt))
		f.SetCellValue(sheetName, "N"+rowStr, sanitizeExcelCell(r.UpdatedBy))

		style := rowStyle
		if r.Status == StatusPriceInversion {
			style = alertStyle
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, style)

		rowNum++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
