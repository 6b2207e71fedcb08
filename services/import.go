package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseUpload reads an uploaded .csv or .xlsx price list and returns its
// data as loose records keyed by canonical column name, ready for Normalize.
// Column headers are matched case-insensitively against the canonical
// schema; unrecognized columns are dropped (the normalizer synthesizes
// defaults for anything missing).
func ParseUpload(file io.Reader, fileName string) ([]map[string]any, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	return recordsFromTable(headers, dataRows), nil
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the
// first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapHeaders maps uploaded column headers to canonical column names.
// Unrecognized headers map to "".
func mapHeaders(headers []string) []string {
	canonical := make(map[string]string, len(Columns))
	for _, c := range Columns {
		canonical[strings.ToLower(c)] = c
	}

	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		mapped[i] = canonical[norm]
	}
	return mapped
}

// recordsFromTable zips header + data rows into loose records keyed by
// canonical column names. Short rows are tolerated; the missing cells are
// simply absent from the record.
func recordsFromTable(headers []string, dataRows [][]string) []map[string]any {
	keys := mapHeaders(headers)

	records := make([]map[string]any, 0, len(dataRows))
	for _, row := range dataRows {
		rec := make(map[string]any, len(keys))
		for i, key := range keys {
			if key == "" || i >= len(row) {
				continue
			}
			rec[key] = row[i]
		}
		records = append(records, rec)
	}
	return records
}
