// Package sheet reads and writes the shared price workbook. It is the only
// place that touches the external spreadsheet: reads are fronted by a short
// TTL cache, writes are whole-tab overwrites that drop the cache.
package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
)

// DefaultTTL is how long a read result is served from cache before the
// workbook is consulted again.
const DefaultTTL = 10 * time.Second

// Store reads and writes one worksheet of one workbook file. A worksheet
// name of "" targets the first tab.
type Store struct {
	path      string
	worksheet string
	ttl       time.Duration

	mu        sync.Mutex
	cached    []map[string]any
	fetchedAt time.Time
}

// NewStore returns a store for the given workbook path and worksheet.
func NewStore(path, worksheet string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{path: path, worksheet: worksheet, ttl: ttl}
}

// Read returns the worksheet contents as loose records keyed by the header
// row. Within the TTL window a cached copy is served without touching the
// file. The returned slice is always a copy the caller may mutate freely.
func (s *Store) Read() ([]map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.fetchedAt) < s.ttl {
		return cloneRecords(s.cached), nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	sheetName, err := s.resolveSheet(f)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", sheetName, err)
	}

	var records []map[string]any
	if len(rows) > 0 {
		headers := rows[0]
		records = make([]map[string]any, 0, len(rows)-1)
		for _, row := range rows[1:] {
			rec := make(map[string]any, len(headers))
			for i, h := range headers {
				if h == "" {
					continue
				}
				if i < len(row) {
					rec[h] = row[i]
				} else {
					rec[h] = ""
				}
			}
			records = append(records, rec)
		}
	}

	s.cached = cloneRecords(records)
	s.fetchedAt = time.Now()

	return records, nil
}

// Write overwrites the worksheet with the given table: one header row
// followed by the records, nothing else. Leftover rows and columns from the
// previous contents are removed. The workbook is created if it does not
// exist yet. A successful write drops the read cache.
func (s *Store) Write(columns []string, records [][]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, created, err := s.openOrCreate()
	if err != nil {
		return err
	}
	defer f.Close()

	sheetName, err := s.resolveSheet(f)
	if err != nil {
		return err
	}

	old, err := f.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("read worksheet %q: %w", sheetName, err)
	}

	for i, colName := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, colName); err != nil {
			return fmt.Errorf("write header %q: %w", colName, err)
		}
	}
	for ri, rec := range records {
		for ci, v := range rec {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", ri+1, err)
			}
		}
	}

	// Full overwrite: clear anything beyond the new table.
	newRows := len(records) + 1
	for i := len(old); i > newRows; i-- {
		if err := f.RemoveRow(sheetName, newRows+1); err != nil {
			return fmt.Errorf("trim row: %w", err)
		}
	}
	oldWidth := 0
	if len(old) > 0 {
		oldWidth = len(old[0])
	}
	for i := oldWidth; i > len(columns); i-- {
		colName, err := excelize.ColumnNumberToName(len(columns) + 1)
		if err != nil {
			return fmt.Errorf("trim column: %w", err)
		}
		if err := f.RemoveCol(sheetName, colName); err != nil {
			return fmt.Errorf("trim column: %w", err)
		}
	}

	if created {
		if err := f.SaveAs(s.path); err != nil {
			return fmt.Errorf("save workbook %s: %w", s.path, err)
		}
	} else if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook %s: %w", s.path, err)
	}

	s.cached = nil
	s.fetchedAt = time.Time{}

	return nil
}

// Invalidate drops the read cache so the next Read hits the workbook.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.fetchedAt = time.Time{}
}

// openOrCreate opens the workbook, creating a fresh one (with the target
// worksheet) when the file does not exist yet.
func (s *Store) openOrCreate() (*excelize.File, bool, error) {
	f, err := excelize.OpenFile(s.path)
	if err == nil {
		return f, false, nil
	}
	if !os.IsNotExist(err) {
		return nil, false, fmt.Errorf("open workbook %s: %w", s.path, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, false, fmt.Errorf("create workbook dir: %w", err)
		}
	}

	f = excelize.NewFile()
	if s.worksheet != "" {
		if err := f.SetSheetName(f.GetSheetName(0), s.worksheet); err != nil {
			f.Close()
			return nil, false, fmt.Errorf("name worksheet %q: %w", s.worksheet, err)
		}
	}
	return f, true, nil
}

// resolveSheet returns the target worksheet name, defaulting to the first
// tab when none is configured.
func (s *Store) resolveSheet(f *excelize.File) (string, error) {
	if s.worksheet == "" {
		return f.GetSheetName(0), nil
	}
	idx, err := f.GetSheetIndex(s.worksheet)
	if err != nil {
		return "", fmt.Errorf("worksheet %q: %w", s.worksheet, err)
	}
	if idx < 0 {
		return "", fmt.Errorf("worksheet %q not found in %s", s.worksheet, s.path)
	}
	return s.worksheet, nil
}

func cloneRecords(records []map[string]any) []map[string]any {
	out := make([]map[string]any, len(records))
	for i, rec := range records {
		cp := make(map[string]any, len(rec))
		for k, v := range rec {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}
