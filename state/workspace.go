// Package state holds the in-memory working row sets. It replaces the
// source-of-record only between an edit and a push: the workbook written by
// the sheet package stays the durable copy.
package state

import (
	"sync"

	"pricehub/services"
)

// Workspace keeps the working row set per price book. Rows are copied on
// the way in and out so callers never share backing arrays with the
// workspace.
type Workspace struct {
	mu   sync.RWMutex
	rows map[string][]services.Row
}

// New returns an empty workspace.
func New() *Workspace {
	return &Workspace{rows: make(map[string][]services.Row)}
}

// Rows returns a copy of the working rows for a book and whether the book
// has been loaded into the workspace at all.
func (w *Workspace) Rows(bookID string) ([]services.Row, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	rows, ok := w.rows[bookID]
	if !ok {
		return nil, false
	}
	out := make([]services.Row, len(rows))
	copy(out, rows)
	return out, true
}

// SetRows replaces the working rows for a book.
func (w *Workspace) SetRows(bookID string, rows []services.Row) {
	cp := make([]services.Row, len(rows))
	copy(cp, rows)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.rows[bookID] = cp
}

// Drop forgets the working rows for a book (book deleted, or a forced
// reload from the workbook).
func (w *Workspace) Drop(bookID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.rows, bookID)
}
