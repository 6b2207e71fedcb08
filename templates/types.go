// Package templates contains the templ components for all pages and HTMX
// partials. Components are hand-built templ.ComponentFunc values; there is
// no generator step in this repo.
package templates

import "pricehub/services"

// ActiveBook identifies the price book the session is working in.
type ActiveBook struct {
	ID   string
	Name string
}

// BookSelectItem is one entry in the sidebar book list.
type BookSelectItem struct {
	ID           string
	Name         string
	WorkbookPath string
	IsActive     bool
}

// SessionData carries the sidebar controls state: acting role, the two
// calculation-basis toggles and the book list.
type SessionData struct {
	Role        string
	Roles       []string
	MarginBasis services.Basis
	TargetBasis services.Basis
	ActiveBook  *ActiveBook
	Books       []BookSelectItem
}

// BookListData feeds the books page.
type BookListData struct {
	Books []BookSelectItem
}

// BookFormData feeds the book create form.
type BookFormData struct {
	Name         string
	WorkbookPath string
	Worksheet    string
	Errors       map[string]string
}

// EditorData feeds the price list editor page and its table partial.
type EditorData struct {
	BookID   string
	BookName string
	Rows     []services.Row
	// Filter is the display-only substring filter over item names. Filtered
	// rows are hidden, not removed: every row still round-trips through the
	// grid form so the calculation batch always covers the full set.
	Filter string
	// LoadError carries the blocking banner shown when the workbook cannot
	// be read at all.
	LoadError string
	// Skipped is how many rows the last recompute left untouched.
	Skipped int
}

// ImportData feeds the import page.
type ImportData struct {
	BookID   string
	BookName string
	Error    string
}
