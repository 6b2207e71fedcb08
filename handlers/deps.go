// Package handlers contains the HTTP handlers for the price collaboration
// UI. Handlers are HTMX-aware: with an HX-Request header they render the
// content partial, otherwise the full page.
package handlers

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"pricehub/services"
	"pricehub/sheet"
	"pricehub/state"
)

// Deps bundles the shared runtime pieces handlers need besides the
// PocketBase app: the in-memory workspace and the workbook store registry.
type Deps struct {
	Workspace *state.Workspace
	Sheets    *sheet.Registry
}

// findBook loads the price book record addressed by the {id} path value.
func findBook(app *pocketbase.PocketBase, e *core.RequestEvent) (*core.Record, error) {
	bookID := e.Request.PathValue("id")
	if bookID == "" {
		return nil, fmt.Errorf("missing book id")
	}
	return app.FindRecordById("price_books", bookID)
}

// storeFor returns the shared workbook store for a book record.
func (d *Deps) storeFor(book *core.Record) *sheet.Store {
	return d.Sheets.For(book.GetString("workbook_path"), book.GetString("worksheet"))
}

// loadRows returns the working rows for a book: the workspace copy when the
// book is already open in this process, otherwise a fresh read from the
// workbook pushed through the normalizer. A missing workbook file is a
// normal empty book (it is created on first push); any other read failure
// degrades to the empty canonical set and returns banner text.
func (d *Deps) loadRows(book *core.Record) ([]services.Row, string) {
	if rows, ok := d.Workspace.Rows(book.Id); ok {
		return rows, ""
	}

	raw, err := d.storeFor(book).Read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			rows := []services.Row{}
			d.Workspace.SetRows(book.Id, rows)
			return rows, ""
		}
		log.Printf("editor: could not read workbook for book %s: %v", book.Id, err)
		return []services.Row{}, "The shared workbook could not be read. Check the workbook path and worksheet in the book settings."
	}

	rows := services.Normalize(raw)
	d.Workspace.SetRows(book.Id, rows)
	return rows, ""
}

// parseGrid rebuilds the raw edit batch from the editor grid form. The
// values go through the same Normalize contract as workbook reads, so the
// handler never deals with coercion itself.
func parseGrid(r *http.Request) []map[string]any {
	count, err := strconv.Atoi(r.FormValue("row_count"))
	if err != nil || count < 0 {
		return nil
	}

	raw := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		field := func(name string) string {
			return r.FormValue(fmt.Sprintf("%s_%d", name, i))
		}
		raw = append(raw, map[string]any{
			services.ColNo:           field("no"),
			services.ColReverse:      field("reverse") != "",
			services.ColItemName:     field("item"),
			services.ColPurchaseCost: field("cost"),
			services.ColTargetMargin: field("target"),
			services.ColFeeRate:      field("fee"),
			services.ColSellingPrice: field("price"),
			services.ColUpdatedAt:    field("updated_at"),
			services.ColUpdatedBy:    field("updated_by"),
		})
	}
	return raw
}
