package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"pricehub/services"
	"pricehub/templates"
)

// applyBatch normalizes the submitted grid, runs the calculator with the
// session's basis toggles and stores the result as the new working set.
// Every edit batch is followed synchronously by a full recompute pass.
func applyBatch(e *core.RequestEvent, deps *Deps, bookID string, raw []map[string]any) ([]services.Row, []services.RowError) {
	session := GetSession(e.Request)
	rows := services.Normalize(raw)
	rows, failed := services.Recompute(rows, session.MarginBasis, session.TargetBasis)
	deps.Workspace.SetRows(bookID, rows)
	return rows, failed
}

func renderTable(e *core.RequestEvent, book *core.Record, rows []services.Row, failed []services.RowError) error {
	data := templates.EditorData{
		BookID:   book.Id,
		BookName: book.GetString("name"),
		Rows:     rows,
		Skipped:  len(failed),
	}
	return templates.RowTable(data).Render(e.Request.Context(), e.Response)
}

// HandleRecompute applies the edited grid and re-runs the calculator
// without touching the workbook (the "interim calculate" button).
func HandleRecompute(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		book, err := findBook(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Price book not found")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		rows, failed := applyBatch(e, deps, book.Id, parseGrid(e.Request))
		if len(failed) > 0 {
			SetToast(e, "warning", fmt.Sprintf("%d row(s) left unchanged", len(failed)))
		}
		return renderTable(e, book, rows, failed)
	}
}

// HandleRowAppend applies the edited grid, appends a blank row and
// recomputes. The new row's sequence number is assigned by the calculator.
func HandleRowAppend(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		book, err := findBook(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Price book not found")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		raw := parseGrid(e.Request)
		raw = append(raw, map[string]any{})

		rows, failed := applyBatch(e, deps, book.Id, raw)
		return renderTable(e, book, rows, failed)
	}
}

// HandleRowDelete applies the edited grid minus the addressed row, then
// recomputes the remainder.
func HandleRowDelete(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		book, err := findBook(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Price book not found")
		}
		no, err := strconv.Atoi(e.Request.PathValue("no"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid row number")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		session := GetSession(e.Request)
		all := services.Normalize(parseGrid(e.Request))
		kept := make([]services.Row, 0, len(all))
		for _, r := range all {
			if r.No == no {
				continue
			}
			kept = append(kept, r)
		}

		rows, failed := services.Recompute(kept, session.MarginBasis, session.TargetBasis)
		deps.Workspace.SetRows(book.Id, rows)
		if len(failed) > 0 {
			SetToast(e, "warning", fmt.Sprintf("%d row(s) left unchanged", len(failed)))
		}
		return renderTable(e, book, rows, failed)
	}
}
