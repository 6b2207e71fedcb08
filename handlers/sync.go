package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"pricehub/services"
)

// HandlePush applies the edited grid, recomputes, stamps every row with the
// acting role and the current time, and overwrites the shared workbook.
// A failed write keeps the in-memory edit so nothing is lost.
func HandlePush(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		book, err := findBook(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Price book not found")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		session := GetSession(e.Request)
		rows, failed := applyBatch(e, deps, book.Id, parseGrid(e.Request))

		stamp := services.Timestamp(time.Now())
		for i := range rows {
			rows[i].UpdatedAt = stamp
			rows[i].UpdatedBy = session.Role
		}
		deps.Workspace.SetRows(book.Id, rows)

		if err := deps.storeFor(book).Write(services.Columns, services.Table(rows)); err != nil {
			log.Printf("push: could not write workbook for book %s: %v", book.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Save failed. Your edits are kept in this session.")
		}

		msg := fmt.Sprintf("Pushed %d rows to the workbook", len(rows))
		if len(failed) > 0 {
			msg = fmt.Sprintf("%s (%d left unchanged)", msg, len(failed))
		}
		SetToast(e, "success", msg)
		return renderTable(e, book, rows, failed)
	}
}

// HandleReload discards the working rows and the read cache, then re-reads
// the workbook (the "load latest" button).
func HandleReload(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		book, err := findBook(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Price book not found")
		}

		deps.Workspace.Drop(book.Id)
		deps.storeFor(book).Invalidate()

		rows, loadErr := deps.loadRows(book)
		if loadErr != "" {
			SetToast(e, "error", loadErr)
		} else {
			SetToast(e, "info", "Loaded the latest workbook data")
		}
		return renderTable(e, book, rows, nil)
	}
}
