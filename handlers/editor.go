package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"pricehub/templates"
)

// HandleEditor renders the price list editor for a book.
func HandleEditor(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		book, err := findBook(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Price book not found")
		}

		rows, loadErr := deps.loadRows(book)

		data := templates.EditorData{
			BookID:    book.Id,
			BookName:  book.GetString("name"),
			Rows:      rows,
			Filter:    e.Request.URL.Query().Get("q"),
			LoadError: loadErr,
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.EditorContent(data)
		} else {
			component = templates.EditorPage(data, GetSession(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleRowTable renders just the grid, used by the display filter and
// other partial refreshes. The filter hides rows from view only; the
// underlying row set is untouched.
func HandleRowTable(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		book, err := findBook(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Price book not found")
		}

		rows, _ := deps.loadRows(book)

		data := templates.EditorData{
			BookID:   book.Id,
			BookName: book.GetString("name"),
			Rows:     rows,
			Filter:   e.Request.URL.Query().Get("q"),
		}
		return templates.RowTable(data).Render(e.Request.Context(), e.Response)
	}
}
