package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"pricehub/templates"
)

// HandleBookList renders the price book registry.
func HandleBookList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		session := GetSession(e.Request)
		data := templates.BookListData{Books: session.Books}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.BooksContent(data)
		} else {
			component = templates.BooksPage(data, session)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleBookCreate renders the create form.
func HandleBookCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		session := GetSession(e.Request)
		data := templates.BookFormData{Errors: make(map[string]string)}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.BookCreateContent(data)
		} else {
			component = templates.BookCreatePage(data, session)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleBookSave validates and saves a new price book.
func HandleBookSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		workbookPath := strings.TrimSpace(e.Request.FormValue("workbook_path"))
		worksheet := strings.TrimSpace(e.Request.FormValue("worksheet"))

		errors := make(map[string]string)
		if name == "" {
			errors["name"] = "Name is required"
		}
		if workbookPath == "" {
			errors["workbook_path"] = "Workbook path is required"
		} else if !strings.HasSuffix(strings.ToLower(workbookPath), ".xlsx") {
			errors["workbook_path"] = "Workbook path must point to an .xlsx file"
		}

		if len(errors) > 0 {
			SetToast(e, "warning", "Please fix the errors below")
			data := templates.BookFormData{
				Name:         name,
				WorkbookPath: workbookPath,
				Worksheet:    worksheet,
				Errors:       errors,
			}
			var component templ.Component
			if e.Request.Header.Get("HX-Request") == "true" {
				component = templates.BookCreateContent(data)
			} else {
				component = templates.BookCreatePage(data, GetSession(e.Request))
			}
			return component.Render(e.Request.Context(), e.Response)
		}

		col, err := app.FindCollectionByNameOrId("price_books")
		if err != nil {
			log.Printf("books: could not find price_books collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("name", name)
		record.Set("workbook_path", workbookPath)
		record.Set("worksheet", worksheet)

		if err := app.Save(record); err != nil {
			log.Printf("books: could not save price book: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Price book created")

		redirectURL := "/books/" + record.Id
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", redirectURL)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, redirectURL)
	}
}

// HandleBookDelete removes a book from the registry. The workbook file
// itself is left alone.
func HandleBookDelete(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		book, err := findBook(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Price book not found")
		}

		if err := app.Delete(book); err != nil {
			log.Printf("books: could not delete price book %s: %v", book.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		deps.Workspace.Drop(book.Id)

		SetToast(e, "success", "Price book deleted")
		e.Response.Header().Set("HX-Redirect", "/books")
		return e.String(http.StatusOK, "")
	}
}

// HandleBookActivate marks a book as the session's active one via cookie.
func HandleBookActivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		book, err := findBook(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Price book not found")
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     cookieActiveBook,
			Value:    book.Id,
			Path:     "/",
			SameSite: http.SameSiteLaxMode,
		})

		SetToast(e, "success", "Now working in "+book.GetString("name"))
		e.Response.Header().Set("HX-Redirect", "/books/"+book.Id)
		return e.String(http.StatusOK, "")
	}
}
