package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"pricehub/services"
	"pricehub/templates"
)

// HandleImportPage renders the upload form for a book.
func HandleImportPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		book, err := findBook(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Price book not found")
		}

		data := templates.ImportData{
			BookID:   book.Id,
			BookName: book.GetString("name"),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ImportContent(data)
		} else {
			component = templates.ImportPage(data, GetSession(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleImportUpload parses an uploaded CSV or Excel file, normalizes it
// into the working row set and recomputes. The workbook is not touched
// until the user pushes.
func HandleImportUpload(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		book, err := findBook(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Price book not found")
		}

		renderError := func(msg string) error {
			data := templates.ImportData{
				BookID:   book.Id,
				BookName: book.GetString("name"),
				Error:    msg,
			}
			if e.Request.Header.Get("HX-Request") == "true" {
				return templates.ImportContent(data).Render(e.Request.Context(), e.Response)
			}
			return templates.ImportPage(data, GetSession(e.Request)).Render(e.Request.Context(), e.Response)
		}

		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return renderError("Could not read the upload. Please try again.")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return renderError("Please choose a file to import.")
		}
		defer file.Close()

		raw, err := services.ParseUpload(file, header.Filename)
		if err != nil {
			log.Printf("import: could not parse %s: %v", header.Filename, err)
			return renderError(err.Error())
		}

		session := GetSession(e.Request)
		rows := services.Normalize(raw)
		rows, failed := services.Recompute(rows, session.MarginBasis, session.TargetBasis)
		deps.Workspace.SetRows(book.Id, rows)

		msg := fmt.Sprintf("Imported %d rows from %s", len(rows), header.Filename)
		if len(failed) > 0 {
			msg = fmt.Sprintf("%s (%d left unchanged)", msg, len(failed))
		}
		SetToast(e, "success", msg)

		redirectURL := "/books/" + book.Id
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", redirectURL)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, redirectURL)
	}
}

// HandleExportExcel streams the current row set as a formatted .xlsx file.
func HandleExportExcel(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		book, err := findBook(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Price book not found")
		}

		rows, _ := deps.loadRows(book)
		name := book.GetString("name")

		data, err := services.GenerateExcel(name, services.Timestamp(time.Now()), rows)
		if err != nil {
			log.Printf("export: could not generate excel for book %s: %v", book.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Export failed. Please try again.")
		}

		filename := sanitizeFilename(name) + ".xlsx"
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		_, err = e.Response.Write(data)
		return err
	}
}

// HandleExportPDF streams the current row set as a PDF summary.
func HandleExportPDF(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		book, err := findBook(app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Price book not found")
		}

		rows, _ := deps.loadRows(book)
		name := book.GetString("name")

		data, err := services.GeneratePDF(name, services.Timestamp(time.Now()), rows)
		if err != nil {
			log.Printf("export: could not generate pdf for book %s: %v", book.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Export failed. Please try again.")
		}

		filename := sanitizeFilename(name) + ".pdf"
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		_, err = e.Response.Write(data)
		return err
	}
}

// sanitizeFilename keeps download names safe across browsers.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "price-list"
	}
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	return replacer.Replace(name)
}
