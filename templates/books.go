package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// BooksPage is the full-page book list.
func BooksPage(data BookListData, session SessionData) templ.Component {
	return Page("Price Books", session, BooksContent(data))
}

// BooksContent renders the book list table (also served as HTMX partial).
func BooksContent(data BookListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="page-header">
<h2>Price Books</h2>
<a class="button" href="/books/create">New book</a>
</section>`); err != nil {
			return err
		}
		if len(data.Books) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No price books yet. Create one to start collaborating.</p>`)
			return err
		}
		if _, err := io.WriteString(w, `<table class="list">
<thead><tr><th>Name</th><th>Workbook</th><th></th></tr></thead>
<tbody>`); err != nil {
			return err
		}
		for _, b := range data.Books {
			activate := fmt.Sprintf(
				`<button class="button secondary" hx-post="/books/%s/activate">Activate</button>`, esc(b.ID))
			if b.IsActive {
				activate = `<span class="tag">active</span>`
			}
			if _, err := fmt.Fprintf(w, `<tr>
<td><a href="/books/%s">%s</a></td>
<td class="mono">%s</td>
<td class="actions">%s
<button class="button danger" hx-delete="/books/%s" hx-confirm="Remove this book from the registry? The workbook file is kept.">Delete</button></td>
</tr>`, esc(b.ID), esc(b.Name), esc(b.WorkbookPath), activate, esc(b.ID)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

// BookCreatePage is the full-page create form.
func BookCreatePage(data BookFormData, session SessionData) templ.Component {
	return Page("New Price Book", session, BookCreateContent(data))
}

// BookCreateContent renders the create form with inline field errors.
func BookCreateContent(data BookFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="page-header"><h2>New Price Book</h2></section>
<form method="post" action="/books" class="stacked">`); err != nil {
			return err
		}
		fields := []struct {
			key, label, value, hint string
		}{
			{"name", "Name", data.Name, ""},
			{"workbook_path", "Workbook path", data.WorkbookPath, "Path to the shared .xlsx file; created on first push if missing"},
			{"worksheet", "Worksheet", data.Worksheet, "Leave empty for the first tab"},
		}
		for _, f := range fields {
			if _, err := fmt.Fprintf(w, `<label for="%s">%s</label>
<input id="%s" name="%s" value="%s"/>`,
				f.key, esc(f.label), f.key, f.key, esc(f.value)); err != nil {
				return err
			}
			if msg, ok := data.Errors[f.key]; ok {
				if _, err := fmt.Fprintf(w, `<p class="field-error">%s</p>`, esc(msg)); err != nil {
					return err
				}
			}
			if f.hint != "" {
				if _, err := fmt.Fprintf(w, `<p class="hint">%s</p>`, esc(f.hint)); err != nil {
					return err
				}
			}
		}
		_, err := io.WriteString(w, `<div class="actions">
<button type="submit" class="button">Create</button>
<a class="button secondary" href="/books">Cancel</a>
</div></form>`)
		return err
	})
}

// ImportPage is the full-page upload form.
func ImportPage(data ImportData, session SessionData) templ.Component {
	return Page("Import · "+data.BookName, session, ImportContent(data))
}

// ImportContent renders the upload form for replacing the working rows.
func ImportContent(data ImportData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="page-header"><h2>Import into %s</h2></section>`,
			esc(data.BookName)); err != nil {
			return err
		}
		if data.Error != "" {
			if _, err := fmt.Fprintf(w, `<p class="banner error">%s</p>`, esc(data.Error)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="/books/%s/import" enctype="multipart/form-data" class="stacked">
<label for="file">Price list file (.csv or .xlsx)</label>
<input id="file" type="file" name="file" accept=".csv,.xlsx" required/>
<p class="hint">Replaces the working rows in the editor. Nothing is written to the shared workbook until you push.</p>
<div class="actions">
<button type="submit" class="button">Import</button>
<a class="button secondary" href="/books/%s">Cancel</a>
</div></form>`, esc(data.BookID), esc(data.BookID))
		return err
	})
}
