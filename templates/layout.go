package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"pricehub/services"
)

func esc(s string) string { return templ.EscapeString(s) }

// Page wraps content in the full HTML document with the sidebar.
func Page(title string, session SessionData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>%s · PriceHub</title>
<link rel="stylesheet" href="/static/styles.css"/>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="/static/app.js" defer></script>
</head>
<body>
<div id="toast-container"></div>
<div class="shell">`, esc(title)); err != nil {
			return err
		}
		if err := Sidebar(session).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main id="content" class="content">`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></div></body></html>`)
		return err
	})
}

// Sidebar renders the collaboration controls: acting role, the two
// calculation-basis toggles and the book list. Changing any control posts
// the whole settings form.
func Sidebar(s SessionData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<aside class="sidebar">
<h1 class="brand">🥬 PriceHub</h1>
<form method="post" action="/settings" class="settings">
<label for="role-select">Acting role</label>
<select id="role-select" name="role" onchange="this.form.submit()">`); err != nil {
			return err
		}
		for _, role := range s.Roles {
			selected := ""
			if role == s.Role {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, esc(role), selected, esc(role)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</select>
<fieldset><legend>Margin basis</legend>`); err != nil {
			return err
		}
		if err := basisRadios(w, "margin_basis", s.MarginBasis); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</fieldset>
<fieldset><legend>Target basis</legend>`); err != nil {
			return err
		}
		if err := basisRadios(w, "target_basis", s.TargetBasis); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</fieldset>
</form>
<nav class="books">
<h2>Price books</h2>
<ul>`); err != nil {
			return err
		}
		for _, b := range s.Books {
			active := ""
			if b.IsActive {
				active = ` class="active"`
			}
			if _, err := fmt.Fprintf(w, `<li%s><a href="/books/%s">%s</a></li>`,
				active, esc(b.ID), esc(b.Name)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>
<a class="button secondary" href="/books">Manage books</a>
</nav>
</aside>`)
		return err
	})
}

func basisRadios(w io.Writer, name string, current services.Basis) error {
	options := []struct {
		value services.Basis
		label string
	}{
		{services.BasisPrice, "Selling price"},
		{services.BasisCost, "Purchase cost"},
	}
	for _, opt := range options {
		checked := ""
		if opt.value == current {
			checked = " checked"
		}
		if _, err := fmt.Fprintf(w,
			`<label><input type="radio" name="%s" value="%s"%s onchange="this.form.submit()"/> %s</label>`,
			name, opt.value, checked, esc(opt.label)); err != nil {
			return err
		}
	}
	return nil
}
