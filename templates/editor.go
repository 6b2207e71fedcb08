package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"pricehub/services"
)

// EditorPage is the full price list editor.
func EditorPage(data EditorData, session SessionData) templ.Component {
	return Page(data.BookName, session, EditorContent(data))
}

// EditorContent renders the toolbar and the editable grid.
func EditorContent(data EditorData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="page-header">
<h2>%s</h2>
<div class="toolbar">
<button class="button" hx-post="/books/%s/recompute" hx-include="#grid" hx-target="#table-wrap" hx-swap="outerHTML">🔢 Calculate</button>
<button class="button" hx-post="/books/%s/push" hx-include="#grid" hx-target="#table-wrap" hx-swap="outerHTML">🚀 Push to workbook</button>
<button class="button secondary" hx-post="/books/%s/reload" hx-target="#table-wrap" hx-swap="outerHTML" hx-confirm="Discard local edits and reload from the workbook?">🔄 Reload</button>
<button class="button secondary" hx-post="/books/%s/rows" hx-include="#grid" hx-target="#table-wrap" hx-swap="outerHTML">＋ Add row</button>
<a class="button secondary" href="/books/%s/import">Import</a>
<a class="button secondary" href="/books/%s/export/excel">Excel</a>
<a class="button secondary" href="/books/%s/export/pdf">PDF</a>
</div>
</section>`,
			esc(data.BookName), esc(data.BookID), esc(data.BookID), esc(data.BookID),
			esc(data.BookID), esc(data.BookID), esc(data.BookID), esc(data.BookID)); err != nil {
			return err
		}
		if data.LoadError != "" {
			if _, err := fmt.Fprintf(w, `<p class="banner error">⚠️ %s</p>`, esc(data.LoadError)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<div class="filter">
<input type="search" name="q" value="%s" placeholder="Filter items…"
 hx-get="/books/%s/table" hx-trigger="keyup changed delay:300ms, search" hx-target="#table-wrap" hx-swap="outerHTML"/>
</div>`, esc(data.Filter), esc(data.BookID)); err != nil {
			return err
		}
		return RowTable(data).Render(ctx, w)
	})
}

// RowTable renders the editable grid. Rows not matching the display filter
// are rendered hidden rather than skipped so the next edit batch still
// submits the complete row set.
func RowTable(data EditorData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="table-wrap">`); err != nil {
			return err
		}
		if data.Skipped > 0 {
			if _, err := fmt.Fprintf(w, `<p class="banner warning">%d row(s) could not be calculated and were left unchanged.</p>`,
				data.Skipped); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<form id="grid">
<input type="hidden" name="row_count" value="%d"/>
<table class="grid">
<thead><tr>
<th>No</th><th title="Derive cost from market price">Rev</th><th>Status</th><th>Item Name</th>
<th>Purchase Cost</th><th>Target %%</th><th>Margin %%</th><th>Margin</th>
<th>Gap</th><th>Fee %%</th><th>Fee</th><th>Selling Price</th>
<th>Updated At</th><th>By</th><th></th>
</tr></thead>
<tbody>`, len(data.Rows)); err != nil {
			return err
		}

		filter := strings.ToLower(strings.TrimSpace(data.Filter))
		for i, r := range data.Rows {
			hidden := ""
			if filter != "" && !strings.Contains(strings.ToLower(r.ItemName), filter) {
				hidden = " hidden"
			}
			if err := rowCells(w, i, r, hidden, data.BookID); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</tbody></table></form></div>`)
		return err
	})
}

func rowCells(w io.Writer, i int, r services.Row, hidden, bookID string) error {
	checked := ""
	if r.Reverse {
		checked = " checked"
	}
	statusClass := ""
	switch r.Status {
	case services.StatusPriceInversion:
		statusClass = " class=\"alert\""
	case services.StatusBelowTarget:
		statusClass = " class=\"warn\""
	}

	_, err := fmt.Fprintf(w, `<tr%s>
<td class="mono">%d<input type="hidden" name="no_%d" value="%d"/><input type="hidden" name="updated_at_%d" value="%s"/><input type="hidden" name="updated_by_%d" value="%s"/></td>
<td><input type="checkbox" name="reverse_%d"%s/></td>
<td%s>%s</td>
<td><input name="item_%d" value="%s"/></td>
<td><input type="number" name="cost_%d" value="%d"/></td>
<td><input type="number" step="0.1" name="target_%d" value="%s"/></td>
<td class="ro">%s</td>
<td class="ro">%s</td>
<td class="ro">%s</td>
<td><input type="number" step="0.1" name="fee_%d" value="%s"/></td>
<td class="ro">%s</td>
<td><input type="number" name="price_%d" value="%d"/></td>
<td class="ro mono">%s</td>
<td class="ro">%s</td>
<td><button class="icon danger" hx-delete="/books/%s/rows/%d" hx-include="#grid" hx-target="#table-wrap" hx-swap="outerHTML" hx-confirm="Delete this row?">✕</button></td>
</tr>`,
		hidden,
		r.No, i, r.No, i, esc(r.UpdatedAt), i, esc(r.UpdatedBy),
		i, checked,
		statusClass, esc(services.StatusLabel(r)),
		i, esc(r.ItemName),
		i, r.PurchaseCost,
		i, trimFloat(r.TargetMarginPct),
		esc(services.FormatPercent(r.ActualMarginPct)),
		esc(services.FormatKRW(r.MarginAmount)),
		esc(services.FormatSigned(r.TargetGap)),
		i, trimFloat(r.FeeRatePct),
		esc(services.FormatKRW(r.FeeAmount)),
		i, r.SellingPrice,
		esc(r.UpdatedAt),
		esc(r.UpdatedBy),
		esc(bookID), r.No)
	return err
}

// trimFloat renders a float input value without trailing zeros.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
