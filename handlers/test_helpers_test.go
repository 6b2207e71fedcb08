package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"pricehub/services"
	"pricehub/sheet"
	"pricehub/state"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newTestDeps returns handler deps with a fresh workspace and a short-TTL
// store registry.
func newTestDeps() *Deps {
	return &Deps{
		Workspace: state.New(),
		Sheets:    sheet.NewRegistry(time.Second),
	}
}

// gridForm encodes rows the way the editor grid submits them.
func gridForm(rows []services.Row) url.Values {
	form := url.Values{}
	form.Set("row_count", fmt.Sprintf("%d", len(rows)))
	for i, r := range rows {
		set := func(name, value string) {
			form.Set(fmt.Sprintf("%s_%d", name, i), value)
		}
		set("no", fmt.Sprintf("%d", r.No))
		if r.Reverse {
			set("reverse", "on")
		}
		set("item", r.ItemName)
		set("cost", fmt.Sprintf("%d", r.PurchaseCost))
		set("target", fmt.Sprintf("%g", r.TargetMarginPct))
		set("fee", fmt.Sprintf("%g", r.FeeRatePct))
		set("price", fmt.Sprintf("%d", r.SellingPrice))
		set("updated_at", r.UpdatedAt)
		set("updated_by", r.UpdatedBy)
	}
	return form
}
