package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pricehub/services"
	"pricehub/testhelpers"
)

func postGrid(t *testing.T, target string, rows []services.Row) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(gridForm(rows).Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleRecompute(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	book := testhelpers.CreateTestBook(t, app, "Calc Book", "unused.xlsx")

	deps := newTestDeps()
	handler := HandleRecompute(app, deps)

	req := postGrid(t, "/books/"+book.Id+"/recompute", []services.Row{
		{No: 1, ItemName: "Organic Apples", PurchaseCost: 10000, TargetMarginPct: 20, FeeRatePct: 5.6},
	})
	req.SetPathValue("id", book.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	rows, ok := deps.Workspace.Rows(book.Id)
	if !ok || len(rows) != 1 {
		t.Fatalf("expected 1 working row, got %d", len(rows))
	}
	if rows[0].SellingPrice != 13441 {
		t.Errorf("SellingPrice = %d, want 13441", rows[0].SellingPrice)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), `name="price_0" value="13441"`)
}

func TestHandleRecompute_UsesSessionBases(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	book := testhelpers.CreateTestBook(t, app, "Basis Book", "unused.xlsx")

	deps := newTestDeps()
	handler := HandleRecompute(app, deps)

	req := postGrid(t, "/books/"+book.Id+"/recompute", []services.Row{
		{No: 1, PurchaseCost: 10000, TargetMarginPct: 20, FeeRatePct: 5.6},
	})
	req.SetPathValue("id", book.Id)
	req.AddCookie(&http.Cookie{Name: "margin_basis", Value: "cost"})
	req.AddCookie(&http.Cookie{Name: "target_basis", Value: "cost"})
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	_ = SessionMiddleware(app)(e)
	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	rows, _ := deps.Workspace.Rows(book.Id)
	// Cost basis: price = round(10000 * 1.256).
	if rows[0].SellingPrice != 12560 {
		t.Errorf("SellingPrice = %d, want 12560 on cost basis", rows[0].SellingPrice)
	}
}

func TestHandleRowAppend(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	book := testhelpers.CreateTestBook(t, app, "Append Book", "unused.xlsx")

	deps := newTestDeps()
	handler := HandleRowAppend(app, deps)

	req := postGrid(t, "/books/"+book.Id+"/rows", []services.Row{
		{No: 3, ItemName: "Existing", PurchaseCost: 1000},
	})
	req.SetPathValue("id", book.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	rows, _ := deps.Workspace.Rows(book.Id)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after append, got %d", len(rows))
	}
	if rows[1].No != 4 {
		t.Errorf("appended row No = %d, want 4", rows[1].No)
	}
}

func TestHandleRowDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	book := testhelpers.CreateTestBook(t, app, "Delete Row Book", "unused.xlsx")

	deps := newTestDeps()
	handler := HandleRowDelete(app, deps)

	form := gridForm([]services.Row{
		{No: 1, ItemName: "Keep Me", PurchaseCost: 1000},
		{No: 2, ItemName: "Delete Me", PurchaseCost: 2000},
	})
	req := httptest.NewRequest(http.MethodDelete, "/books/"+book.Id+"/rows/2", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("id", book.Id)
	req.SetPathValue("no", "2")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	rows, _ := deps.Workspace.Rows(book.Id)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row after delete, got %d", len(rows))
	}
	if rows[0].ItemName != "Keep Me" {
		t.Errorf("surviving row = %+v", rows[0])
	}
}

func TestHandleRowDelete_InvalidNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	book := testhelpers.CreateTestBook(t, app, "Bad No Book", "unused.xlsx")

	handler := HandleRowDelete(app, newTestDeps())

	req := httptest.NewRequest(http.MethodDelete, "/books/"+book.Id+"/rows/abc", nil)
	req.SetPathValue("id", book.Id)
	req.SetPathValue("no", "abc")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleRecompute_CleanBatchNoToast(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	book := testhelpers.CreateTestBook(t, app, "Quiet Book", "unused.xlsx")

	deps := newTestDeps()
	handler := HandleRecompute(app, deps)

	req := postGrid(t, "/books/"+book.Id+"/recompute", []services.Row{
		{No: 1, ItemName: "Fine", PurchaseCost: 1000},
	})
	req.SetPathValue("id", book.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Header().Get("HX-Trigger") != "" {
		t.Error("clean batch should not raise a toast")
	}
}
