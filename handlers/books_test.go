package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"pricehub/testhelpers"
)

func TestHandleBookList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestBook(t, app, "Organic Produce Price List", "pb_data/workbooks/produce.xlsx")

	middleware := SessionMiddleware(app)
	handler := HandleBookList(app)

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	_ = middleware(e)
	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Organic Produce Price List", "produce.xlsx")
}

func TestHandleBookCreate_GET(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleBookCreate(app)

	req := httptest.NewRequest(http.MethodGet, "/books/create", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "name", "workbook_path")
}

func TestHandleBookSave_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleBookSave(app)

	form := url.Values{}
	form.Set("name", "Winter Price List")
	form.Set("workbook_path", "pb_data/workbooks/winter.xlsx")

	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	records, err := app.FindAllRecords("price_books")
	if err != nil || len(records) != 1 {
		t.Fatalf("expected 1 saved book, got %d (err %v)", len(records), err)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/books/"+records[0].Id)
}

func TestHandleBookSave_ValidationErrors(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleBookSave(app)

	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{
			"missing name",
			url.Values{"workbook_path": {"pb_data/workbooks/a.xlsx"}},
			"Name is required",
		},
		{
			"missing path",
			url.Values{"name": {"A Book"}},
			"Workbook path is required",
		},
		{
			"wrong extension",
			url.Values{"name": {"A Book"}, "workbook_path": {"prices.csv"}},
			"must point to an .xlsx file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, req, rec)

			if err := handler(e); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			testhelpers.AssertHTMLContains(t, rec.Body.String(), tt.want)
		})
	}

	if records, _ := app.FindAllRecords("price_books"); len(records) != 0 {
		t.Errorf("invalid submissions should not be saved, found %d records", len(records))
	}
}

func TestHandleBookDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	book := testhelpers.CreateTestBook(t, app, "Doomed Book", "pb_data/workbooks/doomed.xlsx")

	deps := newTestDeps()
	deps.Workspace.SetRows(book.Id, nil)

	handler := HandleBookDelete(app, deps)

	req := httptest.NewRequest(http.MethodDelete, "/books/"+book.Id, nil)
	req.SetPathValue("id", book.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if _, err := app.FindRecordById("price_books", book.Id); err == nil {
		t.Error("book should have been deleted")
	}
	if _, ok := deps.Workspace.Rows(book.Id); ok {
		t.Error("workspace rows should have been dropped")
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/books")
}

func TestHandleBookDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleBookDelete(app, newTestDeps())

	req := httptest.NewRequest(http.MethodDelete, "/books/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleBookActivate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	book := testhelpers.CreateTestBook(t, app, "Active Book", "pb_data/workbooks/active.xlsx")

	handler := HandleBookActivate(app)

	req := httptest.NewRequest(http.MethodPost, "/books/"+book.Id+"/activate", nil)
	req.SetPathValue("id", book.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "active_book" {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value != book.Id {
		t.Errorf("expected active_book cookie %s, got %+v", book.Id, cookie)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/books/"+book.Id)
}
