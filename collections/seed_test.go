package collections_test

import (
	"testing"

	"pricehub/collections"
	"pricehub/testhelpers"
)

func TestSeed_CreatesDefaultBook(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	books, err := app.FindAllRecords("price_books")
	if err != nil {
		t.Fatalf("query price books error: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("expected 1 price book, got %d", len(books))
	}
	if books[0].GetString("name") != "Organic Produce Price List" {
		t.Errorf("book name = %q", books[0].GetString("name"))
	}
	if books[0].GetString("workbook_path") != "pb_data/workbooks/organic-produce.xlsx" {
		t.Errorf("workbook path = %q", books[0].GetString("workbook_path"))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	books, _ := app.FindAllRecords("price_books")
	if len(books) != 1 {
		t.Errorf("expected 1 price book after idempotent seed, got %d", len(books))
	}
}

func TestSeed_SkipsWhenBooksExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestBook(t, app, "Existing Book", "pb_data/workbooks/existing.xlsx")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	books, _ := app.FindAllRecords("price_books")
	if len(books) != 1 {
		t.Errorf("expected seed to skip, got %d books", len(books))
	}
	if books[0].GetString("name") != "Existing Book" {
		t.Errorf("unexpected book %q", books[0].GetString("name"))
	}
}
