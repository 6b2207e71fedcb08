package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Seed creates the default price book on a fresh install so the editor has
// something to open. Does nothing when any book already exists.
func Seed(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("price_books")
	if err != nil {
		return fmt.Errorf("find price_books collection: %w", err)
	}

	existing, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("check existing price books: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	record := core.NewRecord(col)
	record.Set("name", "Organic Produce Price List")
	record.Set("workbook_path", "pb_data/workbooks/organic-produce.xlsx")
	record.Set("worksheet", "")

	if err := app.Save(record); err != nil {
		return fmt.Errorf("seed default price book: %w", err)
	}

	fmt.Printf("Seeded default price book %q\n", record.GetString("name"))
	return nil
}
