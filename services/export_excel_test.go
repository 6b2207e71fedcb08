package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func exportRows() []Row {
	return []Row{
		{
			No: 1, ItemName: "Organic Apples", PurchaseCost: 10000,
			TargetMarginPct: 20, ActualMarginPct: 20, MarginAmount: 2688,
			FeeRatePct: 5.6, FeeAmount: 753, SellingPrice: 13441,
			Status: StatusNormal, UpdatedAt: "08/30 14:25", UpdatedBy: "Supplier",
		},
		{
			No: 2, Reverse: true, ItemName: "Market Eggs", PurchaseCost: 18093,
			TargetMarginPct: 20, SellingPrice: 23000, Status: StatusPriceInversion,
		},
	}
}

func TestGenerateExcel(t *testing.T) {
	data, err := GenerateExcel("Organic Produce Price List", "08/30 14:25", exportRows())
	if err != nil {
		t.Fatalf("GenerateExcel failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty file")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated file is not a valid workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != "Organic Produce Price List" {
		t.Errorf("sheet name = %q", sheet)
	}

	title, _ := f.GetCellValue(sheet, "A1")
	if title != "Organic Produce Price List" {
		t.Errorf("title cell = %q", title)
	}

	// Headers live on row 4.
	header, _ := f.GetCellValue(sheet, "D4")
	if header != ColItemName {
		t.Errorf("D4 = %q, want %q", header, ColItemName)
	}

	// Presentational values: formatted currency, icon-annotated names.
	cost, _ := f.GetCellValue(sheet, "E5")
	if cost != "₩10,000" {
		t.Errorf("E5 = %q, want ₩10,000", cost)
	}
	name, _ := f.GetCellValue(sheet, "D6")
	if name != "⚠️ 🔄 Market Eggs" {
		t.Errorf("D6 = %q, want annotated name", name)
	}
	status, _ := f.GetCellValue(sheet, "C6")
	if status != "🔴 Inverted" {
		t.Errorf("C6 = %q, want inverted label", status)
	}
}

func TestGenerateExcelEmptyTitle(t *testing.T) {
	data, err := GenerateExcel("", "08/30 14:25", nil)
	if err != nil {
		t.Fatalf("GenerateExcel failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated file is not a valid workbook: %v", err)
	}
	defer f.Close()

	if f.GetSheetName(0) != "Price List" {
		t.Errorf("sheet name = %q, want fallback", f.GetSheetName(0))
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Apples", "Apples"},
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1000", "'+1000"},
		{"-1000", "'-1000"},
		{"@cmd", "'@cmd"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.in); got != tt.want {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
