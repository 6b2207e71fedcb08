package services

import (
	"bytes"
	"testing"
)

func TestGeneratePDF(t *testing.T) {
	data, err := GeneratePDF("Organic Produce Price List", "08/30 14:25", exportRows())
	if err != nil {
		t.Fatalf("GeneratePDF failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PDF")
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with PDF magic: %q", data[:8])
	}
}

func TestGeneratePDFEmptyList(t *testing.T) {
	data, err := GeneratePDF("Empty Book", "08/30 14:25", nil)
	if err != nil {
		t.Fatalf("GeneratePDF failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output does not start with PDF magic")
	}
}
