package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pickmate-wms/pickmatego/internal/models"
)

func testLocations() []models.StockLocation {
	return []models.StockLocation{
		{ID: 1, Name: "Shelf 1", Barcode: "LOC001"},
		{ID: 2, Name: "Shelf 2", Barcode: "LOC002"},
		{ID: 3, Name: "Damaged Goods", Barcode: "LOC-DMG"},
	}
}

func TestBuildPagesOnePerLocation(t *testing.T) {
	locations := testLocations()

	pages := BuildPages(locations)
	if len(pages) != len(locations) {
		t.Fatalf("Expected %d pages, got %d", len(locations), len(pages))
	}

	for i, page := range pages {
		if page.Title != locations[i].Name {
			t.Errorf("Page %d: expected title %q, got %q", i, locations[i].Name, page.Title)
		}
		if page.BarcodeValue != locations[i].Barcode {
			t.Errorf("Page %d: expected value %q, got %q", i, locations[i].Barcode, page.BarcodeValue)
		}
	}
}

func TestBuildPagesImageRef(t *testing.T) {
	pages := BuildPages([]models.StockLocation{{ID: 1, Name: "Shelf 1", Barcode: "LOC001"}})
	if len(pages) != 1 {
		t.Fatalf("Expected 1 page, got %d", len(pages))
	}

	ref := pages[0].ImageRef
	if !strings.Contains(ref, "value=LOC001") {
		t.Errorf("Image ref should contain value=LOC001, got %q", ref)
	}
	if !strings.Contains(ref, "type=Code128") {
		t.Errorf("Image ref should request Code128, got %q", ref)
	}
}

func TestBuildPagesBreakCount(t *testing.T) {
	locations := testLocations()

	breaks := 0
	for _, page := range BuildPages(locations) {
		if page.BreakBefore {
			breaks++
		}
	}
	if breaks != len(locations)-1 {
		t.Errorf("Expected %d page breaks, got %d", len(locations)-1, breaks)
	}

	if pages := BuildPages(nil); len(pages) != 0 {
		t.Errorf("Empty input should produce no pages, got %d", len(pages))
	}
}

func TestBuildPagesEmptyBarcodePassesThrough(t *testing.T) {
	pages := BuildPages([]models.StockLocation{{ID: 9, Name: "No Code"}})
	if pages[0].BarcodeValue != "" {
		t.Errorf("Expected empty value, got %q", pages[0].BarcodeValue)
	}
	if !strings.HasSuffix(pages[0].ImageRef, "value=") {
		t.Errorf("Empty value should flow into the ref unchanged, got %q", pages[0].ImageRef)
	}
}

func TestGenerateLocationLabelsPDF(t *testing.T) {
	data, err := GenerateLocationLabelsPDF(testLocations())
	if err != nil {
		t.Fatalf("Failed to generate PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Output should be a PDF document")
	}

	// Empty barcode must not fail the document
	data, err = GenerateLocationLabelsPDF([]models.StockLocation{{ID: 9, Name: "No Code"}})
	if err != nil {
		t.Fatalf("Empty barcode should not fail rendering: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected a document for a location without barcode")
	}
}

func TestGenerateLocationLabelsPDFEmptyInput(t *testing.T) {
	data, err := GenerateLocationLabelsPDF(nil)
	if err != nil {
		t.Fatalf("Empty input should not error: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Empty input should produce no document, got %d bytes", len(data))
	}
}
