package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	pdfbarcode "github.com/jung-kurt/gofpdf/contrib/barcode"
	"github.com/pickmate-wms/pickmatego/internal/models"
)

// Label stock: 102 x 102 mm, one location per page
const (
	labelWidthMM  = 102.0
	labelHeightMM = 102.0

	// Pixel geometry of the referenced barcode image
	barcodeImgWidth  = 600
	barcodeImgHeight = 100
)

// LabelPage is the resolved content of one printed location label
type LabelPage struct {
	Title        string `json:"title"`         // location display name
	BarcodeValue string `json:"barcode_value"` // raw value, encoded as Code128
	ImageRef     string `json:"image_ref"`     // URL of the symbol image for non-PDF consumers
	BreakBefore  bool   `json:"break_before"`  // forced page break, set on every page after the first
}

// BuildPages derives one label page per location. The barcode value is taken
// as-is: an empty or malformed value flows into ImageRef unchanged and the
// symbol area stays blank on the PDF.
func BuildPages(locations []models.StockLocation) []LabelPage {
	pages := make([]LabelPage, 0, len(locations))
	for i, loc := range locations {
		pages = append(pages, LabelPage{
			Title:        loc.Name,
			BarcodeValue: loc.Barcode,
			ImageRef: fmt.Sprintf("/report/barcode?type=Code128&width=%d&height=%d&value=%s",
				barcodeImgWidth, barcodeImgHeight, loc.Barcode),
			BreakBefore: i > 0,
		})
	}
	return pages
}

// GenerateLocationLabelsPDF renders location barcode labels, one page per
// location on 102x102mm stock: name on top, Code128 symbol in the middle,
// the raw value as text underneath.
func GenerateLocationLabelsPDF(locations []models.StockLocation) ([]byte, error) {
	pages := BuildPages(locations)
	if len(pages) == 0 {
		return nil, nil
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: labelWidthMM, Ht: labelHeightMM},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 14)

	for _, page := range pages {
		if page.BreakBefore || pdf.PageNo() == 0 {
			pdf.AddPage()
		}

		// Location name, centered on top
		pdf.SetXY(4, 8)
		pdf.SetFontSize(14)
		pdf.CellFormat(labelWidthMM-8, 10, page.Title, "", 0, "C", false, 0, "")

		// Code128 symbol, centered. An empty value would not encode, so the
		// area is left blank instead of failing the whole document.
		if page.BarcodeValue != "" {
			key := pdfbarcode.RegisterCode128(pdf, page.BarcodeValue)
			pdfbarcode.Barcode(pdf, key, 11, 34, 80, 26, false)
		}

		// Human-readable value below the symbol
		pdf.SetXY(4, 66)
		pdf.SetFontSize(11)
		pdf.CellFormat(labelWidthMM-8, 8, page.BarcodeValue, "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
