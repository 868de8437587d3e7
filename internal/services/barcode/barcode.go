// Package barcode renders the symbol images referenced by printed labels.
package barcode

import (
	"bytes"
	"fmt"
	"image/png"

	boombuler "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	qrcode "github.com/skip2/go-qrcode"
)

// Symbol types accepted by the /report/barcode endpoint
const (
	TypeCode128 = "Code128"
	TypeQR      = "QR"
)

// Default pixel geometry, matching the label templates
const (
	DefaultWidth  = 600
	DefaultHeight = 100
)

// Generate renders a barcode symbol as PNG at the requested pixel size.
// The value is passed to the encoder untouched; an unencodable value
// surfaces as an encoder error, not as a validation step here.
func Generate(symType, value string, width, height int) ([]byte, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	switch symType {
	case TypeCode128:
		return generateCode128(value, width, height)
	case TypeQR:
		// QR symbols are square; width wins
		return qrcode.Encode(value, qrcode.Medium, width)
	default:
		return nil, fmt.Errorf("unsupported barcode type: %q", symType)
	}
}

func generateCode128(value string, width, height int) ([]byte, error) {
	symbol, err := code128.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode Code128: %w", err)
	}

	scaled, err := boombuler.Scale(symbol, width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to scale symbol: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return buf.Bytes(), nil
}
