// Package barcode decodes the 1D barcode symbols printed on job cards.
//
// Decoding is delegated to the pure-Go ZXing port. Job cards in practice
// carry Code 128 or Code 39 symbols, so the decoder is configured for the
// one-dimensional family with TRY_HARDER enabled; a band with no readable
// symbol is a normal outcome and yields an empty result, not an error.
package barcode

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi"
	"github.com/makiuchi-d/gozxing/oned"
)

// Symbol is one decoded barcode in region-local pixel coordinates. Text is
// the raw decoded payload; sanitization is the caller's concern.
type Symbol struct {
	// Format names the symbology, e.g. "CODE_128".
	Format string

	// Text is the decoded payload as reported by the reader.
	Text string

	// Rect bounds the symbol within the scanned region. It is derived
	// from the reader's result points, so for 1D symbols the height is
	// the scan-line extent rather than the printed bar height.
	Rect image.Rectangle
}

// Decoder finds and decodes 1D barcodes in image regions.
type Decoder struct {
	hints map[gozxing.DecodeHintType]interface{}
}

// NewDecoder creates a decoder for the one-dimensional symbol family.
func NewDecoder() *Decoder {
	return &Decoder{
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Decode returns every readable symbol in the region, in detection order.
// A region without any symbol returns an empty slice and no error.
func (d *Decoder) Decode(region image.Image) ([]Symbol, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(region)
	if err != nil {
		return nil, err
	}

	reader := multi.NewGenericMultipleBarcodeReader(oned.NewMultiFormatOneDReader(d.hints))
	results, err := reader.DecodeMultiple(bmp, d.hints)
	if err != nil {
		if _, ok := err.(gozxing.NotFoundException); ok {
			return nil, nil
		}
		return nil, err
	}

	symbols := make([]Symbol, 0, len(results))
	for _, result := range results {
		symbols = append(symbols, Symbol{
			Format: result.GetBarcodeFormat().String(),
			Text:   result.GetText(),
			Rect:   pointsToRect(result.GetResultPoints()),
		})
	}
	return symbols, nil
}

// pointsToRect derives a bounding rectangle from a result's scan points,
// padded to at least one pixel in each dimension.
func pointsToRect(points []gozxing.ResultPoint) image.Rectangle {
	if len(points) == 0 {
		return image.Rectangle{}
	}

	minX, minY := points[0].GetX(), points[0].GetY()
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.GetX() < minX {
			minX = p.GetX()
		}
		if p.GetX() > maxX {
			maxX = p.GetX()
		}
		if p.GetY() < minY {
			minY = p.GetY()
		}
		if p.GetY() > maxY {
			maxY = p.GetY()
		}
	}

	rect := image.Rect(int(minX), int(minY), int(maxX), int(maxY))
	if rect.Dx() == 0 {
		rect.Max.X++
	}
	if rect.Dy() == 0 {
		rect.Max.Y++
	}
	return rect
}
