package segment

import (
	"image"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
)

// MinAreaHeight is the noise floor for band height in pixels. Slivers between
// closely spaced rules are segmentation artifacts, not fields, and are
// dropped before any OCR or barcode work is spent on them.
const MinAreaHeight = 50

// Rect is an axis-aligned box in page-pixel coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Barcode is one decoded barcode observation within an area. Value is
// sanitized to alphanumeric characters only and Rect.Y is page-absolute,
// not band-relative.
type Barcode struct {
	Type  string `json:"type"`
	Value string `json:"barcode"`
	Rect  Rect   `json:"rect"`
}

// Area is one horizontal band of a page, bounded by two separator lines or
// page edges. Areas are created once during segmentation and are read-only
// afterward.
type Area struct {
	// Page is the 1-based page number the band belongs to.
	Page int `json:"page"`

	// AreaIndex is the 0-based position among the emitted areas of the
	// page, in top-to-bottom order. Skipped slivers do not consume an
	// index.
	AreaIndex int `json:"area_index"`

	// Bbox holds the band's top and bottom y in page pixels.
	Bbox [2]int `json:"bbox"`

	// OCRText is the raw recognized text for the band; may be empty.
	OCRText string `json:"ocr_text"`

	// Barcodes lists the band's barcode observations in detection order.
	Barcodes []Barcode `json:"barcodes"`
}

// BandReader supplies the raw per-band observations: recognized text and
// decoded barcodes with band-local coordinates. Implementations wrap the
// external OCR and barcode-decoding engines; the builder owns sanitization
// and coordinate translation.
type BandReader interface {
	// ReadText recognizes the text within one band image.
	ReadText(band image.Image) (string, error)

	// ReadBarcodes decodes the barcodes within one band image. Returned
	// values are raw and rects are band-relative.
	ReadBarcodes(band image.Image) ([]Barcode, error)
}

// BuildAreas materializes the ordered Area sequence for one page from its
// boundary list. Bands shorter than MinAreaHeight are skipped outright, with
// no collaborator invoked for them. Collaborator failures on a band degrade
// to empty observations rather than aborting the page.
func BuildAreas(page int, img image.Image, bounds []int, r BandReader) []Area {
	width := img.Bounds().Dx()
	areas := []Area{}

	for i := 0; i+1 < len(bounds); i++ {
		top, bottom := bounds[i], bounds[i+1]
		if bottom-top < MinAreaHeight {
			continue
		}

		band := imaging.Crop(img, image.Rect(0, top, width, bottom))

		text, err := r.ReadText(band)
		if err != nil {
			text = ""
		}

		codes, err := r.ReadBarcodes(band)
		if err != nil {
			codes = nil
		}
		for j := range codes {
			codes[j].Value = SanitizeValue(codes[j].Value)
			codes[j].Rect.Y += top
		}

		areas = append(areas, Area{
			Page:      page,
			AreaIndex: len(areas),
			Bbox:      [2]int{top, bottom},
			OCRText:   text,
			Barcodes:  codes,
		})
	}

	return areas
}

// SanitizeValue strips every character that is not a letter or digit from a
// decoded barcode payload: punctuation, whitespace, and control characters
// introduced by the symbology or the decoder. Sanitization is idempotent.
func SanitizeValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
