// Package pipeline composes segmentation, field extraction, and the
// external page collaborators into a single pass over a whole document.
package pipeline

import (
	"fmt"
	"image"
	"log"
	"os"

	"github.com/montimage/jobcard-extract/internal/barcode"
	"github.com/montimage/jobcard-extract/internal/extract"
	"github.com/montimage/jobcard-extract/internal/segment"
)

// Rasterizer renders a source document into its ordered page images. It must
// preserve page order and geometry; downstream pixel coordinates are exact.
type Rasterizer interface {
	Render(path string) ([]image.Image, error)
}

// TextRecognizer recognizes free-form, newline-delimited text within an
// image region. The pipeline treats the output as an opaque noisy string.
type TextRecognizer interface {
	Recognize(region image.Image) (string, error)
}

// BarcodeDecoder decodes the barcode symbols within an image region,
// returning raw payloads with region-local rects.
type BarcodeDecoder interface {
	Decode(region image.Image) ([]barcode.Symbol, error)
}

// Pipeline runs the full extraction over one document: per page, rasterize,
// detect separators, and build areas; then resolve the job number and
// extract operations once over the accumulated document-wide area sequence.
//
// Processing is single-threaded and strictly page-ordered. Segmentation is
// page-local; extraction is deliberately global, since an operation's
// number, name, and tracking code may be spread across pages.
type Pipeline struct {
	Raster     Rasterizer
	Recognizer TextRecognizer
	Decoder    BarcodeDecoder

	// Log receives per-page progress; nil disables it.
	Log *log.Logger
}

// Page keeps one page's raster and boundary list so callers can render
// diagnostics; the pipeline itself never re-reads them after segmentation.
type Page struct {
	Number     int
	Image      image.Image
	Boundaries []int
}

// Document is the outcome of processing one source document.
type Document struct {
	// Result is the structured record: job number plus ordered operations.
	Result extract.Result

	// Areas is the document-wide area sequence the result was derived
	// from, in (page, area index) order.
	Areas []segment.Area

	// Pages holds the per-page rasters and separator boundaries.
	Pages []Page
}

// Process extracts the structured record from the document at path.
//
// A missing document is the only fatal condition and is reported before any
// collaborator is invoked. Per-band collaborator failures degrade to empty
// observations; absent job numbers and unmatched tracking codes are valid
// outcomes, not errors.
func (p *Pipeline) Process(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("document not found: %w", err)
	}

	pages, err := p.Raster.Render(path)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize document: %w", err)
	}

	doc := &Document{Areas: []segment.Area{}}
	reader := &bandReader{pipeline: p}

	for i, img := range pages {
		number := i + 1
		boundaries := segment.DetectSeparators(img)
		p.logf("page %d: separator lines at y = %v", number, boundaries)

		areas := segment.BuildAreas(number, img, boundaries, reader)
		doc.Areas = append(doc.Areas, areas...)
		doc.Pages = append(doc.Pages, Page{Number: number, Image: img, Boundaries: boundaries})
	}

	doc.Result = extract.Result{
		JobNumber:  extract.ResolveJobNumber(doc.Areas),
		Operations: extract.Operations(doc.Areas),
	}
	return doc, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.Log != nil {
		p.Log.Printf(format, args...)
	}
}

// bandReader adapts the pipeline's collaborators to the segment.BandReader
// contract, logging failures before letting the builder degrade them.
type bandReader struct {
	pipeline *Pipeline
}

func (r *bandReader) ReadText(band image.Image) (string, error) {
	text, err := r.pipeline.Recognizer.Recognize(band)
	if err != nil {
		r.pipeline.logf("ocr failed on band: %v", err)
		return "", err
	}
	return text, nil
}

func (r *bandReader) ReadBarcodes(band image.Image) ([]segment.Barcode, error) {
	symbols, err := r.pipeline.Decoder.Decode(band)
	if err != nil {
		r.pipeline.logf("barcode decoding failed on band: %v", err)
		return nil, err
	}

	codes := make([]segment.Barcode, 0, len(symbols))
	for _, sym := range symbols {
		codes = append(codes, segment.Barcode{
			Type:  sym.Format,
			Value: sym.Text,
			Rect: segment.Rect{
				X:      sym.Rect.Min.X,
				Y:      sym.Rect.Min.Y,
				Width:  sym.Rect.Dx(),
				Height: sym.Rect.Dy(),
			},
		})
	}
	return codes, nil
}
