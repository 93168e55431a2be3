// Package render rasterizes source PDF documents into page images via
// MuPDF (go-fitz). Pages come back in document order at the renderer's
// native resolution, uncropped and unscaled, so downstream pixel
// coordinates stay geometry-exact.
package render

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// PDF renders PDF documents page by page.
type PDF struct{}

// NewPDF creates a PDF rasterizer.
func NewPDF() *PDF {
	return &PDF{}
}

// Render returns the ordered page images of the document at path.
func (r *PDF) Render(path string) ([]image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer doc.Close()

	pages := make([]image.Image, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", n+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
