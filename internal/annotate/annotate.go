// Package annotate renders diagnostic overlays for processed pages: area
// band outlines, barcode boxes with their decoded values, and a preview of
// each band's recognized text. The overlays exist purely for human
// inspection of segmentation quality; nothing downstream consumes them.
package annotate

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/montimage/jobcard-extract/internal/segment"
)

const (
	outlineThickness = 2
	previewRunes     = 80
)

var (
	barcodeColor = color.RGBA{0, 200, 0, 255}
	textColor    = color.RGBA{0, 0, 220, 255}
)

// Page draws the overlay for one page: each emitted area gets an outline in
// a distinct hue, each barcode a green box labeled with its value, and each
// area's first text characters a preview label near the band top.
func Page(img image.Image, areas []segment.Area) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)

	width := out.Bounds().Dx()

	for _, a := range areas {
		top, bottom := a.Bbox[0], a.Bbox[1]
		drawBox(out, image.Rect(0, top, width-1, bottom-1), areaColor(a.AreaIndex))

		for _, code := range a.Barcodes {
			box := image.Rect(code.Rect.X, code.Rect.Y, code.Rect.X+code.Rect.Width, code.Rect.Y+code.Rect.Height)
			drawBox(out, box, barcodeColor)
			drawLabel(out, code.Rect.X, max(code.Rect.Y-10, 10), code.Value, barcodeColor)
		}

		if a.OCRText != "" {
			drawLabel(out, 5, top+25, preview(a.OCRText), textColor)
		}
	}

	return out
}

// areaColor rotates through distinct saturated hues so adjacent bands are
// easy to tell apart.
func areaColor(index int) color.RGBA {
	hue := float64((index * 67) % 360)
	r, g, b := colorful.Hsv(hue, 0.9, 0.9).RGB255()
	return color.RGBA{r, g, b, 255}
}

// preview flattens the first characters of an area's text into one line.
func preview(text string) string {
	flat := make([]rune, 0, previewRunes)
	for _, r := range text {
		if r == '\n' {
			r = ' '
		}
		flat = append(flat, r)
		if len(flat) == previewRunes {
			break
		}
	}
	return string(flat)
}

// drawBox outlines a rectangle, clipped to the image.
func drawBox(img *image.RGBA, box image.Rectangle, c color.RGBA) {
	for t := 0; t < outlineThickness; t++ {
		for x := box.Min.X; x <= box.Max.X; x++ {
			setClipped(img, x, box.Min.Y+t, c)
			setClipped(img, x, box.Max.Y-t, c)
		}
		for y := box.Min.Y; y <= box.Max.Y; y++ {
			setClipped(img, box.Min.X+t, y, c)
			setClipped(img, box.Max.X-t, y, c)
		}
	}
}

func setClipped(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

// drawLabel renders a single text line at (x, y) using the built-in 7x13
// bitmap face; y is the text baseline.
func drawLabel(img *image.RGBA, x, y int, text string, c color.RGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
