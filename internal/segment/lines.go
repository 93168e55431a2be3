package segment

import (
	"image"
	"sort"

	"github.com/montimage/jobcard-extract/internal/imaging"
)

const (
	// thresholdBlock and thresholdOffset tune the local-adaptive
	// binarization for printed rule weight.
	thresholdBlock  = 35
	thresholdOffset = 15

	// openIterations controls how aggressively the morphological opening
	// suppresses text while keeping rules.
	openIterations = 2

	// minLineWidthRatio filters out short rules and table borders: a
	// separator must span at least this fraction of the page width.
	minLineWidthRatio = 0.6
)

// DetectSeparators finds the y-coordinates of page-wide horizontal separator
// lines and returns them as an ascending, deduplicated boundary list that
// always includes 0 and the page height. Adjacent boundary pairs delimit the
// candidate areas of the page.
//
// The page is binarized with inverted local-adaptive thresholding so ink
// becomes foreground, then opened with a structuring element one fifth of the
// page width wide and 2 pixels tall. Only features that are both thin and
// nearly page-wide survive; their connected components are filtered by
// bounding-box width and contribute their top y-coordinate.
//
// A page with no qualifying lines yields exactly [0, height]. The result is
// deterministic for a given image.
func DetectSeparators(img image.Image) []int {
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	mask := imaging.AdaptiveThreshold(imaging.Grayscale(img), thresholdBlock, thresholdOffset)

	kernelWidth := width / 5
	if kernelWidth < 1 {
		kernelWidth = 1
	}
	opened := imaging.Open(mask, kernelWidth, 2, openIterations)

	minLineWidth := int(float64(width) * minLineWidthRatio)

	seen := map[int]bool{0: true, height: true}
	boundaries := []int{0, height}
	for _, box := range findComponents(opened) {
		if box.Dx()+1 < minLineWidth {
			continue
		}
		if y := box.Min.Y; !seen[y] {
			seen[y] = true
			boundaries = append(boundaries, y)
		}
	}

	sort.Ints(boundaries)
	return boundaries
}

// findComponents returns the bounding box of every 8-connected foreground
// component in the mask. Scan order is top-to-bottom, left-to-right, so the
// result order is deterministic.
func findComponents(mask [][]bool) []image.Rectangle {
	h := len(mask)
	if h == 0 {
		return nil
	}
	w := len(mask[0])

	visited := make([][]bool, h)
	for y := range visited {
		visited[y] = make([]bool, w)
	}

	var boxes []image.Rectangle
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask[y][x] && !visited[y][x] {
				boxes = append(boxes, traceComponent(mask, visited, x, y, w, h))
			}
		}
	}
	return boxes
}

// traceComponent flood-fills one component with an explicit stack and
// accumulates its bounding box. Min is inclusive, Max is the last foreground
// pixel (not exclusive), so Dx/Dy are one short of the pixel extent.
func traceComponent(mask, visited [][]bool, startX, startY, w, h int) image.Rectangle {
	box := image.Rect(startX, startY, startX, startY)
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		if visited[p.Y][p.X] || !mask[p.Y][p.X] {
			continue
		}
		visited[p.Y][p.X] = true

		if p.X < box.Min.X {
			box.Min.X = p.X
		}
		if p.X > box.Max.X {
			box.Max.X = p.X
		}
		if p.Y < box.Min.Y {
			box.Min.Y = p.Y
		}
		if p.Y > box.Max.Y {
			box.Max.Y = p.Y
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	return box
}
