package imaging

import (
	"image/color"
	"testing"
)

// makeMask creates an empty w×h binary mask.
func makeMask(w, h int) [][]bool {
	mask := make([][]bool, h)
	for y := range mask {
		mask[y] = make([]bool, w)
	}
	return mask
}

// setRun marks a horizontal run of foreground pixels.
func setRun(mask [][]bool, y, x1, x2 int) {
	for x := x1; x <= x2; x++ {
		mask[y][x] = true
	}
}

func TestOpen_WideRunSurvivesWithExactExtent(t *testing.T) {
	mask := makeMask(600, 100)
	// Full-width rule, 3 pixels thick.
	for y := 40; y <= 42; y++ {
		setRun(mask, y, 0, 599)
	}

	opened := Open(mask, 120, 2, 2)

	for y := 40; y <= 42; y++ {
		for _, x := range []int{0, 300, 599} {
			if !opened[y][x] {
				t.Fatalf("pixel (%d,%d) of surviving rule lost by opening", x, y)
			}
		}
	}
	if opened[39][300] || opened[43][300] {
		t.Error("opening must not grow the rule vertically")
	}
}

func TestOpen_RemovesSmallBlobs(t *testing.T) {
	mask := makeMask(600, 100)
	// Text-sized blob: 20 px wide, 10 px tall, far smaller than the
	// 120-wide element.
	for y := 30; y < 40; y++ {
		setRun(mask, y, 100, 119)
	}

	opened := Open(mask, 120, 2, 2)

	for y := range opened {
		for x := range opened[y] {
			if opened[y][x] {
				t.Fatalf("pixel (%d,%d) of small blob survived opening", x, y)
			}
		}
	}
}

func TestOpen_RemovesThinSingleRowAfterTwoIterations(t *testing.T) {
	mask := makeMask(600, 100)
	setRun(mask, 50, 0, 599)

	// Two erosions with a 2-tall element need at least 3 rows; a 1-px rule
	// is treated as noise.
	opened := Open(mask, 120, 2, 2)

	for y := range opened {
		for x := range opened[y] {
			if opened[y][x] {
				t.Fatalf("pixel (%d,%d) of 1-px rule survived double opening", x, y)
			}
		}
	}
}

func TestErodeDilate_Identity(t *testing.T) {
	mask := makeMask(50, 50)
	setRun(mask, 25, 10, 39)

	e := Erode(mask, 1, 1)
	d := Dilate(mask, 1, 1)
	for y := range mask {
		for x := range mask[y] {
			if e[y][x] != mask[y][x] || d[y][x] != mask[y][x] {
				t.Fatalf("1×1 element must be identity at (%d,%d)", x, y)
			}
		}
	}
}

func TestPrepareForOCR_UpscalesShortBands(t *testing.T) {
	img := createTestImage(400, 80, color.White)
	drawHorizontalLine(img, 30, 4)

	prepared := PrepareForOCR(img)

	if got := prepared.Bounds().Dy(); got != 600 {
		t.Errorf("prepared height: got %d, want 600", got)
	}
	if prepared.Bounds().Dx() <= 400 {
		t.Errorf("width should scale with height, got %d", prepared.Bounds().Dx())
	}
}
