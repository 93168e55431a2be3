package segment

import (
	"image"
	"image/color"
	"reflect"
	"testing"
)

// createPage creates a white page image.
func createPage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

// drawRule draws a full-width black rule of the given thickness starting at y.
func drawRule(img *image.RGBA, y, thickness int) {
	b := img.Bounds()
	for t := 0; t < thickness; t++ {
		for x := 0; x < b.Dx(); x++ {
			img.Set(x, y+t, color.Black)
		}
	}
}

func TestDetectSeparators_BlankPage(t *testing.T) {
	img := createPage(600, 800)

	got := DetectSeparators(img)

	want := []int{0, 800}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("blank page boundaries: got %v, want %v", got, want)
	}
}

func TestDetectSeparators_ThreeRules(t *testing.T) {
	img := createPage(600, 800)
	drawRule(img, 100, 3)
	drawRule(img, 250, 3)
	drawRule(img, 400, 3)

	got := DetectSeparators(img)

	want := []int{0, 100, 250, 400, 800}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("boundaries: got %v, want %v", got, want)
	}
}

func TestDetectSeparators_ShortRuleIgnored(t *testing.T) {
	img := createPage(600, 800)
	drawRule(img, 100, 3)
	// A table border spanning half the page must not become a separator.
	for t2 := 0; t2 < 3; t2++ {
		for x := 0; x < 300; x++ {
			img.Set(x, 300+t2, color.Black)
		}
	}

	got := DetectSeparators(img)

	want := []int{0, 100, 800}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("boundaries: got %v, want %v", got, want)
	}
}

func TestDetectSeparators_TextBlobSuppressed(t *testing.T) {
	img := createPage(600, 800)
	drawRule(img, 100, 3)
	// A dense text-like blob: tall and narrow relative to the opening
	// element, so it must not survive.
	for y := 500; y < 520; y++ {
		for x := 200; x < 280; x++ {
			img.Set(x, y, color.Black)
		}
	}

	got := DetectSeparators(img)

	want := []int{0, 100, 800}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("boundaries: got %v, want %v", got, want)
	}
}

func TestDetectSeparators_Deterministic(t *testing.T) {
	img := createPage(600, 800)
	drawRule(img, 120, 3)
	drawRule(img, 480, 3)

	first := DetectSeparators(img)
	for i := 0; i < 3; i++ {
		if got := DetectSeparators(img); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: got %v, want %v", i, got, first)
		}
	}
}

func TestDetectSeparators_RuleAtBoundaryDeduplicated(t *testing.T) {
	img := createPage(600, 800)
	drawRule(img, 0, 3)

	got := DetectSeparators(img)

	// The rule's top y coincides with the page top; 0 must appear once.
	want := []int{0, 800}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("boundaries: got %v, want %v", got, want)
	}
}
