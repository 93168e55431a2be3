package segment

import (
	"errors"
	"fmt"
	"image"
	"testing"
)

// scriptedReader returns canned observations per band, in call order.
type scriptedReader struct {
	texts    []string
	barcodes [][]Barcode
	textErr  error
	calls    int
}

func (r *scriptedReader) ReadText(band image.Image) (string, error) {
	i := r.calls
	if r.textErr != nil {
		return "", r.textErr
	}
	if i < len(r.texts) {
		return r.texts[i], nil
	}
	return "", nil
}

func (r *scriptedReader) ReadBarcodes(band image.Image) ([]Barcode, error) {
	i := r.calls
	r.calls++
	if i < len(r.barcodes) {
		return r.barcodes[i], nil
	}
	return nil, nil
}

func TestBuildAreas_SkipsThinBands(t *testing.T) {
	img := createPage(600, 800)
	// Bands: 100 (kept), 30 (sliver), 270 (kept), 400 (kept).
	bounds := []int{0, 100, 130, 400, 800}
	reader := &scriptedReader{texts: []string{"first", "second", "third"}}

	areas := BuildAreas(1, img, bounds, reader)

	if len(areas) != 3 {
		t.Fatalf("areas: got %d, want 3", len(areas))
	}
	if reader.calls != 3 {
		t.Errorf("collaborator invoked %d times, want 3 (slivers must not be read)", reader.calls)
	}

	wantBbox := [][2]int{{0, 100}, {130, 400}, {400, 800}}
	for i, area := range areas {
		if area.AreaIndex != i {
			t.Errorf("area %d: AreaIndex %d, want %d (emitted areas only)", i, area.AreaIndex, i)
		}
		if area.Bbox != wantBbox[i] {
			t.Errorf("area %d: bbox %v, want %v", i, area.Bbox, wantBbox[i])
		}
		if area.Page != 1 {
			t.Errorf("area %d: page %d, want 1", i, area.Page)
		}
	}
	if areas[1].OCRText != "second" {
		t.Errorf("area 1 text: got %q, want %q", areas[1].OCRText, "second")
	}
}

func TestBuildAreas_SanitizesAndTranslatesBarcodes(t *testing.T) {
	img := createPage(600, 800)
	bounds := []int{0, 400, 800}
	reader := &scriptedReader{
		barcodes: [][]Barcode{
			nil,
			{{Type: "CODE_128", Value: "J-123.45#", Rect: Rect{X: 10, Y: 20, Width: 200, Height: 40}}},
		},
	}

	areas := BuildAreas(1, img, bounds, reader)

	if len(areas) != 2 {
		t.Fatalf("areas: got %d, want 2", len(areas))
	}
	code := areas[1].Barcodes[0]
	if code.Value != "J12345" {
		t.Errorf("sanitized value: got %q, want %q", code.Value, "J12345")
	}
	if code.Rect.Y != 420 {
		t.Errorf("rect y: got %d, want 420 (band-local 20 + band top 400)", code.Rect.Y)
	}
	if code.Rect.X != 10 || code.Rect.Width != 200 || code.Rect.Height != 40 {
		t.Errorf("rect x/w/h must be untouched, got %+v", code.Rect)
	}
}

func TestBuildAreas_CollaboratorErrorDegrades(t *testing.T) {
	img := createPage(600, 800)
	bounds := []int{0, 800}
	reader := &scriptedReader{textErr: errors.New("engine unavailable")}

	areas := BuildAreas(1, img, bounds, reader)

	if len(areas) != 1 {
		t.Fatalf("areas: got %d, want 1", len(areas))
	}
	if areas[0].OCRText != "" {
		t.Errorf("text after OCR failure: got %q, want empty", areas[0].OCRText)
	}
}

func TestSanitizeValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"J-123.45#", "J12345"},
		{"J4440801A0Q120", "J4440801A0Q120"},
		{" J 12\t34\n", "J1234"},
		{"", ""},
		{"!@#$%", ""},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			got := SanitizeValue(tt.in)
			if got != tt.want {
				t.Errorf("SanitizeValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := SanitizeValue(got); again != got {
				t.Errorf("sanitization not idempotent: %q -> %q", got, again)
			}
		})
	}
}
