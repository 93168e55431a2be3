package extract

import (
	"testing"

	"github.com/montimage/jobcard-extract/internal/segment"
)

// area is a shorthand constructor for test fixtures.
func area(page, index int, text string, barcodes ...string) segment.Area {
	a := segment.Area{Page: page, AreaIndex: index, OCRText: text}
	for _, value := range barcodes {
		a.Barcodes = append(a.Barcodes, segment.Barcode{Value: value})
	}
	return a
}

func TestResolveJobNumber_LabelAnchored(t *testing.T) {
	areas := []segment.Area{
		area(1, 0, "Job No: 12345", "J12345", "J67890"),
		area(1, 1, "Other", "OTHER1"),
	}

	if got := ResolveJobNumber(areas); got != "J12345" {
		t.Errorf("got %q, want %q", got, "J12345")
	}
}

func TestResolveJobNumber_FallbackFirstBarcode(t *testing.T) {
	areas := []segment.Area{
		area(1, 0, "Work Order Header"),
		area(1, 1, "no label here", "J99999"),
		area(1, 2, "Job No printed but no barcode in this band"),
	}

	if got := ResolveJobNumber(areas); got != "J99999" {
		t.Errorf("got %q, want %q", got, "J99999")
	}
}

func TestResolveJobNumber_LabelBeatsEarlierBarcode(t *testing.T) {
	// The label-anchored pass runs to completion before the positional
	// fallback is consulted.
	areas := []segment.Area{
		area(1, 0, "unrelated", "XQ111"),
		area(1, 1, "Job No: 4711", "J4711"),
	}

	if got := ResolveJobNumber(areas); got != "J4711" {
		t.Errorf("got %q, want %q", got, "J4711")
	}
}

func TestResolveJobNumber_IgnoresLaterPages(t *testing.T) {
	areas := []segment.Area{
		area(2, 0, "Job No: 999", "J999"),
		area(1, 0, "nothing here"),
	}

	if got := ResolveJobNumber(areas); got != "" {
		t.Errorf("got %q, want empty (page-2 barcodes must not be used)", got)
	}
}

func TestResolveJobNumber_OrdersByPageAndIndex(t *testing.T) {
	// Input order is not trusted; areas are visited by (page, area_index).
	areas := []segment.Area{
		area(1, 1, "second band", "J2222"),
		area(1, 0, "first band", "J1111"),
	}

	if got := ResolveJobNumber(areas); got != "J1111" {
		t.Errorf("got %q, want %q", got, "J1111")
	}
}

func TestResolveJobNumber_Empty(t *testing.T) {
	if got := ResolveJobNumber(nil); got != "" {
		t.Errorf("got %q, want empty string", got)
	}
	if got := ResolveJobNumber([]segment.Area{}); got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}
