package extract

import (
	"sort"
	"strings"

	"github.com/montimage/jobcard-extract/internal/segment"
)

// jobLabel is the printed marker anchoring the job-number field on page 1.
const jobLabel = "Job No"

// Result is the final structured record for one document.
type Result struct {
	JobNumber  string      `json:"job_number"`
	Operations []Operation `json:"operations"`
}

// ResolveJobNumber infers the document's job number from the areas of the
// first page. Label-anchored matching is tried first: the first page-1 area
// whose text contains the "Job No" marker contributes its first barcode.
// Failing that, the first page-1 area with any barcode at all does, on the
// structural convention that the job barcode is printed before any
// operation barcodes. An empty string means no job number was found, which
// is a valid outcome rather than an error.
func ResolveJobNumber(areas []segment.Area) string {
	ordered := make([]segment.Area, len(areas))
	copy(ordered, areas)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Page != ordered[j].Page {
			return ordered[i].Page < ordered[j].Page
		}
		return ordered[i].AreaIndex < ordered[j].AreaIndex
	})

	for _, area := range ordered {
		if area.Page != 1 {
			continue
		}
		if strings.Contains(strings.TrimSpace(area.OCRText), jobLabel) && len(area.Barcodes) > 0 {
			return area.Barcodes[0].Value
		}
	}

	for _, area := range ordered {
		if area.Page != 1 {
			continue
		}
		if len(area.Barcodes) > 0 {
			return area.Barcodes[0].Value
		}
	}

	return ""
}
