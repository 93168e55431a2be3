package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/montimage/jobcard-extract/internal/segment"
)

// maxOpNumber bounds the plausible operation index range. Larger captures
// are almost always misread calendar years or serial numbers, not
// operation indices.
const maxOpNumber = 1000

var (
	// opBlock matches an area whose text starts with an operation
	// declaration, with the name on the same or a following line:
	// "Operation 120 DRILL" or "30\nWELDING".
	opBlock = regexp.MustCompile(`(?s)^(?:Operation\s+)?(\d+(?:\.\d+)?)\s*[\n\s]+(.+)`)

	// opLine matches a single operation line, tolerating an interposed
	// 4-digit-year noise token: "110 2022 DEBURR".
	opLine = regexp.MustCompile(`^(?:Operation\s+)?(\d+(?:\.\d+)?)\s+(?:20\d\d\s+)?(.*)$`)

	// trackingSuffix extracts the operation-number suffix of a tracking
	// barcode, e.g. the "120" of "J4440801A0Q120".
	trackingSuffix = regexp.MustCompile(`Q(\d+)$`)
)

// nameNoise is the ordered cleanup pipeline for operation names. Each
// pattern is applied to the previous pattern's output; non-matching patterns
// are identity rewrites. Order matters: the specific phrasings of the
// "scan barcodes to start job operation" operator instruction are stripped
// before the trailing catch-all.
var nameNoise = []*regexp.Regexp{
	// Leading 4-digit-year token.
	regexp.MustCompile(`^20\d\d\s+`),
	// Space-joined instruction, tolerating the 0/o confusion in "to".
	regexp.MustCompile(`\s*[sS]can\s+barcodes\s+(?:t[o0]\s+|to\s+)?start\s+job\s+operation.*$`),
	// Hyphen-joined variant with an optional leading ~ marker.
	regexp.MustCompile(`\s*~?[sS]can-barcodes-(?:t[o0]|to)-start-job\s+operation.*$`),
	// Catch-all for unrecognized instruction variants.
	regexp.MustCompile(`\s*~?\s*[sS]can.*$`),
}

// Operation is one manufacturing step from the card.
type Operation struct {
	// OpNumber is the operation index as printed, integer or decimal.
	OpNumber string `json:"op_number"`

	// OpName is the cleaned human-readable label.
	OpName string `json:"op_name"`

	// OpID is the matched tracking-code barcode value, or empty when no
	// candidate matched.
	OpID string `json:"op_id"`

	// Page is the page where the operation was first observed.
	Page int `json:"page"`
}

// trackingCodes is the Pass 2 scratch state: candidate barcode values keyed
// by their extracted operation-number suffix, plus a per-page pool kept for
// proximity matching extensions.
type trackingCodes struct {
	byNumber map[string]string
	byPage   map[int][]string
}

// Operations scans every area's text for operation declarations and
// associates tracking-code barcodes with the discovered operations.
//
// Discovery is two-pass. Pass 1 walks areas in document order, trying a
// whole-text match first (number on one line, name on the next) and then
// every line individually, so several operations concatenated into one area
// are still found. Captured numbers are validated by their integer part;
// values outside 1..1000 are discarded as misreads. Insertion is idempotent:
// the first occurrence of a number wins and is never overwritten.
//
// Pass 2 collects barcode values beginning with the J job-family marker and
// indexes them by their trailing Q<digits> suffix; each operation without a
// tracking code receives the candidate whose suffix denotes its number. An
// operation with no matching candidate keeps an empty OpID.
//
// The returned list is sorted ascending by the numeric value of the
// operation number.
func Operations(areas []segment.Area) []Operation {
	found := map[string]*Operation{}
	codes := trackingCodes{
		byNumber: map[string]string{},
		byPage:   map[int][]string{},
	}

	for _, area := range areas {
		text := strings.TrimSpace(area.OCRText)
		if text != "" {
			discoverInArea(text, area.Page, found)
		}
		collectCandidates(area, &codes)
	}

	numbers := make([]string, 0, len(found))
	for number := range found {
		numbers = append(numbers, number)
	}
	sort.Slice(numbers, func(i, j int) bool {
		return numericValue(numbers[i]) < numericValue(numbers[j])
	})

	ops := make([]Operation, 0, len(numbers))
	for _, number := range numbers {
		op := *found[number]
		op.OpID = codes.match(number)
		ops = append(ops, op)
	}
	return ops
}

// discoverInArea applies the whole-text and per-line patterns to one area's
// trimmed text, inserting any valid operations not already known.
func discoverInArea(text string, page int, found map[string]*Operation) {
	if m := opBlock.FindStringSubmatch(text); m != nil {
		number := m[1]
		name, _, _ := strings.Cut(strings.TrimSpace(m[2]), "\n")
		insertOperation(found, number, name, page)
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		m := opLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		insertOperation(found, m[1], m[2], page)
	}
}

// insertOperation validates the captured number and records the operation
// unless that number string was already seen (first occurrence wins).
func insertOperation(found map[string]*Operation, number, name string, page int) {
	if !validOpNumber(number) {
		return
	}
	if _, exists := found[number]; exists {
		return
	}
	found[number] = &Operation{
		OpNumber: number,
		OpName:   CleanOperationName(name),
		Page:     page,
	}
}

// validOpNumber reports whether a captured number token denotes a plausible
// operation index. Decimal numbers are truncated to their integer part for
// the range check only; the original string remains the operation identity.
func validOpNumber(number string) bool {
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return false
	}
	n := int(v)
	return n >= 1 && n <= maxOpNumber
}

// numericValue orders operation numbers decimal-aware; malformed keys sort
// last but cannot occur for validated numbers.
func numericValue(number string) float64 {
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return float64(maxOpNumber + 1)
	}
	return v
}

// collectCandidates registers an area's tracking-code candidates: barcode
// values starting with the J job-family marker, keyed by Q-suffix when one
// is present, and pooled per page.
func collectCandidates(area segment.Area, codes *trackingCodes) {
	for _, code := range area.Barcodes {
		if !strings.HasPrefix(code.Value, "J") {
			continue
		}
		if m := trackingSuffix.FindStringSubmatch(code.Value); m != nil {
			codes.byNumber[m[1]] = code.Value
		}
		codes.byPage[area.Page] = append(codes.byPage[area.Page], code.Value)
	}
}

// match returns the tracking code for an operation number: exact suffix
// lookup first, then an integer-normalized comparison so that numerically
// equal suffixes with different spellings still associate. Empty when no
// candidate matches.
func (c trackingCodes) match(number string) string {
	if value, ok := c.byNumber[number]; ok {
		return value
	}

	target := int(numericValue(number))
	suffixes := make([]string, 0, len(c.byNumber))
	for suffix := range c.byNumber {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	for _, suffix := range suffixes {
		if n, err := strconv.Atoi(suffix); err == nil && n == target {
			return c.byNumber[suffix]
		}
	}
	return ""
}

// CleanOperationName strips OCR and layout noise from a raw operation name:
// a leading 4-digit-year token, the operator "scan barcodes to start job
// operation" instruction in its space- and hyphen-joined spellings, and any
// trailing fragment beginning with "scan". Surrounding whitespace is trimmed
// last.
func CleanOperationName(name string) string {
	for _, pattern := range nameNoise {
		name = pattern.ReplaceAllString(name, "")
	}
	return strings.TrimSpace(name)
}
