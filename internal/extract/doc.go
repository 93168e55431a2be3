// Package extract interprets the noisy per-area observations produced by
// segmentation into a structured job record: a job number and a
// deduplicated, numerically ordered list of manufacturing operations with
// cross-referenced tracking codes.
//
// Everything here is best-effort by design. Empty OCR text, missing
// barcodes, and unmatchable tracking codes are expected steady-state inputs,
// so the functions in this package degrade to empty field values instead of
// returning errors.
package extract
