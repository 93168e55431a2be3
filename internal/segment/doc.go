// Package segment partitions a rasterized job-card page into horizontal
// bands ("areas") using the page-wide ruled lines that separate fields.
//
// Segmentation is template-free: it relies only on the visual convention
// that fields are divided by near-full-width horizontal rules. The package
// produces immutable Area records carrying the raw OCR text and sanitized
// barcode observations for each band; interpretation of those observations
// is the extract package's job.
package segment
