// Package imaging provides the pixel-level primitives used by page
// segmentation and OCR pre-processing: grayscale conversion, local-adaptive
// thresholding, and morphology with rectangular structuring elements.
//
// All operations are deterministic: the same input image always produces the
// same output. Binary masks are represented as [][]bool indexed [y][x], with
// true marking foreground (ink) pixels.
package imaging
