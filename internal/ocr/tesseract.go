// Package ocr recognizes text in page bands using the Tesseract engine.
//
// Tesseract and the language data for the requested languages must be
// installed on the system (e.g. tesseract-ocr and tesseract-ocr-eng on
// Debian/Ubuntu). Recognition output is treated as an opaque noisy string
// by the rest of the system; the only normalization applied here is
// per-line trimming, underscore-to-space replacement, and dropping of
// blank lines.
package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/montimage/jobcard-extract/internal/imaging"
)

// Recognizer performs OCR on image regions.
type Recognizer struct {
	// Languages lists Tesseract language codes, e.g. ["eng"].
	Languages []string
}

// NewRecognizer creates a recognizer for the given Tesseract language
// codes, defaulting to English when none are given.
func NewRecognizer(languages ...string) *Recognizer {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Recognizer{Languages: languages}
}

// Recognize returns the newline-delimited text found in the region.
//
// The region is pre-processed (denoised, sharpened, binarized, and upscaled
// when short) before recognition, which substantially improves accuracy on
// low-resolution scan bands. Tesseract requires a file path, so the
// prepared region goes through a temporary PNG that is removed afterward.
func (r *Recognizer) Recognize(region image.Image) (string, error) {
	prepared := imaging.PrepareForOCR(region)

	tmpFile, err := os.CreateTemp("", "jobcard-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, prepared); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmpFile.Close()

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.Languages...); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return normalizeText(text), nil
}

// normalizeText trims each recognized line, replaces underscores (a common
// misread of ruled lines) with spaces, and drops empty lines.
func normalizeText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "_", " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
