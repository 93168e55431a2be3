package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// minOCRHeight is the smallest band height fed to the OCR engine; shorter
// crops are upscaled because recognition accuracy degrades sharply on
// low-resolution glyphs.
const minOCRHeight = 600

// PrepareForOCR conditions a page band for text recognition: median denoise,
// sharpen, grayscale, local-adaptive binarization, and upscaling of bands
// shorter than 600 pixels.
//
// The binarization block size (31) is a little tighter than the one used for
// separator-line detection since it has to follow stroke weight, not rule
// weight.
func PrepareForOCR(region image.Image) image.Image {
	denoised := effect.Median(region, 3)
	sharpened := effect.Sharpen(denoised)

	mask := AdaptiveThreshold(Grayscale(sharpened), 31, 15)
	prepared := image.Image(MaskToGray(mask))

	if h := prepared.Bounds().Dy(); h > 0 && h < minOCRHeight {
		prepared = imaging.Resize(prepared, 0, minOCRHeight, imaging.CatmullRom)
	}

	return prepared
}
