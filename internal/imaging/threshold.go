package imaging

import "image"

// AdaptiveThreshold binarizes a grayscale image against the local mean of a
// block×block neighborhood centered on each pixel. A pixel is foreground when
// its value is at least offset below the neighborhood mean, so dark ink on a
// light background becomes true regardless of uneven scan illumination.
//
// The neighborhood is clamped at the image border. block must be odd and
// positive; offset is subtracted from the mean before comparison.
//
// The local means are computed from a summed-area table, so the result is
// exact and the cost is independent of block size.
func AdaptiveThreshold(gray *image.Gray, block, offset int) [][]bool {
	w := gray.Bounds().Dx()
	h := gray.Bounds().Dy()

	// Summed-area table with a one-row/column zero border.
	integral := make([][]uint64, h+1)
	integral[0] = make([]uint64, w+1)
	for y := 0; y < h; y++ {
		row := make([]uint64, w+1)
		var sum uint64
		for x := 0; x < w; x++ {
			sum += uint64(gray.Pix[y*gray.Stride+x])
			row[x+1] = integral[y][x+1] + sum
		}
		integral[y+1] = row
	}

	half := block / 2
	mask := make([][]bool, h)
	for y := 0; y < h; y++ {
		mask[y] = make([]bool, w)
		y1 := clamp(y-half, 0, h-1)
		y2 := clamp(y+half, 0, h-1)
		for x := 0; x < w; x++ {
			x1 := clamp(x-half, 0, w-1)
			x2 := clamp(x+half, 0, w-1)

			area := uint64((y2 - y1 + 1) * (x2 - x1 + 1))
			sum := integral[y2+1][x2+1] - integral[y1][x2+1] - integral[y2+1][x1] + integral[y1][x1]
			mean := int(sum / area)

			mask[y][x] = int(gray.Pix[y*gray.Stride+x]) <= mean-offset
		}
	}

	return mask
}

// MaskToGray renders a binary mask as a grayscale image with foreground
// (ink) pixels black and background pixels white, the polarity OCR engines
// expect.
func MaskToGray(mask [][]bool) *image.Gray {
	h := len(mask)
	w := 0
	if h > 0 {
		w = len(mask[0])
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask[y][x] {
				img.Pix[y*img.Stride+x] = 255
			}
		}
	}
	return img
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
