package imaging

// Morphological operations with rectangular structuring elements, used to
// isolate page-wide ruled lines: an element much wider than it is tall passes
// only features that are themselves thin and wide.
//
// Erode and Dilate use reflected anchors, so Open (erosion followed by
// dilation) preserves the exact extent of any foreground run large enough to
// survive. Pixels outside the mask are treated as background.

// Erode keeps a pixel only if every pixel under the kw×kh element is
// foreground. The element anchor is at ((kw-1)/2, (kh-1)/2).
func Erode(mask [][]bool, kw, kh int) [][]bool {
	return erodeRows(erodeCols(mask, kh), kw)
}

// Dilate sets a pixel if any pixel under the reflected kw×kh element is
// foreground.
func Dilate(mask [][]bool, kw, kh int) [][]bool {
	return dilateRows(dilateCols(mask, kh), kw)
}

// Open applies iterations of erosion followed by the same number of
// dilations, removing foreground features smaller than the element while
// restoring the extent of those that survive.
func Open(mask [][]bool, kw, kh, iterations int) [][]bool {
	out := mask
	for i := 0; i < iterations; i++ {
		out = Erode(out, kw, kh)
	}
	for i := 0; i < iterations; i++ {
		out = Dilate(out, kw, kh)
	}
	return out
}

// erodeRows erodes each row with a 1×k horizontal window using a sliding
// count of foreground pixels.
func erodeRows(mask [][]bool, k int) [][]bool {
	if k <= 1 {
		return mask
	}
	h := len(mask)
	out := make([][]bool, h)
	right := k / 2

	for y := 0; y < h; y++ {
		w := len(mask[y])
		out[y] = make([]bool, w)

		count := 0
		for x := 0; x < w+right; x++ {
			if x < w && mask[y][x] {
				count++
			}
			if x-k >= 0 && mask[y][x-k] {
				count--
			}
			// The window [x-k+1, x] is centered on pixel x-right.
			cx := x - right
			if cx >= 0 && cx < w {
				out[y][cx] = count == k
			}
		}
	}
	return out
}

// dilateRows dilates each row with the reflected 1×k horizontal window.
func dilateRows(mask [][]bool, k int) [][]bool {
	if k <= 1 {
		return mask
	}
	h := len(mask)
	out := make([][]bool, h)
	left := (k - 1) / 2

	for y := 0; y < h; y++ {
		w := len(mask[y])
		out[y] = make([]bool, w)

		count := 0
		for x := 0; x < w+left; x++ {
			if x < w && mask[y][x] {
				count++
			}
			if x-k >= 0 && mask[y][x-k] {
				count--
			}
			// Reflected anchor: the window [x-k+1, x] covers pixel x-left.
			cx := x - left
			if cx >= 0 && cx < w {
				out[y][cx] = count > 0
			}
		}
	}
	return out
}

// erodeCols erodes each column with a k×1 vertical window.
func erodeCols(mask [][]bool, k int) [][]bool {
	if k <= 1 {
		return mask
	}
	h := len(mask)
	if h == 0 {
		return mask
	}
	w := len(mask[0])
	bot := k / 2

	out := make([][]bool, h)
	for y := 0; y < h; y++ {
		out[y] = make([]bool, w)
	}

	for x := 0; x < w; x++ {
		count := 0
		for y := 0; y < h+bot; y++ {
			if y < h && mask[y][x] {
				count++
			}
			if y-k >= 0 && mask[y-k][x] {
				count--
			}
			cy := y - bot
			if cy >= 0 && cy < h {
				out[cy][x] = count == k
			}
		}
	}
	return out
}

// dilateCols dilates each column with the reflected k×1 vertical window.
func dilateCols(mask [][]bool, k int) [][]bool {
	if k <= 1 {
		return mask
	}
	h := len(mask)
	if h == 0 {
		return mask
	}
	w := len(mask[0])
	top := (k - 1) / 2

	out := make([][]bool, h)
	for y := 0; y < h; y++ {
		out[y] = make([]bool, w)
	}

	for x := 0; x < w; x++ {
		count := 0
		for y := 0; y < h+top; y++ {
			if y < h && mask[y][x] {
				count++
			}
			if y-k >= 0 && mask[y-k][x] {
				count--
			}
			cy := y - top
			if cy >= 0 && cy < h {
				out[cy][x] = count > 0
			}
		}
	}
	return out
}
