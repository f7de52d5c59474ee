package histogram

import (
	"fmt"
	"sort"

	"github.com/nfnt/resize"
)

// maxExtractEdge bounds the pixel count scanned during palette extraction.
// The buffer is downscaled so its longer edge does not exceed this; the
// downscale only affects color ranking, never histogram values.
const maxExtractEdge = 100

// quantStep merges near-duplicate colors before counting: every channel value
// is snapped down to a multiple of 8 (value - value mod 8).
const quantStep = 8

// DominantColors returns up to n hex-encoded colors ordered by descending
// pixel count after quantization. Entries are formatted from the quantized
// values, "#RRGGBB" uppercase. Ties keep first-encountered (row-major) order.
func DominantColors(pix *PixelBuffer, n int) []string {
	if pix == nil || n <= 0 {
		return nil
	}

	sample := pix
	if pix.Width > maxExtractEdge || pix.Height > maxExtractEdge {
		sample = downscale(pix)
	}

	type bucket struct {
		key   uint32
		count int
		seen  int
	}
	buckets := make(map[uint32]*bucket)
	order := make([]*bucket, 0, 64)

	for i := 0; i+2 < len(sample.Pix); i += 3 {
		r := sample.Pix[i] - sample.Pix[i]%quantStep
		g := sample.Pix[i+1] - sample.Pix[i+1]%quantStep
		b := sample.Pix[i+2] - sample.Pix[i+2]%quantStep
		key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
		if bk, ok := buckets[key]; ok {
			bk.count++
			continue
		}
		bk := &bucket{key: key, count: 1, seen: len(order)}
		buckets[key] = bk
		order = append(order, bk)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].seen < order[j].seen
	})

	if len(order) > n {
		order = order[:n]
	}
	colors := make([]string, len(order))
	for i, bk := range order {
		colors[i] = fmt.Sprintf("#%02X%02X%02X", uint8(bk.key>>16), uint8(bk.key>>8), uint8(bk.key))
	}
	return colors
}

// downscale shrinks the buffer with Lanczos resampling so the longer edge is
// at most maxExtractEdge, preserving aspect ratio.
func downscale(pix *PixelBuffer) *PixelBuffer {
	longer := pix.Width
	if pix.Height > longer {
		longer = pix.Height
	}
	scale := float64(maxExtractEdge) / float64(longer)
	newW := int(float64(pix.Width) * scale)
	newH := int(float64(pix.Height) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	small := resize.Resize(uint(newW), uint(newH), pix.toNRGBA(), resize.Lanczos3)
	out, err := FromImage(small)
	if err != nil {
		// Resampling a valid buffer cannot produce a zero-area image;
		// fall back to the full-resolution scan if it somehow does.
		return pix
	}
	return out
}
