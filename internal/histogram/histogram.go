// Package histogram computes per-channel intensity distributions and
// dominant-color palettes from decoded pixel data.
package histogram

// Bins is the number of discrete intensity levels per channel.
const Bins = 256

// DefaultDominantColors is the palette size returned by Compute.
const DefaultDominantColors = 5

// Channels holds one 256-bin distribution per color channel. After Compute,
// every value is in [0, 1] and the single global maximum across the three
// arrays is exactly 1, unless the counts were all zero.
type Channels struct {
	Red   [Bins]float64
	Green [Bins]float64
	Blue  [Bins]float64
}

// Compute counts intensity occurrences per channel and normalizes all three
// arrays by the single maximum count found across them, preserving relative
// channel brightness. It also extracts the dominant-color palette; palette
// extraction downscales internally and never affects the histogram values.
func Compute(pix *PixelBuffer) (*Channels, []string, error) {
	if pix == nil || pix.Width == 0 || pix.Height == 0 {
		return nil, nil, ErrEmptyImage
	}
	if len(pix.Pix) != pix.Width*pix.Height*3 {
		return nil, nil, ErrDecode
	}

	ch := &Channels{}
	for i := 0; i+2 < len(pix.Pix); i += 3 {
		ch.Red[pix.Pix[i]]++
		ch.Green[pix.Pix[i+1]]++
		ch.Blue[pix.Pix[i+2]]++
	}

	maxCount := 0.0
	for i := 0; i < Bins; i++ {
		if ch.Red[i] > maxCount {
			maxCount = ch.Red[i]
		}
		if ch.Green[i] > maxCount {
			maxCount = ch.Green[i]
		}
		if ch.Blue[i] > maxCount {
			maxCount = ch.Blue[i]
		}
	}
	if maxCount > 0 {
		for i := 0; i < Bins; i++ {
			ch.Red[i] /= maxCount
			ch.Green[i] /= maxCount
			ch.Blue[i] /= maxCount
		}
	}

	return ch, DominantColors(pix, DefaultDominantColors), nil
}
