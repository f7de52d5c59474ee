// Package curve provides the shared smoothing and renormalization steps
// applied to histogram arrays before rendering.
package curve

import "math"

// Smooth applies a 1-D Gaussian blur to the curve. The standard deviation is
// factor*10, so a factor of 1.0 smooths aggressively and 0 is the identity.
// The input is never modified; the result is always a fresh slice.
func Smooth(in []float64, factor float64) []float64 {
	if factor <= 0 {
		out := make([]float64, len(in))
		copy(out, in)
		return out
	}
	return SmoothSigma(in, factor*10)
}

// SmoothSigma convolves the curve with a Gaussian kernel of the given
// standard deviation. Boundary bins are handled by edge-extension (clamped
// indices) so the curve is not artificially dimmed near bin 0 and the last
// bin.
func SmoothSigma(in []float64, sigma float64) []float64 {
	out := make([]float64, len(in))
	if sigma <= 0 || len(in) == 0 {
		copy(out, in)
		return out
	}

	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2
	n := len(in)

	for i := range in {
		sum := 0.0
		for k, w := range kernel {
			j := i + k - radius
			if j < 0 {
				j = 0
			} else if j >= n {
				j = n - 1
			}
			sum += in[j] * w
		}
		out[i] = sum
	}
	return out
}

// NormalizeTogether divides every curve by the single maximum value found
// across all of them, so the tallest peak reaches exactly 1.0. A zero maximum
// passes the curves through unchanged. Inputs are not modified.
func NormalizeTogether(curves ...[]float64) [][]float64 {
	maxVal := 0.0
	for _, c := range curves {
		for _, v := range c {
			if v > maxVal {
				maxVal = v
			}
		}
	}

	out := make([][]float64, len(curves))
	for i, c := range curves {
		dst := make([]float64, len(c))
		if maxVal > 0 {
			for j, v := range c {
				dst[j] = v / maxVal
			}
		} else {
			copy(dst, c)
		}
		out[i] = dst
	}
	return out
}

// gaussianKernel builds a normalized kernel with radius int(4*sigma + 0.5).
func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
