package styles

import (
	"math/rand"

	"chromaglyph/internal/curve"
)

// Edge noise parameters. The seed is fixed and the generator is explicit
// (math/rand source, NormFloat64 per bin) so the same curves always produce
// the same bled edge, byte for byte.
const (
	noiseSeed      = 42
	noiseAmplitude = 0.05
	noiseSigma     = 3.0
)

// edgeNoise perturbs the curve with band-limited pseudo-random noise scaled
// by the curve's own height, so the jitter is negligible near zero and
// pronounced near peaks. A fresh seeded generator per call gives every
// channel the same noise pattern. The result is clipped back into [0, 1].
func edgeNoise(c []float64) []float64 {
	rng := rand.New(rand.NewSource(noiseSeed))
	noise := make([]float64, len(c))
	for i := range noise {
		noise[i] = rng.NormFloat64() * noiseAmplitude
	}
	noise = curve.SmoothSigma(noise, noiseSigma)

	out := make([]float64, len(c))
	for i, v := range c {
		bled := v + noise[i]*v
		if bled < 0 {
			bled = 0
		} else if bled > 1 {
			bled = 1
		}
		out[i] = bled
	}
	return out
}
