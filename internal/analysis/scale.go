package analysis

import (
	"math"
	"sort"
)

// epsilon keeps the remap divisions finite when a percentile band is
// flat (silence, or a frame dominated by a single tone).
const epsilon = 0.001

// scaleDynamicRange remaps raw bar magnitudes into [0,1] against the
// frame's own 25th/75th/90th percentile thresholds. Raw magnitudes are
// heavily right-skewed, so a plain min-max normalization collapses most
// bars to near zero; instead each percentile band gets its own slice of
// the output range with an increasingly steep power curve.
func scaleDynamicRange(raw []float64) []float64 {
	n := len(raw)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	sorted := append([]float64(nil), raw...)
	sort.Float64s(sorted)

	p25 := rankValue(sorted, 0.25)
	p75 := rankValue(sorted, 0.75)
	p90 := rankValue(sorted, 0.90)
	maxVal := sorted[n-1]

	for i, v := range raw {
		var scaled float64
		switch {
		case v <= p25:
			scaled = v / math.Max(p25, epsilon) * 0.2
		case v <= p75:
			norm := (v - p25) / math.Max(p75-p25, epsilon)
			scaled = 0.2 + math.Pow(norm, 1.5)*0.4
		case v <= p90:
			norm := (v - p75) / math.Max(p90-p75, epsilon)
			scaled = 0.6 + math.Pow(norm, 2.0)*0.25
		default:
			norm := (v - p90) / math.Max(maxVal-p90, epsilon)
			scaled = 0.85 + math.Pow(norm, 3.0)*0.15
		}
		out[i] = math.Min(scaled, 1.0)
	}
	return out
}

// rankValue reads the sorted value at rank floor(len*p), 0 if the rank
// falls outside the slice.
func rankValue(sorted []float64, p float64) float64 {
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		return 0
	}
	return sorted[idx]
}
