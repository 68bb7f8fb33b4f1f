package analysis

import "math"

const (
	// MinFreq and MaxFreq bound every boundary table, in Hz.
	MinFreq = 20.0
	MaxFreq = 20000.0
)

// band is one region of a curated boundary table. Sub-bass uses linear
// spacing; everything above it is geometric.
type band struct {
	low, high float64
	bins      int
	linear    bool
}

// curatedBands returns the perceptual four-band split for the supported
// bar counts, or nil when numBars has no curated table. Resolution is
// weighted toward the bass and mid ranges where music content is dense.
func curatedBands(numBars int) []band {
	switch numBars {
	case 64:
		return []band{
			{20, 100, 4, true},
			{100, 500, 20, false},
			{500, 4000, 24, false},
			{4000, 20000, 16, false},
		}
	case 32:
		return []band{
			{20, 100, 2, true},
			{100, 500, 10, false},
			{500, 4000, 12, false},
			{4000, 20000, 8, false},
		}
	case 16:
		return []band{
			{20, 100, 1, true},
			{100, 500, 5, false},
			{500, 4000, 6, false},
			{4000, 20000, 4, false},
		}
	}
	return nil
}

// freqBoundaries returns numBars+1 strictly increasing frequencies from
// MinFreq to MaxFreq. Bar counts without a curated table fall back to
// uniform logarithmic spacing.
func freqBoundaries(numBars int) []float64 {
	bands := curatedBands(numBars)
	if bands == nil {
		bounds := make([]float64, numBars+1)
		logMin := math.Log(MinFreq)
		logStep := (math.Log(MaxFreq) - logMin) / float64(numBars)
		for i := range bounds {
			bounds[i] = math.Exp(logMin + float64(i)*logStep)
		}
		return bounds
	}

	bounds := make([]float64, 0, numBars+1)
	bounds = append(bounds, bands[0].low)
	for _, b := range bands {
		for i := 1; i <= b.bins; i++ {
			f := float64(i) / float64(b.bins)
			if b.linear {
				bounds = append(bounds, b.low+f*(b.high-b.low))
			} else {
				bounds = append(bounds, b.low*math.Pow(b.high/b.low, f))
			}
		}
	}
	return bounds
}

// mapToBars averages the spectral magnitudes falling inside each
// boundary range into one raw value per bar. Ranges that contain no
// valid bin stay at zero.
func mapToBars(spectrum []float64, sampleRate int, bounds []float64) []float64 {
	numBars := len(bounds) - 1
	bars := make([]float64, numBars)
	freqResolution := float64(sampleRate) / FrameSize

	for b := range numBars {
		binStart := min(int(bounds[b]/freqResolution), halfSpectrum)
		binEnd := max(min(int(bounds[b+1]/freqResolution), halfSpectrum), binStart)

		sum := 0.0
		count := 0
		for bin := binStart; bin <= binEnd; bin++ {
			if bin < halfSpectrum && bin < len(spectrum) {
				sum += spectrum[bin]
				count++
			}
		}
		if count > 0 {
			bars[b] = sum / float64(count)
		}
	}
	return bars
}
