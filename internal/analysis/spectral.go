package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// halfSpectrum is the number of magnitude bins kept per frame. Bins at
// and above the Nyquist mirror the lower half for real input, so they
// carry nothing new for magnitude-only display.
const halfSpectrum = FrameSize / 2

// spectralAnalyzer holds a reusable FFT plan and scratch space for
// FrameSize-point frames. Not safe for concurrent use; the pipeline
// gives each worker its own instance.
type spectralAnalyzer struct {
	fft    *fourier.FFT
	coeffs []complex128
}

func newSpectralAnalyzer() *spectralAnalyzer {
	fft := fourier.NewFFT(FrameSize)
	return &spectralAnalyzer{
		fft:    fft,
		coeffs: make([]complex128, FrameSize/2+1),
	}
}

// magnitudes computes |X[k]| of the windowed frame for k in
// [0, FrameSize/2).
func (a *spectralAnalyzer) magnitudes(frame []float64) []float64 {
	a.fft.Coefficients(a.coeffs, frame)
	mags := make([]float64, halfSpectrum)
	for i := range mags {
		mags[i] = cmplx.Abs(a.coeffs[i])
	}
	return mags
}
