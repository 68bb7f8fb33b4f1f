package analysis

import "gonum.org/v1/gonum/dsp/window"

const (
	// FrameSize is the number of samples in one analysis frame.
	FrameSize = 1024

	// TargetFPS is the display frame rate the hop size is tuned to, so
	// that one analysis frame lines up with one rendered frame.
	TargetFPS = 120.0

	// Hop timing assumes 44.1 kHz regardless of the decoded rate. Files
	// at other rates still get the same bar density per sample, but the
	// frame-to-playback-time mapping drifts against the wall clock.
	timingSampleRate = 44100.0

	maxInt16 = 32767.0
)

// hannWindow returns symmetric Hann coefficients of the given size.
func hannWindow(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		w[i] = 1.0
	}
	return window.Hann(w)
}

// hopSize returns the sample offset between consecutive frame starts.
// Never less than 1; FrameSize when the buffer is too short to matter.
func hopSize(sampleCount int) int {
	duration := float64(sampleCount) / timingSampleRate
	targetFrames := int(duration * TargetFPS)
	if targetFrames <= 0 {
		return FrameSize
	}
	return sampleCount / targetFrames
}

// segment slices mono PCM into overlapping FrameSize frames at the
// TargetFPS hop, normalizes each sample to [-1,1] and applies the Hann
// window. Frames that would run past the end of the buffer are dropped.
func segment(samples []int16, win []float64) [][]float64 {
	if len(samples) < FrameSize {
		return nil
	}
	hop := hopSize(len(samples))
	count := (len(samples)-FrameSize)/hop + 1

	frames := make([][]float64, 0, count)
	for i := range count {
		start := i * hop
		end := start + FrameSize
		if end > len(samples) {
			break
		}
		frame := make([]float64, FrameSize)
		for n, s := range samples[start:end] {
			frame[n] = float64(s) / maxInt16 * win[n]
		}
		frames = append(frames, frame)
	}
	return frames
}

// downmixMono reduces interleaved PCM to one channel by keeping the
// first channel of every sample frame. The other channels are
// discarded, not averaged.
func downmixMono(samples []int16, channels int) []int16 {
	if channels <= 1 {
		return samples
	}
	mono := make([]int16, 0, len(samples)/channels)
	for i := 0; i < len(samples); i += channels {
		mono = append(mono, samples[i])
	}
	return mono
}
