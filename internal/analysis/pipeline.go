package analysis

import (
	"runtime"
	"sync"
	"time"
)

// analysisState is everything one Process call derives from an audio
// buffer. A state is built in full and then swapped in, so readers
// never observe a partial rebuild.
type analysisState struct {
	frames     [][]float64 // windowed audio frames
	spectra    [][]float64 // half-spectrum magnitudes, one per frame
	bars       [][]float64 // scaled bar frames, one per frame
	sampleRate int
}

// Pipeline converts decoded PCM into a sequence of per-frame frequency
// bars and answers per-frame queries from the render loop. A Process
// call replaces the whole analysis atomically; Smoothed is the render
// event and carries the only cross-call state (the smoothing filter).
type Pipeline struct {
	mu      sync.RWMutex
	numBars int
	bounds  []float64
	state   *analysisState
	smooth  smoother
}

// New returns a pipeline producing numBars bars per frame. 64, 32 and
// 16 use the curated perceptual tables; any other count falls back to
// uniform logarithmic spacing.
func New(numBars int) *Pipeline {
	return &Pipeline{
		numBars: numBars,
		bounds:  freqBoundaries(numBars),
	}
}

// BarCount returns the configured number of bars per frame.
func (p *Pipeline) BarCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.numBars
}

// Process analyzes interleaved 16-bit PCM: left-channel downmix,
// 120 fps frame segmentation with Hann windowing, FFT magnitudes,
// perceptual bucket mapping and dynamic-range scaling. The previous
// analysis stays queryable until the new one is complete.
func (p *Pipeline) Process(samples []int16, channels, sampleRate int) {
	mono := downmixMono(samples, channels)
	frames := segment(mono, hannWindow(FrameSize))

	p.mu.RLock()
	bounds := p.bounds
	p.mu.RUnlock()

	spectra, bars := analyzeFrames(frames, sampleRate, bounds)

	p.mu.Lock()
	p.state = &analysisState{
		frames:     frames,
		spectra:    spectra,
		bars:       bars,
		sampleRate: sampleRate,
	}
	p.mu.Unlock()
}

// analyzeFrames runs the spectral and bucket-mapping stages over every
// frame. Frames have no cross-frame dependency, so the work is split
// across the available CPUs; each worker owns its own FFT plan and
// writes only its own indices.
func analyzeFrames(frames [][]float64, sampleRate int, bounds []float64) (spectra, bars [][]float64) {
	spectra = make([][]float64, len(frames))
	bars = make([][]float64, len(frames))
	if len(frames) == 0 {
		return spectra, bars
	}

	workers := min(runtime.GOMAXPROCS(0), len(frames))
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			an := newSpectralAnalyzer()
			for i := w; i < len(frames); i += workers {
				spectra[i] = an.magnitudes(frames[i])
				bars[i] = scaleDynamicRange(mapToBars(spectra[i], sampleRate, bounds))
			}
		}()
	}
	wg.Wait()
	return spectra, bars
}

// TotalFrames returns the number of analyzed frames, 0 before any load.
func (p *Pipeline) TotalFrames() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.state == nil {
		return 0
	}
	return len(p.state.bars)
}

// Bars returns a copy of the stored (unsmoothed) bar frame at
// frameIndex, or an all-zero frame when the index is out of range or
// no audio has been processed.
func (p *Pipeline) Bars(frameIndex int) []float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.state != nil && frameIndex >= 0 && frameIndex < len(p.state.bars) {
		return append([]float64(nil), p.state.bars[frameIndex]...)
	}
	return make([]float64, p.numBars)
}

// Smoothed returns the render-ready bar frame at frameIndex, low-pass
// filtered against the previous render call. Out-of-range indices feed
// a zero target into the filter so the display decays instead of
// cutting out.
func (p *Pipeline) Smoothed(frameIndex int, factor float64) []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	var target []float64
	if p.state != nil && frameIndex >= 0 && frameIndex < len(p.state.bars) {
		target = p.state.bars[frameIndex]
	} else {
		target = make([]float64, p.numBars)
	}
	return p.smooth.smooth(target, p.numBars, factor)
}

// SetBarCount reconfigures the bar resolution. Stored spectra are
// remapped through the new boundary table (the spectral stage does not
// depend on the bar count) and the smoothing state restarts from zero.
func (p *Pipeline) SetBarCount(numBars int) {
	if numBars < 1 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.numBars = numBars
	p.bounds = freqBoundaries(numBars)
	p.smooth.reset()

	if p.state == nil {
		return
	}
	bars := make([][]float64, len(p.state.spectra))
	for i, spectrum := range p.state.spectra {
		bars[i] = scaleDynamicRange(mapToBars(spectrum, p.state.sampleRate, p.bounds))
	}
	p.state = &analysisState{
		frames:     p.state.frames,
		spectra:    p.state.spectra,
		bars:       bars,
		sampleRate: p.state.sampleRate,
	}
}

// FrameAt maps elapsed playback time to an analysis frame index.
func (p *Pipeline) FrameAt(elapsed time.Duration) int {
	if elapsed < 0 {
		return 0
	}
	return int(elapsed.Seconds() * TargetFPS)
}
