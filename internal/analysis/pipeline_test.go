package analysis

import (
	"math"
	"testing"
	"time"
)

// sinePCM generates mono 16-bit PCM of a pure tone.
func sinePCM(freq float64, seconds float64, rate int) []int16 {
	samples := make([]int16, int(seconds*float64(rate)))
	for i := range samples {
		samples[i] = int16(0.5 * maxInt16 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return samples
}

func TestProcessSilenceYieldsZeroBars(t *testing.T) {
	p := New(64)
	p.Process(make([]int16, 44100), 1, 44100)

	if p.TotalFrames() == 0 {
		t.Fatal("expected analyzed frames for one second of audio")
	}
	for frame := range p.TotalFrames() {
		for i, v := range p.Bars(frame) {
			if v != 0 {
				t.Fatalf("frame %d bar %d = %v for silence, want 0", frame, i, v)
			}
		}
	}
}

func TestProcessSinePeaksInMatchingBar(t *testing.T) {
	const rate = 44100
	const tone = 1000.0

	p := New(64)
	p.Process(sinePCM(tone, 2, rate), 1, rate)

	bounds := freqBoundaries(64)
	toneBar := -1
	for b := range 64 {
		if bounds[b] <= tone && tone < bounds[b+1] {
			toneBar = b
			break
		}
	}
	if toneBar < 0 {
		t.Fatal("no boundary range contains the tone frequency")
	}

	for frame := range p.TotalFrames() {
		bars := p.Bars(frame)
		peak := 0
		for i, v := range bars {
			if v > bars[peak] {
				peak = i
			}
		}
		if peak != toneBar {
			t.Fatalf("frame %d: peak bar = %d, want %d (tone at %.0f Hz)", frame, peak, toneBar, tone)
		}
	}
}

func TestProcessStereoDiscardsRightChannel(t *testing.T) {
	const rate = 44100
	tone := sinePCM(1000, 1, rate)

	// Interleave: silent left channel, tone on the right.
	stereo := make([]int16, 2*len(tone))
	for i, s := range tone {
		stereo[2*i+1] = s
	}

	p := New(64)
	p.Process(stereo, 2, rate)

	for frame := range p.TotalFrames() {
		for i, v := range p.Bars(frame) {
			if v != 0 {
				t.Fatalf("frame %d bar %d = %v, want 0 (right channel must be discarded)", frame, i, v)
			}
		}
	}
}

func TestBarsOutOfRange(t *testing.T) {
	p := New(32)

	for _, idx := range []int{-1, 0, 7} {
		bars := p.Bars(idx)
		if len(bars) != 32 {
			t.Fatalf("Bars(%d) length = %d before load, want 32", idx, len(bars))
		}
		for i, v := range bars {
			if v != 0 {
				t.Fatalf("Bars(%d)[%d] = %v before load, want 0", idx, i, v)
			}
		}
	}

	p.Process(sinePCM(440, 1, 44100), 1, 44100)
	total := p.TotalFrames()
	bars := p.Bars(total)
	if len(bars) != 32 {
		t.Fatalf("Bars(total) length = %d, want 32", len(bars))
	}
	for i, v := range bars {
		if v != 0 {
			t.Fatalf("Bars(total)[%d] = %v, want 0", i, v)
		}
	}
}

func TestSmoothedDecaysPastEnd(t *testing.T) {
	p := New(16)
	p.Process(sinePCM(440, 1, 44100), 1, 44100)

	within := p.Smoothed(0, 1.0)
	past := p.Smoothed(p.TotalFrames(), 0.5)
	if len(past) != 16 {
		t.Fatalf("smoothed length = %d, want 16", len(past))
	}
	for i := range past {
		if want := within[i] * 0.5; math.Abs(past[i]-want) > 1e-12 {
			t.Fatalf("smoothed[%d] = %v past the end, want decayed %v", i, past[i], want)
		}
	}
}

func TestSetBarCountRemapsAndResetsSmoothing(t *testing.T) {
	p := New(64)
	p.Process(sinePCM(1000, 1, 44100), 1, 44100)
	total := p.TotalFrames()

	p.Smoothed(0, 1.0) // charge the smoothing state
	p.SetBarCount(32)

	if p.BarCount() != 32 {
		t.Fatalf("BarCount() = %d, want 32", p.BarCount())
	}
	if p.TotalFrames() != total {
		t.Fatalf("TotalFrames() = %d after remap, want %d", p.TotalFrames(), total)
	}
	if got := len(p.Bars(0)); got != 32 {
		t.Fatalf("remapped bar frame length = %d, want 32", got)
	}

	// Zeroed smoothing state: factor 0 must yield zeros, not old bars.
	for i, v := range p.Smoothed(0, 0.0) {
		if v != 0 {
			t.Fatalf("smoothed[%d] = %v after bar-count change, want 0", i, v)
		}
	}
}

func TestFrameAt(t *testing.T) {
	p := New(64)
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{-time.Second, 0},
		{0, 0},
		{time.Second, 120},
		{2500 * time.Millisecond, 300},
	}
	for _, tt := range tests {
		if got := p.FrameAt(tt.elapsed); got != tt.want {
			t.Fatalf("FrameAt(%v) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestProcessEmptyInput(t *testing.T) {
	p := New(64)
	p.Process(nil, 1, 44100)
	if p.TotalFrames() != 0 {
		t.Fatalf("TotalFrames() = %d for empty input, want 0", p.TotalFrames())
	}
	if got := len(p.Bars(0)); got != 64 {
		t.Fatalf("Bars(0) length = %d, want 64", got)
	}

	// Empty input replaces prior analysis with an empty state.
	p.Process(make([]int16, 44100), 1, 44100)
	if p.TotalFrames() == 0 {
		t.Fatal("expected frames after processing audio")
	}
	p.Process(nil, 1, 44100)
	if p.TotalFrames() != 0 {
		t.Fatalf("TotalFrames() = %d after empty reprocess, want 0", p.TotalFrames())
	}
}
