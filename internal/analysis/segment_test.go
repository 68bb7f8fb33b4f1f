package analysis

import (
	"math"
	"testing"
)

func TestHannWindowShape(t *testing.T) {
	win := hannWindow(FrameSize)
	if len(win) != FrameSize {
		t.Fatalf("window length = %d, want %d", len(win), FrameSize)
	}
	if win[0] > 1e-9 {
		t.Fatalf("window start = %v, want 0", win[0])
	}
	mid := win[(FrameSize-1)/2]
	if math.Abs(mid-1.0) > 1e-5 {
		t.Fatalf("window midpoint = %v, want 1.0 within 1e-5", mid)
	}
	for n, w := range win {
		want := 0.5 * (1.0 - math.Cos(2*math.Pi*float64(n)/float64(FrameSize-1)))
		if math.Abs(w-want) > 1e-12 {
			t.Fatalf("window[%d] = %v, want %v", n, w, want)
		}
	}
}

func TestSegmentFrameCount(t *testing.T) {
	win := hannWindow(FrameSize)
	tests := []struct {
		name    string
		samples int
	}{
		{"one second", 44100},
		{"two seconds", 88200},
		{"just over a frame", FrameSize + 500},
		{"awkward length", 100001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := segment(make([]int16, tt.samples), win)

			hop := hopSize(tt.samples)
			if hop < 1 {
				t.Fatalf("hop size = %d, want >= 1", hop)
			}
			want := (tt.samples-FrameSize)/hop + 1
			// Frames that would run past the buffer are dropped.
			for want > 0 && (want-1)*hop+FrameSize > tt.samples {
				want--
			}
			if len(frames) != want {
				t.Fatalf("frame count = %d, want %d", len(frames), want)
			}
			for i, f := range frames {
				if len(f) != FrameSize {
					t.Fatalf("frame %d length = %d, want %d", i, len(f), FrameSize)
				}
			}
		})
	}
}

func TestSegmentShortBuffer(t *testing.T) {
	if frames := segment(make([]int16, FrameSize-1), hannWindow(FrameSize)); frames != nil {
		t.Fatalf("expected no frames for short buffer, got %d", len(frames))
	}
	if frames := segment(nil, hannWindow(FrameSize)); frames != nil {
		t.Fatalf("expected no frames for empty buffer, got %d", len(frames))
	}
}

func TestSegmentNormalizesAndWindows(t *testing.T) {
	samples := make([]int16, FrameSize)
	for i := range samples {
		samples[i] = math.MaxInt16
	}
	win := hannWindow(FrameSize)

	frames := segment(samples, win)
	if len(frames) != 1 {
		t.Fatalf("frame count = %d, want 1", len(frames))
	}
	for n, v := range frames[0] {
		if math.Abs(v-win[n]) > 1e-12 {
			t.Fatalf("frame[%d] = %v, want window coefficient %v", n, v, win[n])
		}
	}
}

func TestDownmixMonoKeepsLeftChannel(t *testing.T) {
	stereo := []int16{1, -100, 2, -200, 3, -300}
	got := downmixMono(stereo, 2)
	want := []int16{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("mono length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("mono[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	mono := []int16{5, 6}
	if out := downmixMono(mono, 1); &out[0] != &mono[0] {
		t.Fatal("expected mono input to pass through unchanged")
	}
}
