package analysis

import (
	"math"
	"testing"
)

func TestSmootherFollowsTargetAtFullFactor(t *testing.T) {
	var s smoother
	target := []float64{0.1, 0.5, 0.9}
	out := s.smooth(target, 3, 1.0)
	for i := range target {
		if out[i] != target[i] {
			t.Fatalf("out[%d] = %v, want target %v", i, out[i], target[i])
		}
	}
}

func TestSmootherHoldsPreviousAtZeroFactor(t *testing.T) {
	var s smoother
	first := s.smooth([]float64{0.2, 0.4}, 2, 1.0)
	out := s.smooth([]float64{0.9, 0.9}, 2, 0.0)
	for i := range first {
		if out[i] != first[i] {
			t.Fatalf("out[%d] = %v, want previous %v", i, out[i], first[i])
		}
	}
}

func TestSmootherBlends(t *testing.T) {
	var s smoother
	s.smooth([]float64{1, 1}, 2, 1.0)
	out := s.smooth([]float64{0, 0}, 2, 0.25)
	for i, v := range out {
		if math.Abs(v-0.75) > 1e-12 {
			t.Fatalf("out[%d] = %v, want 0.75", i, v)
		}
	}
}

func TestSmootherSizeChangeResetsState(t *testing.T) {
	var s smoother
	s.smooth([]float64{1, 1, 1, 1}, 4, 1.0)

	// Shrinking the frame discards the stale state entirely.
	out := s.smooth([]float64{0.5, 0.5}, 2, 0.5)
	for i, v := range out {
		if math.Abs(v-0.25) > 1e-12 {
			t.Fatalf("out[%d] = %v, want 0.25 from zeroed state", i, v)
		}
	}
}

func TestSmootherShortTargetLeavesTailZero(t *testing.T) {
	var s smoother
	out := s.smooth([]float64{1}, 3, 1.0)
	if out[0] != 1 || out[1] != 0 || out[2] != 0 {
		t.Fatalf("out = %v, want [1 0 0]", out)
	}
}

func TestSmootherOutputNotAliased(t *testing.T) {
	var s smoother
	out := s.smooth([]float64{0.5}, 1, 1.0)
	out[0] = 99
	next := s.smooth([]float64{0.5}, 1, 0.0)
	if next[0] != 0.5 {
		t.Fatalf("retained state = %v after caller mutation, want 0.5", next[0])
	}
}
