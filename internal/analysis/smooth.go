package analysis

// smoother is a per-bar one-pole low-pass across successive render
// calls. It retains exactly one previous frame; each call depends on
// the last, so it must never run concurrently. The pipeline serializes
// access.
type smoother struct {
	prev []float64
}

// smooth blends the previous output toward target by factor and keeps
// the result for the next call. factor 1 follows the target exactly,
// factor 0 holds the previous frame. A stale previous frame of the
// wrong size is replaced with zeros; if target is shorter than size,
// the extra output slots stay at zero.
func (s *smoother) smooth(target []float64, size int, factor float64) []float64 {
	out := make([]float64, size)
	if len(s.prev) != size {
		s.prev = make([]float64, size)
	}

	n := min(size, len(target))
	for i := range n {
		out[i] = s.prev[i]*(1-factor) + target[i]*factor
	}

	s.prev = append([]float64(nil), out...)
	return out
}

// reset clears the retained frame so the next call starts from zero.
func (s *smoother) reset() {
	s.prev = nil
}
