package focus

import "github.com/philipparndt/arfocus/pkg/geometry"

// DefaultHistorySize is the number of positions the indicator averages over
const DefaultHistorySize = 8

// Smoother averages the most recent positions of a tracked target.
// It is a fixed-capacity ring; the oldest position is evicted first.
type Smoother struct {
	data []geometry.Vector3
	pos  int
	full bool
}

// NewSmoother creates a smoother keeping the last size positions.
// A non-positive size falls back to DefaultHistorySize.
func NewSmoother(size int) *Smoother {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &Smoother{data: make([]geometry.Vector3, size)}
}

// Add appends a position and returns the new average
func (s *Smoother) Add(p geometry.Vector3) geometry.Vector3 {
	s.data[s.pos] = p
	s.pos++
	if s.pos >= len(s.data) {
		s.pos = 0
		s.full = true
	}
	avg, _ := s.Average()
	return avg
}

// Average returns the component-wise mean of the retained positions.
// It reports false when nothing has been added yet.
func (s *Smoother) Average() (geometry.Vector3, bool) {
	return geometry.Mean(s.data[:s.Len()])
}

// Len returns the number of retained positions
func (s *Smoother) Len() int {
	if s.full {
		return len(s.data)
	}
	return s.pos
}

// Cap returns the history size
func (s *Smoother) Cap() int {
	return len(s.data)
}

// Positions returns the retained positions, oldest first
func (s *Smoother) Positions() []geometry.Vector3 {
	n := s.Len()
	out := make([]geometry.Vector3, n)
	if s.full {
		copy(out, s.data[s.pos:])
		copy(out[len(s.data)-s.pos:], s.data[:s.pos])
	} else {
		copy(out, s.data[:s.pos])
	}
	return out
}

// Reset drops all retained positions
func (s *Smoother) Reset() {
	s.pos = 0
	s.full = false
}
