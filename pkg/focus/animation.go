package focus

import (
	"math"
	"time"
)

// Phase is one step of an indicator animation
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFade
	PhaseScale
	PhaseFlash
	PhaseSettle
	PhaseOpen
	PhasePulse
)

func (p Phase) String() string {
	switch p {
	case PhaseFade:
		return "fade"
	case PhaseScale:
		return "scale"
	case PhaseFlash:
		return "flash"
	case PhaseSettle:
		return "settle"
	case PhaseOpen:
		return "open"
	case PhasePulse:
		return "pulse"
	}
	return "idle"
}

// Appearance is everything a renderer needs to draw the indicator
type Appearance struct {
	Visible  bool
	Phase    Phase
	Opacity  float64 // Segment opacity
	Openness float64 // 0 closed square, 1 fully open
	Bounce   float64 // Extra scale applied on top of the distance scale
	Flash    float64 // Opacity of the fill flash
	Ambient  float64 // Light-estimate alpha, 1 without an estimate
}

const (
	closedOpacity = 0.5
	closedBounce  = 0.85
	pulseBounce   = 0.1
)

func openAppearance() Appearance {
	return Appearance{Opacity: 1, Openness: 1, Bounce: 1, Ambient: 1}
}

type step struct {
	phase    Phase
	duration time.Duration
}

// animator plays a list of phases in order. Each phase interpolates from the
// appearance at its start towards its own target.
type animator struct {
	steps   []step
	elapsed time.Duration
	from    Appearance
	current Appearance
}

func newAnimator(start Appearance) animator {
	return animator{from: start, current: start}
}

// play replaces any running phases, continuing from the current appearance
func (a *animator) play(steps ...step) {
	a.steps = steps
	a.elapsed = 0
	a.from = a.current
}

func (a *animator) phase() Phase {
	if len(a.steps) == 0 {
		return PhaseIdle
	}
	return a.steps[0].phase
}

// advance moves time forward and reports whether the last phase finished
// during this call
func (a *animator) advance(dt time.Duration) bool {
	if len(a.steps) == 0 {
		return false
	}
	if dt > 0 {
		a.elapsed += dt
	}

	for len(a.steps) > 0 && a.elapsed >= a.steps[0].duration {
		s := a.steps[0]
		a.current = apply(s.phase, a.from, 1)
		a.from = a.current
		a.elapsed -= s.duration
		a.steps = a.steps[1:]
	}

	if len(a.steps) == 0 {
		a.elapsed = 0
		a.steps = nil
		return true
	}

	s := a.steps[0]
	a.current = apply(s.phase, a.from, float64(a.elapsed)/float64(s.duration))
	return false
}

// apply evaluates a phase at progress t in [0, 1]
func apply(p Phase, from Appearance, t float64) Appearance {
	out := from
	switch p {
	case PhaseFade:
		out.Opacity = lerp(from.Opacity, closedOpacity, t)
	case PhaseScale:
		out.Openness = lerp(from.Openness, 0, t)
		out.Bounce = 1 - (1-closedBounce)*math.Sin(math.Pi*t)
	case PhaseFlash:
		out.Flash = 1 - t
	case PhaseSettle:
		out.Opacity = lerp(from.Opacity, 1, t)
		out.Bounce = 1
		out.Flash = 0
	case PhaseOpen:
		out.Openness = lerp(from.Openness, 1, t)
		out.Opacity = lerp(from.Opacity, 1, t)
		out.Flash = 0
	case PhasePulse:
		out.Bounce = 1 + pulseBounce*math.Sin(math.Pi*t)
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func closeSteps(total time.Duration, flash bool) []step {
	quarter := total / 4
	steps := []step{{PhaseFade, quarter}, {PhaseScale, quarter}}
	if flash {
		steps = append(steps, step{PhaseFlash, quarter})
	}
	return append(steps, step{PhaseSettle, quarter})
}

func openSteps(total time.Duration) []step {
	quarter := total / 4
	return []step{{PhaseOpen, quarter}, {PhasePulse, quarter}}
}
