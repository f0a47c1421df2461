package scenario

import (
	"errors"
	"fmt"

	"github.com/philipparndt/arfocus/pkg/tracking"
)

// Validate checks the recording. It reports every problem found, joined
// into one error.
func (s *Scenario) Validate() error {
	var errs []error

	if len(s.Frames) == 0 {
		errs = append(errs, errors.New("scenario has no frames"))
	}
	if s.Viewport != nil && (s.Viewport.Width <= 0 || s.Viewport.Height <= 0) {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %vx%v", s.Viewport.Width, s.Viewport.Height))
	}
	if s.FieldOfViewDeg < 0 || s.FieldOfViewDeg >= 180 {
		errs = append(errs, fmt.Errorf("field_of_view_deg must be between 0 and 180, got %v", s.FieldOfViewDeg))
	}

	prev := 0.0
	for i, fd := range s.Frames {
		if fd.Time < prev {
			errs = append(errs, fmt.Errorf("frame %d: time %v goes backwards (previous %v)", i, fd.Time, prev))
		}
		prev = fd.Time

		if fd.Tracking != "" {
			if _, err := tracking.ParseState(fd.Tracking); err != nil {
				errs = append(errs, fmt.Errorf("frame %d: %w", i, err))
			}
		}
		for j, f := range fd.Features {
			if !f.finite() {
				errs = append(errs, fmt.Errorf("frame %d: feature %d is not finite", i, j))
			}
		}
		if fd.Camera != nil && !fd.Camera.Position.finite() {
			errs = append(errs, fmt.Errorf("frame %d: camera position is not finite", i))
		}
		if fd.Light != nil && fd.Light.AmbientIntensity < 0 {
			errs = append(errs, fmt.Errorf("frame %d: negative ambient intensity", i))
		}

		seen := make(map[string]bool)
		for j, pd := range fd.Planes {
			if _, err := pd.Anchor(); err != nil {
				errs = append(errs, fmt.Errorf("frame %d plane %d: %w", i, j, err))
				continue
			}
			if seen[pd.ID] {
				errs = append(errs, fmt.Errorf("frame %d: duplicate plane %q", i, pd.ID))
			}
			seen[pd.ID] = true
		}
	}

	return errors.Join(errs...)
}
