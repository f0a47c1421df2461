package config

import (
	"fmt"
	"strings"

	"github.com/philipparndt/arfocus/pkg/logging"
)

// ValidationError is a single invalid field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration. It returns ValidationErrors listing
// every problem, or nil.
func (c *Config) Validate() error {
	var errs ValidationErrors
	errs = append(errs, validateResolver(&c.Resolver)...)
	errs = append(errs, validateIndicator(&c.Indicator)...)
	errs = append(errs, validateLogging(&c.Logging)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateResolver(r *ResolverConfig) ValidationErrors {
	var errs ValidationErrors

	if r.ConeHalfAngleDeg <= 0 || r.ConeHalfAngleDeg >= 90 {
		errs = append(errs, ValidationError{
			Field:   "resolver.cone_half_angle_deg",
			Message: fmt.Sprintf("must be between 0 and 90, got %v", r.ConeHalfAngleDeg),
		})
	}
	if r.MinDistance < 0 {
		errs = append(errs, ValidationError{
			Field:   "resolver.min_distance",
			Message: "must not be negative",
		})
	}
	if r.MaxDistance <= r.MinDistance {
		errs = append(errs, ValidationError{
			Field:   "resolver.max_distance",
			Message: fmt.Sprintf("must be greater than min_distance (%v)", r.MinDistance),
		})
	}
	if r.MaxResults < 1 {
		errs = append(errs, ValidationError{
			Field:   "resolver.max_results",
			Message: "must be at least 1",
		})
	}
	return errs
}

func validateIndicator(i *IndicatorConfig) ValidationErrors {
	var errs ValidationErrors

	if i.HistorySize < 1 {
		errs = append(errs, ValidationError{
			Field:   "indicator.history_size",
			Message: "must be at least 1",
		})
	}
	if i.NearDistance <= 0 {
		errs = append(errs, ValidationError{
			Field:   "indicator.near_distance",
			Message: "must be positive",
		})
	}
	if i.TiltLow < 0 || i.TiltHigh > 1 || i.TiltLow >= i.TiltHigh {
		errs = append(errs, ValidationError{
			Field:   "indicator.tilt_low",
			Message: fmt.Sprintf("need 0 <= tilt_low < tilt_high <= 1, got %v and %v", i.TiltLow, i.TiltHigh),
		})
	}
	if i.AnimationMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "indicator.animation_ms",
			Message: "must not be negative",
		})
	}
	return errs
}

func validateLogging(l *LoggingConfig) ValidationErrors {
	var errs ValidationErrors

	if _, err := logging.ParseLevel(l.Level); err != nil {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: err.Error(),
		})
	}
	switch logging.Format(strings.ToLower(l.Format)) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format %q", l.Format),
		})
	}
	return errs
}
