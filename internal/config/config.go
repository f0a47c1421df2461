// Package config holds the arfocus configuration: resolver limits,
// indicator policy and logging.
package config

import (
	"time"

	"github.com/philipparndt/arfocus/pkg/focus"
	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/philipparndt/arfocus/pkg/hittest"
	"github.com/philipparndt/arfocus/pkg/resolver"
)

// Config is the complete configuration
type Config struct {
	Resolver  ResolverConfig  `toml:"resolver" yaml:"resolver"`
	Indicator IndicatorConfig `toml:"indicator" yaml:"indicator"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
}

// ResolverConfig configures world-position resolution.
type ResolverConfig struct {
	// ConeHalfAngleDeg is the maximum angle between the ray and a feature.
	ConeHalfAngleDeg float64 `toml:"cone_half_angle_deg" yaml:"cone_half_angle_deg"`

	// MinDistance and MaxDistance bound the feature search along the ray, in meters.
	MinDistance float64 `toml:"min_distance" yaml:"min_distance"`
	MaxDistance float64 `toml:"max_distance" yaml:"max_distance"`

	// MaxResults caps the cone search.
	MaxResults int `toml:"max_results" yaml:"max_results"`

	// InfinitePlaneDrag allows callers to prefer the infinite plane over
	// feature hits.
	InfinitePlaneDrag bool `toml:"infinite_plane_drag" yaml:"infinite_plane_drag"`
}

// IndicatorConfig configures the focus indicator.
type IndicatorConfig struct {
	// HistorySize is the number of positions averaged.
	HistorySize int `toml:"history_size" yaml:"history_size"`

	// NearDistance is where the indicator stops shrinking, in meters.
	NearDistance float64 `toml:"near_distance" yaml:"near_distance"`

	ScaleSlope     float64 `toml:"scale_slope" yaml:"scale_slope"`
	ScaleIntercept float64 `toml:"scale_intercept" yaml:"scale_intercept"`

	// TiltLow and TiltHigh are fractions of a quarter turn.
	TiltLow  float64 `toml:"tilt_low" yaml:"tilt_low"`
	TiltHigh float64 `toml:"tilt_high" yaml:"tilt_high"`

	// AnimationMs is the duration of the close animation.
	AnimationMs int `toml:"animation_ms" yaml:"animation_ms"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`

	// Format is text or json.
	Format string `toml:"format" yaml:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	cone := hittest.DefaultConeQuery()
	opts := focus.DefaultOptions()
	return &Config{
		Resolver: ResolverConfig{
			ConeHalfAngleDeg: geometry.Degrees(cone.HalfAngle),
			MinDistance:      cone.MinDistance,
			MaxDistance:      cone.MaxDistance,
			MaxResults:       cone.MaxResults,
		},
		Indicator: IndicatorConfig{
			HistorySize:    opts.HistorySize,
			NearDistance:   opts.NearDistance,
			ScaleSlope:     opts.ScaleSlope,
			ScaleIntercept: opts.ScaleIntercept,
			TiltLow:        opts.TiltLow,
			TiltHigh:       opts.TiltHigh,
			AnimationMs:    int(opts.AnimationDuration / time.Millisecond),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ResolverConfig converts the resolver section
func (c *Config) ResolverConfig() resolver.Config {
	return resolver.Config{
		Cone: hittest.ConeQuery{
			HalfAngle:   geometry.Radians(c.Resolver.ConeHalfAngleDeg),
			MinDistance: c.Resolver.MinDistance,
			MaxDistance: c.Resolver.MaxDistance,
			MaxResults:  c.Resolver.MaxResults,
		},
		InfinitePlaneDrag: c.Resolver.InfinitePlaneDrag,
	}
}

// FocusOptions converts the indicator section
func (c *Config) FocusOptions() focus.Options {
	return focus.Options{
		HistorySize:       c.Indicator.HistorySize,
		NearDistance:      c.Indicator.NearDistance,
		ScaleSlope:        c.Indicator.ScaleSlope,
		ScaleIntercept:    c.Indicator.ScaleIntercept,
		TiltLow:           c.Indicator.TiltLow,
		TiltHigh:          c.Indicator.TiltHigh,
		AnimationDuration: time.Duration(c.Indicator.AnimationMs) * time.Millisecond,
	}
}
