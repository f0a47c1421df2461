package scenario

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/philipparndt/arfocus/pkg/tracking"
)

// Summary contains statistics about a recording
type Summary struct {
	Name           string
	FrameCount     int
	Duration       time.Duration
	MinFeatures    int
	MaxFeatures    int
	AvgFeatures    float64
	PlaneCount     int // Distinct plane identities over the whole recording
	MaxPlaneArea   float64
	FeatureBounds  geometry.BoundingBox
	HasFeatures    bool
	TrackingStates map[tracking.State]int
	FramesNoCamera int
	MinAmbient     float64
	MaxAmbient     float64
	HasLight       bool
}

// Summarize computes statistics over all frames
func Summarize(s *Scenario) (*Summary, error) {
	frames, err := s.TrackingFrames()
	if err != nil {
		return nil, err
	}

	result := &Summary{
		Name:           s.Name,
		FrameCount:     len(frames),
		Duration:       s.Duration(),
		FeatureBounds:  geometry.NewBoundingBox(),
		TrackingStates: make(map[tracking.State]int),
		MinAmbient:     math.MaxFloat64,
	}

	minFeatures := math.MaxInt
	totalFeatures := 0
	planes := make(map[uuid.UUID]bool)

	for _, frame := range frames {
		result.TrackingStates[frame.Tracking]++
		if frame.Camera == nil {
			result.FramesNoCamera++
		}

		n := len(frame.Features)
		totalFeatures += n
		if n < minFeatures {
			minFeatures = n
		}
		if n > result.MaxFeatures {
			result.MaxFeatures = n
		}
		for _, f := range frame.Features {
			result.FeatureBounds.Extend(f)
			result.HasFeatures = true
		}

		for _, anchor := range frame.Planes {
			planes[anchor.ID] = true
			if area := anchor.Extent.X * anchor.Extent.Z; area > result.MaxPlaneArea {
				result.MaxPlaneArea = area
			}
		}

		if frame.Light != nil {
			result.HasLight = true
			result.MinAmbient = math.Min(result.MinAmbient, frame.Light.AmbientIntensity)
			result.MaxAmbient = math.Max(result.MaxAmbient, frame.Light.AmbientIntensity)
		}
	}

	if len(frames) > 0 {
		result.MinFeatures = minFeatures
		result.AvgFeatures = float64(totalFeatures) / float64(len(frames))
	}
	if !result.HasLight {
		result.MinAmbient = 0
	}
	result.PlaneCount = len(planes)

	return result, nil
}
