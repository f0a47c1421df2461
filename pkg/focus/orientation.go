package focus

import (
	"math"
	"time"

	"github.com/philipparndt/arfocus/pkg/viewer"
)

// Options tunes the indicator's smoothing, scale and orientation policy
type Options struct {
	// HistorySize is the number of positions averaged by the smoother
	HistorySize int
	// NearDistance is the camera distance below which the indicator shrinks
	// linearly towards zero. At this distance the scale is 1.
	NearDistance float64
	// ScaleSlope and ScaleIntercept give the scale beyond NearDistance
	ScaleSlope     float64
	ScaleIntercept float64
	// TiltLow and TiltHigh are the yaw blend thresholds as fractions of π/2
	TiltLow  float64
	TiltHigh float64
	// AnimationDuration is the length of a full close animation
	AnimationDuration time.Duration
}

// DefaultOptions returns the standard indicator policy
func DefaultOptions() Options {
	return Options{
		HistorySize:       DefaultHistorySize,
		NearDistance:      0.7,
		ScaleSlope:        0.25,
		ScaleIntercept:    0.825,
		TiltLow:           0.65,
		TiltHigh:          0.75,
		AnimationDuration: 700 * time.Millisecond,
	}
}

// ScaleForDistance returns the uniform indicator scale for a camera
// distance d. Without a camera the scale is 1.
func (o Options) ScaleForDistance(d float64, hasCamera bool) float64 {
	if !hasCamera {
		return 1.0
	}
	if d < o.NearDistance {
		return d / o.NearDistance
	}
	return o.ScaleSlope*d + o.ScaleIntercept
}

// Thresholds returns the tilt angles in radians where yaw blending starts
// and ends
func (o Options) Thresholds() (low, high float64) {
	return math.Pi / 2 * o.TiltLow, math.Pi / 2 * o.TiltHigh
}

// BlendYaw picks the indicator yaw for a camera tilt (absolute pitch).
// Below the low threshold the camera's own y-rotation is used, above the
// high threshold the transform yaw; in between the camera rotation, snapped
// to the quarter turn closest to the transform yaw, is blended linearly
// into it.
func (o Options) BlendYaw(tilt, cameraYaw, transformYaw float64) float64 {
	low, high := o.Thresholds()
	switch {
	case tilt < low:
		return cameraYaw
	case tilt < high:
		t := math.Abs((tilt - low) / (high - low))
		normalized := normalizeYaw(cameraYaw, transformYaw)
		return normalized*(1-t) + transformYaw*t
	default:
		return transformYaw
	}
}

// Yaw returns the indicator yaw for a camera pose
func (o Options) Yaw(camera *viewer.Camera) float64 {
	pitch, yaw, _ := camera.EulerAngles()
	return o.BlendYaw(math.Abs(pitch), yaw, TransformYaw(camera))
}

// ScaleForDistance applies the default scale policy
func ScaleForDistance(d float64, hasCamera bool) float64 {
	return DefaultOptions().ScaleForDistance(d, hasCamera)
}

// BlendYaw applies the default yaw blend
func BlendYaw(tilt, cameraYaw, transformYaw float64) float64 {
	return DefaultOptions().BlendYaw(tilt, cameraYaw, transformYaw)
}

// TransformYaw is the heading read straight from the camera's rotation
// columns, atan2(right.x, up.x). It stays stable when the camera looks
// almost straight down, where the Euler yaw degenerates.
func TransformYaw(camera *viewer.Camera) float64 {
	right := camera.Transform.Column(0)
	up := camera.Transform.Column(1)
	return math.Atan2(right.X, up.X)
}

// yawTieEpsilon absorbs rounding when a reduced gap lands on ±π/4
const yawTieEpsilon = 1e-12

// normalizeYaw moves angle by quarter turns until it is within π/4 of ref.
// A gap of exactly π/4 after reduction stays on the side angle started on.
func normalizeYaw(angle, ref float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) || math.IsNaN(ref) || math.IsInf(ref, 0) {
		return angle
	}
	gap := angle - ref
	r := math.Remainder(gap, math.Pi/2)
	if math.Abs(math.Abs(r)-math.Pi/4) < yawTieEpsilon {
		r = math.Copysign(math.Pi/4, gap)
	}
	return ref + r
}
