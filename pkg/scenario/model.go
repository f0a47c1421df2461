// Package scenario reads recorded tracking sessions so the resolver and the
// focus indicator can run without a device.
package scenario

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/philipparndt/arfocus/pkg/tracking"
	"github.com/philipparndt/arfocus/pkg/viewer"
	"gopkg.in/yaml.v3"
)

// Defaults for fields a recording may leave out
const (
	DefaultFieldOfViewDeg = 60.0
	DefaultWidth          = 390.0
	DefaultHeight         = 844.0
)

// planeNamespace derives stable anchor identities from plane names that are
// not UUIDs themselves
var planeNamespace = uuid.MustParse("6f1c2b7e-3d4a-4c59-9a8e-2f5b7d1e0c34")

// Vec3 is a point written as a three element sequence, [x, y, z]
type Vec3 struct {
	X, Y, Z float64
}

// UnmarshalYAML implements yaml.Unmarshaler
func (v *Vec3) UnmarshalYAML(node *yaml.Node) error {
	var values []float64
	if err := node.Decode(&values); err != nil {
		return err
	}
	if len(values) != 3 {
		return fmt.Errorf("line %d: expected [x, y, z], got %d values", node.Line, len(values))
	}
	v.X, v.Y, v.Z = values[0], values[1], values[2]
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (v Vec3) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, f := range []float64{v.X, v.Y, v.Z} {
		var n yaml.Node
		if err := n.Encode(f); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &n)
	}
	return node, nil
}

func (v Vec3) finite() bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Vector converts to a geometry vector
func (v Vec3) Vector() geometry.Vector3 {
	return geometry.NewVector3(v.X, v.Y, v.Z)
}

// Scenario is a recorded tracking session
type Scenario struct {
	Name           string      `yaml:"name"`
	Viewport       *Viewport   `yaml:"viewport,omitempty"`
	FieldOfViewDeg float64     `yaml:"field_of_view_deg,omitempty"`
	ScreenPoint    *Point      `yaml:"screen_point,omitempty"`
	Frames         []FrameData `yaml:"frames"`
}

// Viewport is the screen size in pixels
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Point is a screen position in pixels
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// FrameData is one recorded frame
type FrameData struct {
	Time     float64     `yaml:"time"` // Seconds since the start of the session
	Tracking string      `yaml:"tracking,omitempty"`
	Camera   *CameraData `yaml:"camera,omitempty"`
	Features []Vec3      `yaml:"features,omitempty"`
	Planes   []PlaneData `yaml:"planes,omitempty"`
	Light    *LightData  `yaml:"light,omitempty"`
}

// CameraData is a camera pose
type CameraData struct {
	Position Vec3    `yaml:"position"`
	PitchDeg float64 `yaml:"pitch_deg"`
	YawDeg   float64 `yaml:"yaw_deg"`
	RollDeg  float64 `yaml:"roll_deg"`
}

// PlaneData is a detected horizontal plane
type PlaneData struct {
	ID       string  `yaml:"id"`
	Position Vec3    `yaml:"position"`
	YawDeg   float64 `yaml:"yaw_deg"`
	Center   Vec3    `yaml:"center"`
	Extent   Vec3    `yaml:"extent"`
}

// LightData is an ambient light estimate
type LightData struct {
	AmbientIntensity float64 `yaml:"ambient_intensity"`
}

// FrameCount returns the number of recorded frames
func (s *Scenario) FrameCount() int {
	return len(s.Frames)
}

// Duration returns the time of the last frame
func (s *Scenario) Duration() time.Duration {
	if len(s.Frames) == 0 {
		return 0
	}
	return seconds(s.Frames[len(s.Frames)-1].Time)
}

// ViewportSize returns the recorded viewport or the default one
func (s *Scenario) ViewportSize() viewer.Viewport {
	if s.Viewport == nil {
		return viewer.Viewport{Width: DefaultWidth, Height: DefaultHeight}
	}
	return viewer.Viewport{Width: s.Viewport.Width, Height: s.Viewport.Height}
}

// FieldOfView returns the vertical field of view in radians
func (s *Scenario) FieldOfView() float64 {
	if s.FieldOfViewDeg == 0 {
		return geometry.Radians(DefaultFieldOfViewDeg)
	}
	return geometry.Radians(s.FieldOfViewDeg)
}

// Screen returns the recorded screen point, or the viewport center
func (s *Scenario) Screen() viewer.ScreenPoint {
	if s.ScreenPoint == nil {
		return s.ViewportSize().Center()
	}
	return viewer.ScreenPoint{X: s.ScreenPoint.X, Y: s.ScreenPoint.Y}
}

// TrackingFrame converts frame i into a tracking snapshot
func (s *Scenario) TrackingFrame(i int) (*tracking.Frame, error) {
	if i < 0 || i >= len(s.Frames) {
		return nil, fmt.Errorf("frame %d out of range (0-%d)", i, len(s.Frames)-1)
	}
	fd := s.Frames[i]

	frame := &tracking.Frame{
		Timestamp: seconds(fd.Time),
		Tracking:  tracking.Normal,
	}
	if fd.Tracking != "" {
		state, err := tracking.ParseState(fd.Tracking)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frame.Tracking = state
	}

	if fd.Camera != nil {
		pose := geometry.NewTransform(fd.Camera.Position.Vector(),
			geometry.Radians(fd.Camera.PitchDeg), geometry.Radians(fd.Camera.YawDeg), geometry.Radians(fd.Camera.RollDeg))
		frame.Camera = viewer.NewCamera(pose, s.FieldOfView(), s.ViewportSize())
	}

	frame.Features = make([]geometry.Vector3, len(fd.Features))
	for j, f := range fd.Features {
		frame.Features[j] = f.Vector()
	}

	for j, pd := range fd.Planes {
		anchor, err := pd.Anchor()
		if err != nil {
			return nil, fmt.Errorf("frame %d plane %d: %w", i, j, err)
		}
		frame.Planes = append(frame.Planes, anchor)
	}

	if fd.Light != nil {
		frame.Light = &tracking.LightEstimate{AmbientIntensity: fd.Light.AmbientIntensity}
	}
	return frame, nil
}

// TrackingFrames converts every frame
func (s *Scenario) TrackingFrames() ([]*tracking.Frame, error) {
	frames := make([]*tracking.Frame, 0, len(s.Frames))
	for i := range s.Frames {
		frame, err := s.TrackingFrame(i)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

// AnchorID returns the plane identity. Names that are not UUIDs map to a
// stable name-based UUID, so the same name is the same plane in every frame.
func (p PlaneData) AnchorID() (uuid.UUID, error) {
	if p.ID == "" {
		return uuid.Nil, fmt.Errorf("plane without id")
	}
	if id, err := uuid.Parse(p.ID); err == nil {
		return id, nil
	}
	return uuid.NewSHA1(planeNamespace, []byte(p.ID)), nil
}

// Anchor converts the plane into a validated anchor
func (p PlaneData) Anchor() (tracking.PlaneAnchor, error) {
	id, err := p.AnchorID()
	if err != nil {
		return tracking.PlaneAnchor{}, err
	}
	anchor := tracking.PlaneAnchor{
		ID:        id,
		Transform: geometry.NewTransform(p.Position.Vector(), 0, geometry.Radians(p.YawDeg), 0),
		Center:    p.Center.Vector(),
		Extent:    p.Extent.Vector(),
	}
	if err := anchor.Validate(); err != nil {
		return tracking.PlaneAnchor{}, err
	}
	return anchor, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
