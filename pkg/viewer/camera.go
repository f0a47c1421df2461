package viewer

import (
	"math"

	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec4"
)

// Clip distances used for projection. Only the far plane matters for
// unprojection and it cancels out of the ray direction.
const (
	NearClip = 0.001
	FarClip  = 1000.0
)

// ScreenPoint is a position on the viewport in pixels, origin top-left, y down
type ScreenPoint struct {
	X, Y float64
}

// Viewport is the size of the drawable area in pixels
type Viewport struct {
	Width, Height float64
}

// Center returns the middle of the viewport
func (v Viewport) Center() ScreenPoint {
	return ScreenPoint{X: v.Width / 2, Y: v.Height / 2}
}

// Aspect returns width / height
func (v Viewport) Aspect() float64 {
	return v.Width / v.Height
}

// Camera is the tracked device camera: a world pose plus the projection
// parameters needed to map between screen and world.
// It looks along its local -Z axis; local +X is screen right and +Y screen up.
type Camera struct {
	Transform   geometry.Transform
	FieldOfView float64 // Vertical field of view in radians
	Viewport    Viewport
}

// NewCamera creates a camera with the given pose and projection
func NewCamera(transform geometry.Transform, fov float64, viewport Viewport) *Camera {
	return &Camera{
		Transform:   transform,
		FieldOfView: fov,
		Viewport:    viewport,
	}
}

// Valid reports whether the camera can project and unproject
func (c *Camera) Valid() bool {
	return c != nil &&
		c.FieldOfView > 0 && c.FieldOfView < math.Pi &&
		c.Viewport.Width > 0 && c.Viewport.Height > 0
}

// Position returns the camera's world translation
func (c *Camera) Position() geometry.Vector3 {
	return c.Transform.Translation()
}

// EulerAngles returns pitch, yaw and roll of the camera pose
func (c *Camera) EulerAngles() (pitch, yaw, roll float64) {
	return c.Transform.EulerAngles()
}

// Ray converts a screen point into a world-space ray starting at the camera.
// The direction points from the camera through the unprojection of the
// screen point onto the far plane. It reports false when the camera is
// missing or its projection is degenerate.
func (c *Camera) Ray(p ScreenPoint) (geometry.Ray, bool) {
	if !c.Valid() {
		return geometry.Ray{}, false
	}

	// Convert screen coordinates to normalized device coordinates (-1 to 1)
	ndcX := (2.0 * p.X / c.Viewport.Width) - 1.0
	ndcY := 1.0 - (2.0 * p.Y / c.Viewport.Height)

	fovScale := math.Tan(c.FieldOfView / 2)
	aspect := c.Viewport.Aspect()

	// Camera-space point on the far plane, then rotate into world space
	local := geometry.NewVector3(ndcX*fovScale*aspect, ndcY*fovScale, -1).Mul(FarClip)
	dir := c.Transform.TransformDirection(local)

	return geometry.NewRay(c.Position(), dir)
}

// ProjectionMatrix returns the perspective projection for this camera
func (c *Camera) ProjectionMatrix() mat4.T {
	var proj mat4.T
	proj.AssignPerspective(c.FieldOfView, c.Viewport.Aspect(), NearClip, FarClip)
	return proj
}

// Project maps a world point to screen coordinates and its depth in front of
// the camera. Points behind the camera report false.
func (c *Camera) Project(point geometry.Vector3) (ScreenPoint, float64, bool) {
	if !c.Valid() {
		return ScreenPoint{}, 0, false
	}

	local := c.Transform.InverseTransformPoint(point)
	if local.Z >= 0 {
		return ScreenPoint{}, 0, false
	}

	proj := c.ProjectionMatrix()
	v := vec4.T{local.X, local.Y, local.Z, 1}
	clip := proj.MulVec4(&v)
	ndc := clip.Vec3DividedByW()

	screen := ScreenPoint{
		X: (ndc[0] + 1) / 2 * c.Viewport.Width,
		Y: (1 - ndc[1]) / 2 * c.Viewport.Height,
	}
	return screen, -local.Z, true
}
