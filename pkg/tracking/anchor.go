package tracking

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/philipparndt/arfocus/pkg/geometry"
)

// PlaneAnchor is a detected horizontal surface. The plane lies in the
// anchor's local y = 0 plane; Center and Extent are expressed in that local
// frame and bound the surface in X and Z.
type PlaneAnchor struct {
	ID        uuid.UUID
	Transform geometry.Transform
	Center    geometry.Vector3
	Extent    geometry.Vector3
}

// NewPlaneAnchor creates an anchor with a fresh identity
func NewPlaneAnchor(transform geometry.Transform, center, extent geometry.Vector3) PlaneAnchor {
	return PlaneAnchor{
		ID:        uuid.New(),
		Transform: transform,
		Center:    center,
		Extent:    extent,
	}
}

// Validate checks the anchor invariants
func (a PlaneAnchor) Validate() error {
	if a.ID == uuid.Nil {
		return fmt.Errorf("plane anchor has no identity")
	}
	if a.Extent.X < 0 || a.Extent.Z < 0 || math.IsNaN(a.Extent.X) || math.IsNaN(a.Extent.Z) {
		return fmt.Errorf("plane anchor %s has negative extent %v", a.ID, a.Extent)
	}
	return nil
}

// Height returns the world Y of the plane's origin
func (a PlaneAnchor) Height() float64 {
	return a.Transform.Translation().Y
}

// Contains reports whether a local point lies within the plane's extent
func (a PlaneAnchor) Contains(local geometry.Vector3) bool {
	return math.Abs(local.X-a.Center.X) <= a.Extent.X/2 &&
		math.Abs(local.Z-a.Center.Z) <= a.Extent.Z/2
}

// PlaneHit is the result of a bounded-plane hit test
type PlaneHit struct {
	Position geometry.Vector3
	Distance float64
	Anchor   PlaneAnchor
}

// PlaneHitTester is the tracking collaborator's hit test against existing
// planes, restricted to their extents. It returns the nearest hit.
type PlaneHitTester interface {
	HitTestPlanes(ray geometry.Ray) (PlaneHit, bool)
}

// HitTestPlane intersects the ray with a single anchor's bounded surface
func HitTestPlane(ray geometry.Ray, anchor PlaneAnchor) (PlaneHit, bool) {
	origin := anchor.Transform.InverseTransformPoint(ray.Origin)
	dir := anchor.Transform.InverseTransformDirection(ray.Direction)

	// Parallel rays never enter a bounded surface in a meaningful way
	if dir.Y == 0 {
		return PlaneHit{}, false
	}
	dist := -origin.Y / dir.Y
	if dist < 0 {
		return PlaneHit{}, false
	}

	local := origin.Add(dir.Mul(dist))
	if !anchor.Contains(local) {
		return PlaneHit{}, false
	}
	return PlaneHit{
		Position: ray.At(dist),
		Distance: dist,
		Anchor:   anchor,
	}, true
}
