// Package resolver turns a screen point into the most plausible world
// position, trying plane, feature and infinite-plane hit tests in a fixed
// order of confidence.
package resolver

import (
	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/philipparndt/arfocus/pkg/hittest"
	"github.com/philipparndt/arfocus/pkg/logging"
	"github.com/philipparndt/arfocus/pkg/tracking"
	"github.com/philipparndt/arfocus/pkg/viewer"
)

// Source names the hit test that produced a result
type Source int

const (
	SourceNone Source = iota
	SourcePlane
	SourceFeatureCone
	SourceInfinitePlane
	SourceFeatureClosest
)

func (s Source) String() string {
	switch s {
	case SourcePlane:
		return "plane"
	case SourceFeatureCone:
		return "feature-cone"
	case SourceInfinitePlane:
		return "infinite-plane"
	case SourceFeatureClosest:
		return "feature-closest"
	}
	return "none"
}

// Config holds the resolver tunables
type Config struct {
	// Cone is the query for high-confidence feature hits
	Cone hittest.ConeQuery
	// InfinitePlaneDrag lets callers that ask for it prefer the infinite
	// horizontal plane over a confident feature hit.
	InfinitePlaneDrag bool
}

// DefaultConfig returns the standard cone query with infinite-plane
// dragging switched off
func DefaultConfig() Config {
	return Config{Cone: hittest.DefaultConeQuery()}
}

// Result is the outcome of one resolution. Position is nil when nothing
// could be resolved; Plane is set only for bounded-plane hits.
type Result struct {
	Position *geometry.Vector3
	Plane    *tracking.PlaneAnchor
	HitPlane bool
	Source   Source
}

// Found reports whether a position was resolved
func (r Result) Found() bool {
	return r.Position != nil
}

// Resolver resolves screen points against tracking frames. It holds no
// per-query state and is safe for concurrent use.
type Resolver struct {
	cfg    Config
	planes tracking.PlaneHitTester
}

// New creates a resolver
func New(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// WithPlaneHitTester returns a resolver that asks t for bounded-plane hits
// instead of testing the frame's own plane snapshot.
func (r *Resolver) WithPlaneHitTester(t tracking.PlaneHitTester) *Resolver {
	out := *r
	out.planes = t
	return &out
}

// Config returns the resolver configuration
func (r *Resolver) Config() Config {
	return r.cfg
}

// Resolve finds the world position under screen in frame.
//
// The strategies run in strict priority order and the first success wins:
//  1. bounded planes, restricted to their extents
//  2. a cone search over the feature cloud (recorded, not yet returned)
//  3. the infinite horizontal plane at the reference point's height, when
//     dragging on infinite planes is requested and enabled or step 2 failed
//  4. the cone search result from step 2
//  5. the feature closest to the ray, without any limits
//
// reference defaults to the world origin when nil.
func (r *Resolver) Resolve(frame *tracking.Frame, screen viewer.ScreenPoint, reference *geometry.Vector3, allowInfinitePlane bool) Result {
	log := logging.Logger()

	if frame == nil {
		log.Debug("no frame to resolve against")
		return Result{}
	}
	ray, ok := frame.Camera.Ray(screen)
	if !ok {
		log.Debug("no camera ray", "x", screen.X, "y", screen.Y)
		return Result{}
	}

	// 1. Existing planes always win
	var planes tracking.PlaneHitTester = frame
	if r.planes != nil {
		planes = r.planes
	}
	if hit, ok := planes.HitTestPlanes(ray); ok {
		anchor := hit.Anchor
		return r.found(Result{Position: &hit.Position, Plane: &anchor, HitPlane: true, Source: SourcePlane})
	}

	// 2. High-confidence feature hit, kept for later
	var coneHit *hittest.FeatureHit
	if hits := hittest.ConeSearch(frame.Features, ray, r.cfg.Cone); len(hits) > 0 {
		coneHit = &hits[0]
	}

	// 3. Infinite plane when asked for, or when there is no good feature hit
	if (allowInfinitePlane && r.cfg.InfinitePlaneDrag) || coneHit == nil {
		var planeY float64
		if reference != nil {
			planeY = reference.Y
		}
		if p, ok := geometry.IntersectHorizontalPlane(ray, planeY); ok {
			return r.found(Result{Position: &p, HitPlane: true, Source: SourceInfinitePlane})
		}
	}

	// 4. The feature hit from step 2
	if coneHit != nil {
		p := coneHit.Position
		return r.found(Result{Position: &p, Source: SourceFeatureCone})
	}

	// 5. Anything at all from the feature cloud
	if hit, ok := hittest.ClosestToRay(frame.Features, ray); ok {
		return r.found(Result{Position: &hit.Position, Source: SourceFeatureClosest})
	}

	log.Debug("no world position", "features", len(frame.Features), "planes", len(frame.Planes))
	return Result{}
}

func (r *Resolver) found(res Result) Result {
	logging.Logger().Debug("world position resolved",
		"source", res.Source.String(),
		"x", res.Position.X, "y", res.Position.Y, "z", res.Position.Z,
		"hit_plane", res.HitPlane)
	return res
}
