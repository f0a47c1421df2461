// Package hittest searches a feature-point cloud for the point a ray is
// aimed at.
package hittest

import (
	"math"
	"sort"

	"github.com/philipparndt/arfocus/pkg/geometry"
)

// FeatureHit is the result of a hit test against the feature cloud
type FeatureHit struct {
	Position             geometry.Vector3 // Projection of the feature onto the ray
	DistanceToRayOrigin  float64          // Distance of Position from the ray origin
	Feature              geometry.Vector3 // The matched feature point
	FeatureDistanceToRay float64          // Perpendicular distance of Feature to the ray
}

// ConeQuery restricts a cone search
type ConeQuery struct {
	HalfAngle   float64 // Maximum angle in radians between the ray and a feature
	MinDistance float64 // Minimum distance along the ray, taken as given
	MaxDistance float64 // Maximum distance along the ray
	MaxResults  int     // Number of results to keep, 1 when not positive
}

// DefaultConeQuery returns the query used for high-confidence feature hits:
// an 18° half-angle between 0.2 m and 2 m, keeping one result.
func DefaultConeQuery() ConeQuery {
	return ConeQuery{
		HalfAngle:   18 * math.Pi / 180,
		MinDistance: 0.2,
		MaxDistance: 2.0,
		MaxResults:  1,
	}
}

// ConeSearch returns feature hits inside a cone around the ray, sorted by
// ascending distance along the ray and capped at q.MaxResults.
// An empty cloud or no qualifying feature yields an empty result.
func ConeSearch(features []geometry.Vector3, ray geometry.Ray, q ConeQuery) []FeatureHit {
	maxResults := q.MaxResults
	if maxResults <= 0 {
		maxResults = 1
	}

	var results []FeatureHit
	for _, feature := range features {
		// Inclusion tests, so NaN coordinates never qualify
		hitDistance := ray.Projection(feature)
		if !(hitDistance >= q.MinDistance && hitDistance <= q.MaxDistance) {
			continue
		}

		originToFeature := feature.Sub(ray.Origin)
		if !(ray.Direction.Angle(originToFeature) <= q.HalfAngle) {
			continue
		}

		results = append(results, FeatureHit{
			Position:             ray.At(hitDistance),
			DistanceToRayOrigin:  hitDistance,
			Feature:              feature,
			FeatureDistanceToRay: ray.DistToPoint(feature),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceToRayOrigin < results[j].DistanceToRayOrigin
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// ClosestToRay returns the feature with the smallest perpendicular distance
// to the ray, without any angle or distance filter. Points with non-finite
// coordinates are skipped. It reports false when no finite point remains.
func ClosestToRay(features []geometry.Vector3, ray geometry.Ray) (FeatureHit, bool) {
	var closest geometry.Vector3
	minDistance := math.Inf(1)
	found := false
	for _, feature := range features {
		if !finite(feature) {
			continue
		}
		if d := ray.DistToPoint(feature); !found || d < minDistance {
			closest = feature
			minDistance = d
			found = true
		}
	}
	if !found {
		return FeatureHit{}, false
	}

	position := ray.ClosestPoint(closest)
	return FeatureHit{
		Position:             position,
		DistanceToRayOrigin:  position.Distance(ray.Origin),
		Feature:              closest,
		FeatureDistanceToRay: minDistance,
	}, true
}

func finite(v geometry.Vector3) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
