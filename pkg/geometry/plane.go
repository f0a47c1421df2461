package geometry

// IntersectHorizontalPlane intersects the ray with the infinite plane y = planeY.
//
// A ray parallel to the plane only meets it when it lies inside it, in which
// case the origin is returned as a representative point. Intersections behind
// the origin are rejected.
func IntersectHorizontalPlane(ray Ray, planeY float64) (Vector3, bool) {
	if ray.Direction.Y == 0 {
		if ray.Origin.Y == planeY {
			return ray.Origin, true
		}
		return Vector3{}, false
	}

	dist := (planeY - ray.Origin.Y) / ray.Direction.Y
	if dist < 0 {
		return Vector3{}, false
	}
	return ray.At(dist), true
}
