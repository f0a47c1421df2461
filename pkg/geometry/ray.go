package geometry

// Ray is a half-line from Origin along the unit vector Direction
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay builds a ray with a normalized direction.
// It reports false when the direction has zero length.
func NewRay(origin, direction Vector3) (Ray, bool) {
	dir := direction.Normalize()
	if dir == (Vector3{}) {
		return Ray{}, false
	}
	return Ray{Origin: origin, Direction: dir}, true
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Projection returns the signed distance along the ray of the orthogonal
// projection of pt. Negative values lie behind the origin.
func (r Ray) Projection(pt Vector3) float64 {
	return r.Direction.Dot(pt.Sub(r.Origin))
}

// ClosestPoint returns the point on the ray's supporting line closest to pt
func (r Ray) ClosestPoint(pt Vector3) Vector3 {
	return r.At(r.Projection(pt))
}

// DistToPoint returns the perpendicular distance from pt to the ray's line,
// computed as the magnitude of the cross product with the unit direction.
func (r Ray) DistToPoint(pt Vector3) float64 {
	return pt.Sub(r.Origin).Cross(r.Direction).Length()
}
