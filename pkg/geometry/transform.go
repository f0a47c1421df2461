package geometry

import (
	"math"

	"github.com/ungerik/go3d/float64/mat4"
)

// gimbalEpsilon is how close |sin(pitch)| may get to 1 before yaw and roll
// can no longer be separated.
const gimbalEpsilon = 1e-9

// Transform is a rigid world transform stored as a column-major 4x4 matrix.
// Columns 0..2 are the local X, Y and Z axes; column 3 is the translation.
type Transform struct {
	m mat4.T
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{m: mat4.Ident}
}

// NewTransform builds a transform from a translation and Euler angles in
// radians. The rotation is yaw about world Y, then pitch about local X, then
// roll about local Z: R = Ry(yaw) * Rx(pitch) * Rz(roll).
func NewTransform(translation Vector3, pitch, yaw, roll float64) Transform {
	var ry, rx, rz, yx, m mat4.T
	ry.AssignYRotation(yaw)
	rx.AssignXRotation(pitch)
	rz.AssignZRotation(roll)
	yx.AssignMul(&ry, &rx)
	m.AssignMul(&yx, &rz)

	t := translation.Vec3()
	m.SetTranslation(&t)
	return Transform{m: m}
}

// Matrix returns the underlying go3d matrix
func (t Transform) Matrix() mat4.T {
	return t.m
}

// Column returns one of the first three columns of the matrix as a vector.
// Column 3 holds the translation.
func (t Transform) Column(i int) Vector3 {
	c := t.m[i]
	return Vector3{X: c[0], Y: c[1], Z: c[2]}
}

// Translation returns the world position of the transform's origin
func (t Transform) Translation() Vector3 {
	return t.Column(3)
}

// Right returns the local +X axis in world space
func (t Transform) Right() Vector3 { return t.Column(0) }

// Up returns the local +Y axis in world space
func (t Transform) Up() Vector3 { return t.Column(1) }

// Forward returns the local -Z axis in world space, the viewing direction of
// a camera transform.
func (t Transform) Forward() Vector3 { return t.Column(2).Neg() }

// TransformPoint maps a local point into world space
func (t Transform) TransformPoint(p Vector3) Vector3 {
	v := p.Vec3()
	return FromVec3(t.m.MulVec3W(&v, 1))
}

// TransformDirection rotates a local direction into world space
func (t Transform) TransformDirection(d Vector3) Vector3 {
	v := d.Vec3()
	return FromVec3(t.m.MulVec3W(&v, 0))
}

// InverseTransformPoint maps a world point into local space.
// Only valid for rigid transforms, where the inverse rotation is the transpose.
func (t Transform) InverseTransformPoint(p Vector3) Vector3 {
	return t.InverseTransformDirection(p.Sub(t.Translation()))
}

// InverseTransformDirection rotates a world direction into local space
func (t Transform) InverseTransformDirection(d Vector3) Vector3 {
	return Vector3{
		X: d.Dot(t.Column(0)),
		Y: d.Dot(t.Column(1)),
		Z: d.Dot(t.Column(2)),
	}
}

// EulerAngles decomposes the rotation into the angles accepted by
// NewTransform. Pitch is in [-π/2, π/2]; at gimbal lock roll is reported as 0.
func (t Transform) EulerAngles() (pitch, yaw, roll float64) {
	m := &t.m
	s := -m[2][1]
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	pitch = math.Asin(s)

	if math.Abs(s) > 1-gimbalEpsilon {
		return pitch, math.Atan2(-m[0][2], m[0][0]), 0
	}
	yaw = math.Atan2(m[2][0], m[2][2])
	roll = math.Atan2(m[0][1], m[1][1])
	return pitch, yaw, roll
}

// Compose returns t * other, applying other first
func (t Transform) Compose(other Transform) Transform {
	var m mat4.T
	m.AssignMul(&t.m, &other.m)
	return Transform{m: m}
}
