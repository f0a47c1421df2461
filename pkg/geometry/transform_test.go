package geometry

import (
	"math"
	"testing"
)

func TestTransformIdentity(t *testing.T) {
	tr := Identity()
	p := NewVector3(1, 2, 3)

	if got := tr.TransformPoint(p); got != p {
		t.Errorf("TransformPoint failed: expected %v, got %v", p, got)
	}
	if got := tr.Forward(); got != NewVector3(0, 0, -1) {
		t.Errorf("Forward failed: expected (0,0,-1), got %v", got)
	}
}

func TestTransformTranslation(t *testing.T) {
	tr := NewTransform(NewVector3(1, 2, 3), 0, 0, 0)

	if got := tr.Translation(); got != NewVector3(1, 2, 3) {
		t.Errorf("Translation failed: got %v", got)
	}
	if got := tr.TransformPoint(NewVector3(1, 0, 0)); !got.ApproxEqual(NewVector3(2, 2, 3), 1e-12) {
		t.Errorf("TransformPoint failed: got %v", got)
	}
	if got := tr.TransformDirection(NewVector3(1, 0, 0)); !got.ApproxEqual(NewVector3(1, 0, 0), 1e-12) {
		t.Errorf("TransformDirection must ignore translation: got %v", got)
	}
}

func TestTransformYawRotatesForward(t *testing.T) {
	// Yaw of +90° turns the -Z view direction towards -X.
	tr := NewTransform(Vector3{}, 0, math.Pi/2, 0)

	if got := tr.Forward(); !got.ApproxEqual(NewVector3(-1, 0, 0), 1e-12) {
		t.Errorf("Forward failed: expected (-1,0,0), got %v", got)
	}
}

func TestTransformPitchDownLooksAtFloor(t *testing.T) {
	tr := NewTransform(Vector3{}, -math.Pi/2, 0, 0)

	if got := tr.Forward(); !got.ApproxEqual(NewVector3(0, -1, 0), 1e-12) {
		t.Errorf("Forward failed: expected (0,-1,0), got %v", got)
	}
}

func TestTransformEulerRoundTrip(t *testing.T) {
	cases := [][3]float64{
		{0.3, -1.2, 0.4},
		{-1.1, 2.5, -math.Pi / 2},
		{0, 0, 0},
		{1.2, -0.1, 3.0},
	}

	for _, c := range cases {
		tr := NewTransform(NewVector3(1, 1, 1), c[0], c[1], c[2])
		pitch, yaw, roll := tr.EulerAngles()

		if math.Abs(pitch-c[0]) > 1e-9 || math.Abs(yaw-c[1]) > 1e-9 || math.Abs(roll-c[2]) > 1e-9 {
			t.Errorf("EulerAngles failed: expected %v, got (%v, %v, %v)", c, pitch, yaw, roll)
		}
	}
}

func TestTransformInverse(t *testing.T) {
	tr := NewTransform(NewVector3(1, -2, 0.5), 0.4, 1.3, -0.2)
	p := NewVector3(0.3, 0.7, -1.1)

	world := tr.TransformPoint(p)
	if back := tr.InverseTransformPoint(world); !back.ApproxEqual(p, 1e-12) {
		t.Errorf("InverseTransformPoint failed: expected %v, got %v", p, back)
	}
}

func TestTransformCompose(t *testing.T) {
	a := NewTransform(NewVector3(1, 0, 0), 0, math.Pi/2, 0)
	b := NewTransform(NewVector3(0, 0, -1), 0, 0, 0)
	p := NewVector3(0.5, 0.5, 0.5)

	got := a.Compose(b).TransformPoint(p)
	want := a.TransformPoint(b.TransformPoint(p))
	if !got.ApproxEqual(want, 1e-12) {
		t.Errorf("Compose failed: expected %v, got %v", want, got)
	}
}
