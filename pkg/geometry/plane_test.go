package geometry

import "testing"

func TestIntersectHorizontalPlaneStraightDown(t *testing.T) {
	ray := Ray{Origin: NewVector3(0, 1, 0), Direction: NewVector3(0, -1, 0)}

	hit, ok := IntersectHorizontalPlane(ray, 0)
	if !ok {
		t.Fatal("expected an intersection")
	}
	if hit != NewVector3(0, 0, 0) {
		t.Errorf("expected (0,0,0), got %v", hit)
	}
}

func TestIntersectHorizontalPlaneParallelAbove(t *testing.T) {
	ray := Ray{Origin: NewVector3(0, 1, 0), Direction: NewVector3(1, 0, 0)}

	if hit, ok := IntersectHorizontalPlane(ray, 0); ok {
		t.Errorf("parallel ray off the plane should miss, got %v", hit)
	}
}

func TestIntersectHorizontalPlaneParallelInside(t *testing.T) {
	origin := NewVector3(2, 0.5, -1)
	ray := Ray{Origin: origin, Direction: NewVector3(1, 0, 0)}

	hit, ok := IntersectHorizontalPlane(ray, 0.5)
	if !ok {
		t.Fatal("ray lying in the plane should report its origin")
	}
	if hit != origin {
		t.Errorf("expected origin %v, got %v", origin, hit)
	}
}

func TestIntersectHorizontalPlaneBehindOrigin(t *testing.T) {
	ray := Ray{Origin: NewVector3(0, 1, 0), Direction: NewVector3(0, 1, 0)}

	if hit, ok := IntersectHorizontalPlane(ray, 0); ok {
		t.Errorf("plane behind the origin should miss, got %v", hit)
	}
}

func TestIntersectHorizontalPlaneOblique(t *testing.T) {
	ray, _ := NewRay(NewVector3(0, 1.5, 0), NewVector3(0, -1, -1))

	hit, ok := IntersectHorizontalPlane(ray, 0.5)
	if !ok {
		t.Fatal("expected an intersection")
	}
	if !hit.ApproxEqual(NewVector3(0, 0.5, -1), 1e-12) {
		t.Errorf("expected (0,0.5,-1), got %v", hit)
	}
}
