package camera

import (
	"math"
	"testing"

	"github.com/san-kum/clothsim/internal/geom"
)

func TestProjectCenterAnchors(t *testing.T) {
	cam := New()
	viewport := geom.Vec2{X: 1400, Y: 900}

	// origin projects to the screen anchors regardless of scale
	s := cam.Project(geom.Vec3{}, viewport)
	if s.X != 700 || s.Y != 90 {
		t.Errorf("expected origin at (700, 90), got (%f, %f)", s.X, s.Y)
	}
}

func TestProjectPerspectiveShrink(t *testing.T) {
	cam := New()
	viewport := geom.Vec2{X: 1000, Y: 1000}

	near := cam.Project(geom.Vec3{X: 100, Z: -200}, viewport)
	far := cam.Project(geom.Vec3{X: 100, Z: 200}, viewport)
	if near.X-500 <= far.X-500 {
		t.Error("nearer points must project farther from the anchor")
	}
}

func TestUnprojectRoundTrip(t *testing.T) {
	cam := New()
	viewport := geom.Vec2{X: 1400, Y: 900}

	points := []geom.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: -630, Y: 810, Z: 0},
		{X: 123.5, Y: 456.25, Z: -99},
		{X: 10, Y: 10, Z: 350},
		{X: -0.5, Y: 0.25, Z: -1399}, // just inside the valid depth domain
	}

	for _, p := range points {
		s := cam.Project(p, viewport)
		x, y := cam.Unproject(s, p.Z, viewport)
		if math.Abs(x-p.X) > 1e-9 || math.Abs(y-p.Y) > 1e-9 {
			t.Errorf("round trip of %+v gave (%f, %f)", p, x, y)
		}
	}
}

func TestScaleDomain(t *testing.T) {
	cam := New()
	if s := cam.Scale(0); s <= 0 {
		t.Errorf("scale at z=0 should be positive, got %f", s)
	}
	if s := cam.Scale(-1399); s <= 0 {
		t.Errorf("scale just inside domain should be positive, got %f", s)
	}
}

func TestIntensityClamp(t *testing.T) {
	tests := []struct {
		z    float64
		want float64
	}{
		{-100, 0},
		{-500, 0},
		{100, 0.5},
		{300, 1},
		{1000, 1},
	}

	cam := New()
	for _, tt := range tests {
		if got := cam.Intensity(tt.z); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Intensity(%f) = %f, want %f", tt.z, got, tt.want)
		}
	}
}

func TestAnchorsDistinct(t *testing.T) {
	cam := New()
	if cam.AnchorX == cam.AnchorY {
		t.Error("X and Y anchors must differ")
	}
}
