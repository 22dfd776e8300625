package export

import (
	"strings"
	"testing"

	"github.com/san-kum/clothsim/internal/camera"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/geom"
)

var viewport = geom.Vec2{X: 1400, Y: 900}

func TestMeshToSVG(t *testing.T) {
	mesh, err := cloth.NewMesh(3, 3, 10)
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}

	svg := MeshToSVG(mesh, camera.New(), viewport)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing xml header")
	}
	if got := strings.Count(svg, "<line "); got != len(mesh.Constraints) {
		t.Errorf("expected %d lines, got %d", len(mesh.Constraints), got)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("unterminated svg")
	}
}

func TestMeshToSVGNilMesh(t *testing.T) {
	if svg := MeshToSVG(nil, camera.New(), viewport); svg != "" {
		t.Error("nil mesh should produce empty output")
	}
}

func TestMeshToSVGSkipsNothing(t *testing.T) {
	mesh, err := cloth.NewMesh(2, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	mesh.Constraints[0].Broken = true
	mesh.Prune()

	svg := MeshToSVG(mesh, camera.New(), viewport)
	if got := strings.Count(svg, "<line "); got != 3 {
		t.Errorf("expected 3 lines after prune, got %d", got)
	}
}

func TestSeriesToSVG(t *testing.T) {
	times := []float64{0, 1, 2, 3}
	values := []float64{1.0, 1.1, 1.3, 1.2}

	svg := SeriesToSVG(times, values, 400, 200, "#00ff00")

	if !strings.Contains(svg, `<path fill="none"`) {
		t.Error("missing path element")
	}
	if strings.Count(svg, " L") != 3 {
		t.Errorf("expected 3 line segments, got %d", strings.Count(svg, " L"))
	}
}

func TestSeriesToSVGTooShort(t *testing.T) {
	if svg := SeriesToSVG([]float64{0}, []float64{1}, 400, 200, "#fff"); svg != "" {
		t.Error("single point should produce empty output")
	}
}

func TestSeriesToSVGFlatLine(t *testing.T) {
	// constant series must not divide by zero
	svg := SeriesToSVG([]float64{0, 1, 2}, []float64{5, 5, 5}, 400, 200, "#fff")
	if svg == "" {
		t.Error("flat series should still render")
	}
}
