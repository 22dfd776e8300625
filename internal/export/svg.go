// Package export renders simulation data to SVG for snapshots and
// reports.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/clothsim/internal/camera"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/geom"
)

// MeshToSVG renders the cloth wireframe through the camera, one line
// per active constraint, colored by depth the same way the GUI shades
// them.
func MeshToSVG(mesh *cloth.Mesh, cam camera.Camera, viewport geom.Vec2) string {
	if mesh == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0f"/>
<g stroke-width="1">
`, viewport.X, viewport.Y, viewport.X, viewport.Y))

	for i := range mesh.Constraints {
		link := &mesh.Constraints[i]
		pa := mesh.Particles[link.A]
		pb := mesh.Particles[link.B]
		a := cam.Project(pa.Pos, viewport)
		b := cam.Project(pb.Pos, viewport)

		intensity := (cam.Intensity(pa.Pos.Z) + cam.Intensity(pb.Pos.Z)) / 2
		green := int(255 * (1 - intensity))
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="rgb(50,%d,255)"/>
`, a.X, a.Y, b.X, b.Y, green))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots one metric series as a polyline, auto-scaled to the
// data with a 10% margin.
func SeriesToSVG(times, values []float64, width, height int, strokeColor string) string {
	if len(times) < 2 || len(values) < 2 {
		return ""
	}
	n := len(times)
	if len(values) < n {
		n = len(values)
	}

	minX, maxX := times[0], times[0]
	minY, maxY := values[0], values[0]
	for i := 0; i < n; i++ {
		if times[i] < minX {
			minX = times[i]
		}
		if times[i] > maxX {
			maxX = times[i]
		}
		if values[i] < minY {
			minY = values[i]
		}
		if values[i] > maxY {
			maxY = values[i]
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0f"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := 0; i < n; i++ {
		x := (times[i] - minX) / rangeX * float64(width)
		y := float64(height) - (values[i]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
