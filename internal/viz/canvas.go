package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// ShadeLevels is the number of brightness buckets used for depth cues.
const ShadeLevels = 4

// dim to bright; the nearest cloth layer renders brightest
var shadeStyles = [ShadeLevels]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("24")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("31")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("38")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
}

// Canvas is a braille drawing surface with a per-cell shade layer. A
// cell keeps the brightest shade any of its dots was drawn with, so
// near cloth reads over far cloth where they overlap.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Shade         [][]uint8
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Shade:  make([][]uint8, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Shade[i] = make([]uint8, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set sets a dot at (x, y) in sub-pixel coordinates at the brightest
// shade. The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	c.SetShaded(x, y, ShadeLevels-1)
}

// SetShaded sets a dot with an explicit shade level in [0, ShadeLevels).
func (c *Canvas) SetShaded(x, y int, level uint8) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
	if level >= ShadeLevels {
		level = ShadeLevels - 1
	}
	if level > c.Shade[row][col] {
		c.Shade[row][col] = level
	}
}

// Unset clears a dot
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	mask := ^rune(pixelMap[subY][subX])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < 0x2800 {
		c.Grid[row][col] = 0x2800
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
			c.Shade[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	c.DrawLineShaded(x0, y0, x1, y1, ShadeLevels-1)
}

// DrawLineShaded draws a Bresenham line at one shade level.
func (c *Canvas) DrawLineShaded(x0, y0, x1, y1 int, level uint8) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.SetShaded(x0, y0, level)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the canvas with ANSI colors, batching runs of cells
// that share a shade level to keep the escape-code overhead down.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		j := 0
		for j < len(row) {
			level := c.Shade[i][j]
			k := j
			for k < len(row) && c.Shade[i][k] == level {
				k++
			}
			b.WriteString(shadeStyles[level].Render(string(row[j:k])))
			j = k
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
