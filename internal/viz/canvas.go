package viz

import (
	"math"
	"strings"

	"github.com/san-kum/statplot/internal/chart"
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

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Set lights a pixel at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	// text overlays win over dots
	if c.Grid[row][col] < blank || c.Grid[row][col] > blank+0xff {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
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
		c.Set(x0, y0)
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

// DrawCircle draws the outline of a circle with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	x, y := r, 0
	d := 1 - r
	for x >= y {
		for _, p := range [8][2]int{
			{cx + x, cy + y}, {cx - x, cy + y}, {cx + x, cy - y}, {cx - x, cy - y},
			{cx + y, cy + x}, {cx - y, cy + x}, {cx + y, cy - x}, {cx - y, cy - x},
		} {
			c.Set(p[0], p[1])
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// PutText writes s into the character grid starting at (col, row),
// replacing whatever dots were there.
func (c *Canvas) PutText(col, row int, s string) {
	if row < 0 || row >= c.Height {
		return
	}
	for i, r := range []rune(s) {
		if x := col + i; x >= 0 && x < c.Width {
			c.Grid[row][x] = r
		}
	}
}

// Plot draws a scene's marks, abbreviations and axes scaled to the canvas.
func (c *Canvas) Plot(s *chart.Scene) {
	c.Clear()
	if s == nil || s.Layout.InnerWidth <= 0 || s.Layout.InnerHeight <= 0 {
		return
	}

	subW, subH := c.Width*2-1, c.Height*4-1
	sx := float64(subW) / s.Layout.InnerWidth
	sy := float64(subH) / s.Layout.InnerHeight

	c.DrawLine(0, 0, 0, subH)
	c.DrawLine(0, subH, subW, subH)

	r := int(math.Max(1, math.Round(s.Layout.MarkRadius*math.Min(sx, sy))))
	for _, m := range s.Marks {
		if math.IsNaN(m.CX) || math.IsNaN(m.CY) {
			continue
		}
		c.DrawCircle(int(math.Round(m.CX*sx)), int(math.Round(m.CY*sy)), r)
	}
	for _, m := range s.Marks {
		if math.IsNaN(m.CX) || math.IsNaN(m.CY) {
			continue
		}
		col := int(math.Round(m.CX*sx)) / 2
		row := int(math.Round(m.CY*sy)) / 4
		c.PutText(col-len(m.Abbr)/2, row, m.Abbr)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
