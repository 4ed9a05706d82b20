package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/eyelaser/vmath"
)

// upperHalf renders the top pixel as foreground and the bottom pixel as background
const upperHalf = '▀'

// RenderBuffer is a pixel compositor over terminal cells
// Each cell holds two stacked square-ish pixels, so one pixel spans cellWidth × cellHeight/2 field units
type RenderBuffer struct {
	pixels []RGB
	text   []rune
	textFg []RGB
	cols   int
	rows   int
	pixelW float64
	pixelH float64
}

// NewRenderBuffer creates a buffer for a cols × rows terminal
func NewRenderBuffer(cols, rows int, cellWidth, cellHeight float64) *RenderBuffer {
	b := &RenderBuffer{
		pixelW: cellWidth,
		pixelH: cellHeight / 2,
	}
	b.Resize(cols, rows)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	cells := cols * rows
	if cap(b.text) < cells {
		b.pixels = make([]RGB, cells*2)
		b.text = make([]rune, cells)
		b.textFg = make([]RGB, cells)
	} else {
		b.pixels = b.pixels[:cells*2]
		b.text = b.text[:cells]
		b.textFg = b.textFg[:cells]
	}
	b.cols = cols
	b.rows = rows
	b.Clear()
}

// Clear resets all pixels to black and drops text
func (b *RenderBuffer) Clear() {
	clear(b.pixels)
	clear(b.text)
	clear(b.textFg)
}

// Cells returns the terminal dimensions
func (b *RenderBuffer) Cells() (cols, rows int) {
	return b.cols, b.rows
}

// Size returns the drawable area in field units
func (b *RenderBuffer) Size() (width, height float64) {
	return float64(b.cols) * b.pixelW, float64(b.rows*2) * b.pixelH
}

// Pixel returns the composited color at pixel (px, py); py counts half-cells
func (b *RenderBuffer) Pixel(px, py int) RGB {
	if px < 0 || px >= b.cols || py < 0 || py >= b.rows*2 {
		return RGBBlack
	}
	return b.pixels[py*b.cols+px]
}

// TextAt returns the overlay rune at a cell, 0 if none
func (b *RenderBuffer) TextAt(col, row int) rune {
	if col < 0 || col >= b.cols || row < 0 || row >= b.rows {
		return 0
	}
	return b.text[row*b.cols+col]
}

// ===== CANVAS =====

// Fill composites c over every pixel
func (b *RenderBuffer) Fill(c Color) {
	if !c.Visible() {
		return
	}
	for i := range b.pixels {
		b.pixels[i] = c.Over(b.pixels[i])
	}
}

// Ellipse rasterizes a filled circle with an optional outline by sampling pixel centers
func (b *RenderBuffer) Ellipse(center vmath.Vec2, diameter float64, style Style) {
	if diameter <= 0 || !center.IsFinite() {
		return
	}
	r := diameter / 2
	halfStroke := 0.0
	if style.Stroke.Visible() {
		halfStroke = b.minHalfWidth(style.Weight)
	}
	reach := r + halfStroke

	b.forEachPixel(center.X-reach, center.Y-reach, center.X+reach, center.Y+reach, func(idx int, p vmath.Vec2) {
		d := vmath.Distance(p, center)
		if style.Fill.Visible() && d <= r {
			b.pixels[idx] = style.Fill.Over(b.pixels[idx])
		}
		if halfStroke > 0 && math.Abs(d-r) <= halfStroke {
			b.pixels[idx] = style.Stroke.Over(b.pixels[idx])
		}
	})
}

// Line rasterizes a thick segment; strokes thinner than a pixel still cover one pixel
func (b *RenderBuffer) Line(from, to vmath.Vec2, c Color, weight float64) {
	if !c.Visible() || !from.IsFinite() || !to.IsFinite() {
		return
	}
	half := b.minHalfWidth(weight)
	minX, maxX := math.Min(from.X, to.X)-half, math.Max(from.X, to.X)+half
	minY, maxY := math.Min(from.Y, to.Y)-half, math.Max(from.Y, to.Y)+half

	b.forEachPixel(minX, minY, maxX, maxY, func(idx int, p vmath.Vec2) {
		if vmath.PointSegmentDistance(p, from, to) <= half {
			b.pixels[idx] = c.Over(b.pixels[idx])
		}
	})
}

// Text places runes on the cell grid starting at the cell containing pos
func (b *RenderBuffer) Text(pos vmath.Vec2, s string, c Color) {
	if !c.Visible() || b.cols == 0 {
		return
	}
	col := int(math.Floor(pos.X / b.pixelW))
	row := int(math.Floor(pos.Y / (b.pixelH * 2)))
	if row < 0 || row >= b.rows {
		return
	}
	for _, ch := range s {
		if col >= b.cols {
			return
		}
		if col >= 0 {
			idx := row*b.cols + col
			b.text[idx] = ch
			b.textFg[idx] = c.RGB
		}
		col++
	}
}

// minHalfWidth keeps hairlines visible at terminal resolution
func (b *RenderBuffer) minHalfWidth(weight float64) float64 {
	return math.Max(weight/2, math.Max(b.pixelW, b.pixelH)/2)
}

// forEachPixel visits pixels whose centers may fall inside the field-space box, clipped to the buffer
func (b *RenderBuffer) forEachPixel(minX, minY, maxX, maxY float64, fn func(idx int, center vmath.Vec2)) {
	height := b.rows * 2
	x0 := max(int(math.Floor(minX/b.pixelW)), 0)
	x1 := min(int(math.Ceil(maxX/b.pixelW)), b.cols-1)
	y0 := max(int(math.Floor(minY/b.pixelH)), 0)
	y1 := min(int(math.Ceil(maxY/b.pixelH)), height-1)

	for py := y0; py <= y1; py++ {
		cy := (float64(py) + 0.5) * b.pixelH
		for px := x0; px <= x1; px++ {
			cx := (float64(px) + 0.5) * b.pixelW
			fn(py*b.cols+px, vmath.Vec2{X: cx, Y: cy})
		}
	}
}

// ===== OUTPUT =====

// FlushToScreen writes every cell: half blocks for pixels, text cells on the upper pixel's color
func (b *RenderBuffer) FlushToScreen(screen tcell.Screen) {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			top := b.pixels[(row*2)*b.cols+col]
			bottom := b.pixels[(row*2+1)*b.cols+col]

			idx := row*b.cols + col
			if ch := b.text[idx]; ch != 0 {
				style := tcell.StyleDefault.Foreground(b.textFg[idx].TCell()).Background(top.TCell())
				screen.SetContent(col, row, ch, nil, style)
				continue
			}

			style := tcell.StyleDefault.Foreground(top.TCell()).Background(bottom.TCell())
			screen.SetContent(col, row, upperHalf, nil, style)
		}
	}
}
