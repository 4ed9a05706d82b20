package render

import "github.com/lixenwraith/eyelaser/vmath"

// Canvas receives drawing intents in field units
// Implementations never feed anything back into game state
type Canvas interface {
	// Size returns the drawable area in field units
	Size() (width, height float64)
	// Fill composites c over the whole surface
	Fill(c Color)
	// Ellipse draws a circle; an invisible fill or stroke is skipped
	Ellipse(center vmath.Vec2, diameter float64, style Style)
	// Line draws a segment with the given stroke width
	Line(from, to vmath.Vec2, c Color, weight float64)
	// Text draws a single line starting at pos
	Text(pos vmath.Vec2, s string, c Color)
}

// Style describes fill and outline of a shape
type Style struct {
	Fill   Color
	Stroke Color
	Weight float64
}
