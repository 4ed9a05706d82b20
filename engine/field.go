package engine

import "github.com/lixenwraith/eyelaser/vmath"

// Field is the play surface in field units, origin top-left, Y down
type Field struct {
	Width, Height float64
}

// FieldFunc reports the current field; the host may resize at any time
type FieldFunc func() Field

// StaticField returns a FieldFunc with fixed dimensions
func StaticField(width, height float64) FieldFunc {
	f := Field{Width: width, Height: height}
	return func() Field { return f }
}

// Rect returns the field rectangle
func (f Field) Rect() vmath.Rect {
	return vmath.Rect{Max: vmath.Vec2{X: f.Width, Y: f.Height}}
}

// Center returns the field center
func (f Field) Center() vmath.Vec2 {
	return vmath.Vec2{X: f.Width / 2, Y: f.Height / 2}
}

// Empty reports a degenerate field, e.g. a terminal minimized to zero rows
func (f Field) Empty() bool {
	return f.Width <= 0 || f.Height <= 0
}
