package render

import "github.com/gdamore/tcell/v2"

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Color is an RGB with 8-bit opacity; A=255 is opaque, A=0 draws nothing
type Color struct {
	RGB
	A uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Opaque returns a fully opaque color
func Opaque(r, g, b uint8) Color {
	return Color{RGB: RGB{r, g, b}, A: 255}
}

// RGBA returns a color with explicit opacity
func RGBA(r, g, b, a uint8) Color {
	return Color{RGB: RGB{r, g, b}, A: a}
}

// Gray returns an opaque gray level
func Gray(level uint8) Color {
	return Opaque(level, level, level)
}

// Alpha returns opacity in [0, 1]
func (c Color) Alpha() float64 {
	return float64(c.A) / 255
}

// Visible reports whether drawing c changes anything
func (c Color) Visible() bool {
	return c.A > 0
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv + 0.5),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv + 0.5),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv + 0.5),
	}
}

// Over composites c onto dst using c's opacity
func (c Color) Over(dst RGB) RGB {
	return dst.Blend(c.RGB, c.Alpha())
}

// TCell converts to a tcell true color
func (c RGB) TCell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
