package renderers

import "github.com/lixenwraith/eyelaser/render"

// HeadRenderer draws a translucent disc over every detected head
type HeadRenderer struct{}

// NewHeadRenderer creates a head renderer
func NewHeadRenderer() *HeadRenderer {
	return &HeadRenderer{}
}

// Render uses the draw diameter, twice the eye span
func (r *HeadRenderer) Render(ctx render.RenderContext, canvas render.Canvas) {
	style := render.Style{
		Fill:   render.RgbHeadFill,
		Stroke: render.RgbHeadStroke,
		Weight: render.HeadStrokeWidth,
	}
	for _, aim := range ctx.State.Aims {
		canvas.Ellipse(aim.Head.Center, aim.Head.DrawDiameter(), style)
	}
}
