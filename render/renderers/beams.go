package renderers

import "github.com/lixenwraith/eyelaser/render"

// BeamRenderer draws this frame's eye beams
type BeamRenderer struct{}

// NewBeamRenderer creates a beam renderer
func NewBeamRenderer() *BeamRenderer {
	return &BeamRenderer{}
}

// Render draws the opaque core, then the translucent glow over it
func (r *BeamRenderer) Render(ctx render.RenderContext, canvas render.Canvas) {
	for _, b := range ctx.State.Beams {
		canvas.Line(b.From, b.To, render.RgbBeamCore, render.BeamCoreWeight)
		canvas.Line(b.From, b.To, render.RgbBeamGlow, render.BeamGlowWeight)
	}
}
