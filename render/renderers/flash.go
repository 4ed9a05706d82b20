package renderers

import "github.com/lixenwraith/eyelaser/render"

// FlashRenderer tints the whole field red on a head hit
type FlashRenderer struct{}

// NewFlashRenderer creates a flash renderer
func NewFlashRenderer() *FlashRenderer {
	return &FlashRenderer{}
}

// Render flashes once per frame no matter how many asteroids touched the head
func (r *FlashRenderer) Render(ctx render.RenderContext, canvas render.Canvas) {
	if ctx.State.HeadHit {
		canvas.Fill(render.RgbHitFlash)
	}
}
