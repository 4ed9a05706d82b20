package renderers

import "github.com/lixenwraith/eyelaser/render"

// BackgroundRenderer paints the field backdrop
type BackgroundRenderer struct{}

// NewBackgroundRenderer creates a background renderer
func NewBackgroundRenderer() *BackgroundRenderer {
	return &BackgroundRenderer{}
}

// Render fills the whole canvas
func (r *BackgroundRenderer) Render(ctx render.RenderContext, canvas render.Canvas) {
	canvas.Fill(render.RgbBackground)
}
