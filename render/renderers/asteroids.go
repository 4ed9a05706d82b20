package renderers

import "github.com/lixenwraith/eyelaser/render"

// AsteroidRenderer draws live projectiles as gray discs
type AsteroidRenderer struct{}

// NewAsteroidRenderer creates an asteroid renderer
func NewAsteroidRenderer() *AsteroidRenderer {
	return &AsteroidRenderer{}
}

// Render draws each surviving projectile at twice its radius
func (r *AsteroidRenderer) Render(ctx render.RenderContext, canvas render.Canvas) {
	style := render.Style{Fill: render.RgbAsteroid}
	for _, p := range ctx.State.Projectiles {
		canvas.Ellipse(p.Pos, p.Radius*2, style)
	}
}
