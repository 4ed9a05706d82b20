package renderers

import (
	"fmt"

	"github.com/lixenwraith/eyelaser/render"
	"github.com/lixenwraith/eyelaser/vmath"
)

// ScoreRenderer draws the score overlay in the top-left corner
type ScoreRenderer struct {
	visible bool
}

// NewScoreRenderer creates a score overlay; it stays hidden when scoring is off
func NewScoreRenderer(scoring bool) *ScoreRenderer {
	return &ScoreRenderer{visible: scoring}
}

// IsVisible implements render.VisibilityToggle
func (r *ScoreRenderer) IsVisible() bool {
	return r.visible
}

// Render writes whole-number score and high score
func (r *ScoreRenderer) Render(ctx render.RenderContext, canvas render.Canvas) {
	canvas.Text(vmath.V(0, 0), FormatScore(ctx.State.Score, ctx.State.HighScore), render.RgbScoreText)
}

// FormatScore renders the overlay line
func FormatScore(score, high float64) string {
	return fmt.Sprintf("SCORE %.0f  HIGH %.0f", score, high)
}
