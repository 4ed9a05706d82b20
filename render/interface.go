package render

import "github.com/lixenwraith/eyelaser/engine"

// RenderContext is the read-only frame view handed to renderers
// State belongs to the frame loop; renderers run on the same goroutine after Tick
type RenderContext struct {
	State *engine.GameState
}

// SystemRenderer is implemented by anything with visual output
type SystemRenderer interface {
	Render(ctx RenderContext, canvas Canvas)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}
