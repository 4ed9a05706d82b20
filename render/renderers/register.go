package renderers

import "github.com/lixenwraith/eyelaser/render"

// RegisterAll wires the game's renderers in draw order
func RegisterAll(o *render.RenderOrchestrator, scoring bool) {
	o.Register(NewBackgroundRenderer(), render.PriorityBackground)
	o.Register(NewAsteroidRenderer(), render.PriorityAsteroids)
	o.Register(NewHeadRenderer(), render.PriorityHeads)
	o.Register(NewBeamRenderer(), render.PriorityBeams)
	o.Register(NewFlashRenderer(), render.PriorityFlash)
	o.Register(NewScoreRenderer(scoring), render.PriorityOverlay)
}
