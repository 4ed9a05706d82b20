package systems

import (
	"github.com/lixenwraith/eyelaser/constants"
	"github.com/lixenwraith/eyelaser/engine"
)

// CullSystem removes asteroids that drifted past the field margin
type CullSystem struct{}

// NewCullSystem creates a new cull system
func NewCullSystem() *CullSystem {
	return &CullSystem{}
}

// Priority returns the system's priority
func (s *CullSystem) Priority() int {
	return constants.PriorityCleanup
}

// Update drops projectiles more than CullMargin outside the field; the margin boundary itself is kept
func (s *CullSystem) Update(ctx *engine.GameContext) {
	state := ctx.State
	bounds := state.Field.Rect().Inset(-ctx.Config.CullMargin)

	for _, p := range state.Projectiles {
		if !bounds.Contains(p.Pos) {
			p.Dead = true
		}
	}
	state.Culled = state.Sweep()
}
