package systems

import (
	"github.com/lixenwraith/eyelaser/constants"
	"github.com/lixenwraith/eyelaser/engine"
)

// MovementSystem advances every asteroid by its velocity
type MovementSystem struct{}

// NewMovementSystem creates a new movement system
func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

// Priority returns the system's priority
func (s *MovementSystem) Priority() int {
	return constants.PriorityMovement
}

// Update moves all projectiles; bounds are the cull system's concern
func (s *MovementSystem) Update(ctx *engine.GameContext) {
	for _, p := range ctx.State.Projectiles {
		p.Advance()
	}
}
