package systems

import (
	"github.com/lixenwraith/eyelaser/constants"
	"github.com/lixenwraith/eyelaser/engine"
	"github.com/lixenwraith/eyelaser/pose"
	"github.com/lixenwraith/eyelaser/vmath"
)

// HazardSystem checks surviving asteroids against the first detected person's head
type HazardSystem struct{}

// NewHazardSystem creates a new hazard system
func NewHazardSystem() *HazardSystem {
	return &HazardSystem{}
}

// Priority returns the system's priority
func (s *HazardSystem) Priority() int {
	return constants.PriorityHazard
}

// Update flags a head hit and, with scoring on, banks the run score once for the frame
func (s *HazardSystem) Update(ctx *engine.GameContext) {
	state := ctx.State

	var first pose.Pose
	switch {
	case len(state.Mirrored) > 0:
		first = state.Mirrored[0]
	case len(state.Poses) > 0:
		first = state.Poses[0].Mirror(state.Field.Width)
	default:
		return
	}

	head, ok := pose.HeadCenter(&first)
	if !ok {
		return
	}

	if !HeadHit(head, state.Projectiles) {
		return
	}
	state.HeadHit = true
	if ctx.Config.Scoring {
		state.BankAndReset()
	}
}

// HeadHit reports whether any projectile overlaps the head disc
// The hazard disc uses the eye span as its radius, half the drawn head size
func HeadHit(head pose.Head, projectiles []*engine.Projectile) bool {
	r := head.HazardRadius()
	for _, p := range projectiles {
		if vmath.Distance(p.Pos, head.Center) < p.Radius+r {
			return true
		}
	}
	return false
}
