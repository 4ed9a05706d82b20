package systems

import (
	"github.com/lixenwraith/eyelaser/constants"
	"github.com/lixenwraith/eyelaser/engine"
	"github.com/lixenwraith/eyelaser/vmath"
)

// BeamSystem fires one beam from each eye of every person with a known facing
type BeamSystem struct{}

// NewBeamSystem creates a new beam system
func NewBeamSystem() *BeamSystem {
	return &BeamSystem{}
}

// Priority returns the system's priority
func (s *BeamSystem) Priority() int {
	return constants.PriorityBeam
}

// Update fires left eye then right eye for each aim in pose order
// Hits leave the active list before the next beam is cast, so nothing is destroyed twice
func (s *BeamSystem) Update(ctx *engine.GameContext) {
	state := ctx.State
	length := ctx.Config.BeamLength

	for _, aim := range state.Aims {
		if !aim.HasDirection {
			continue
		}
		for _, eye := range [2]vmath.Vec2{aim.Head.LeftEye, aim.Head.RightEye} {
			end := eye.Add(aim.Direction.Scale(length))
			state.Beams = append(state.Beams, engine.Beam{From: eye, To: end})

			survivors, destroyed := CastBeam(eye, end, state.Projectiles)
			state.Projectiles = survivors
			for _, p := range destroyed {
				p.Dead = true
				state.Destroyed = append(state.Destroyed, *p)
				if ctx.Config.Scoring {
					state.AddScore(p.Value())
				}
			}
		}
	}
}

// CastBeam splits projectiles into those the segment from→to misses and those it hits
// A hit requires the segment to pass strictly closer than the projectile radius
// Survivor order is preserved; the input slice's backing array is not reused
func CastBeam(from, to vmath.Vec2, projectiles []*engine.Projectile) (survivors, destroyed []*engine.Projectile) {
	survivors = make([]*engine.Projectile, 0, len(projectiles))
	for _, p := range projectiles {
		if vmath.PointSegmentDistance(p.Pos, from, to) < p.Radius {
			destroyed = append(destroyed, p)
			continue
		}
		survivors = append(survivors, p)
	}
	return survivors, destroyed
}
