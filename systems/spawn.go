package systems

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/eyelaser/config"
	"github.com/lixenwraith/eyelaser/constants"
	"github.com/lixenwraith/eyelaser/engine"
	"github.com/lixenwraith/eyelaser/vmath"
)

// Field edges a projectile can enter from
const (
	EdgeTop = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
	edgeCount
)

// SpawnSystem rolls one Bernoulli trial per tick and spawns at most one asteroid
// Per-tick probability, not a rate: inter-arrival gaps are geometric in ticks
type SpawnSystem struct{}

// NewSpawnSystem creates a new spawn system
func NewSpawnSystem() *SpawnSystem {
	return &SpawnSystem{}
}

// Priority returns the system's priority
func (s *SpawnSystem) Priority() int {
	return constants.PrioritySpawn
}

// Update runs the spawn trial against the current field
func (s *SpawnSystem) Update(ctx *engine.GameContext) {
	if ctx.Rand.Float64() >= ctx.Config.SpawnProbability {
		return
	}
	ctx.State.AddProjectile(SpawnProjectile(ctx.Rand, ctx.State.Field, ctx.Config))
	ctx.State.Spawned++
}

// SpawnProjectile places an asteroid just outside a uniformly chosen edge, aimed at the field center
func SpawnProjectile(rng *rand.Rand, field engine.Field, cfg config.Game) *engine.Projectile {
	return SpawnAtEdge(rng, rng.IntN(edgeCount), field, cfg)
}

// SpawnAtEdge is SpawnProjectile with the edge fixed
func SpawnAtEdge(rng *rand.Rand, edge int, field engine.Field, cfg config.Game) *engine.Projectile {
	var pos vmath.Vec2
	switch edge {
	case EdgeTop:
		pos = vmath.V(rng.Float64()*field.Width, -cfg.SpawnOffset)
	case EdgeRight:
		pos = vmath.V(field.Width+cfg.SpawnOffset, rng.Float64()*field.Height)
	case EdgeBottom:
		pos = vmath.V(rng.Float64()*field.Width, field.Height+cfg.SpawnOffset)
	default:
		pos = vmath.V(-cfg.SpawnOffset, rng.Float64()*field.Height)
	}

	center := field.Center()
	angle := math.Atan2(center.Y-pos.Y, center.X-pos.X)
	speed := uniform(rng, cfg.SpeedMin, cfg.SpeedMax)

	return &engine.Projectile{
		Pos:    pos,
		Vel:    vmath.FromAngle(angle).Scale(speed),
		Radius: uniform(rng, cfg.DiameterMin, cfg.DiameterMax) / 2,
	}
}

// uniform samples [lo, hi)
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
