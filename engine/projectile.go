package engine

import "github.com/lixenwraith/eyelaser/vmath"

// Projectile is an asteroid: a circle moving at constant velocity
// Radius is fixed at spawn and is both its size and its score value
type Projectile struct {
	Pos    vmath.Vec2
	Vel    vmath.Vec2
	Radius float64
	Dead   bool
}

// Advance moves the projectile by one tick of velocity, unclamped
func (p *Projectile) Advance() {
	p.Pos = p.Pos.Add(p.Vel)
}

// Value is the score awarded for destroying the projectile
func (p *Projectile) Value() float64 {
	return p.Radius
}
