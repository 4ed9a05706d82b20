package feed

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/lixenwraith/eyelaser/constants"
	"github.com/lixenwraith/eyelaser/engine"
	"github.com/lixenwraith/eyelaser/pose"
	"github.com/lixenwraith/eyelaser/vmath"
)

const puppetConfidence = 0.95

// Puppet is a synthetic person steered from the keyboard
// Its state lives in screen space; published poses are mirrored back into camera space
type Puppet struct {
	mu       sync.Mutex
	slot     *pose.Slot
	field    engine.FieldFunc
	interval time.Duration

	center  vmath.Vec2
	angle   float64 // facing, radians; -π/2 faces up the screen
	visible bool
	placed  bool

	stop chan struct{}
	done chan struct{}
}

// NewPuppet creates a visible puppet facing up, centered on the first field it sees
func NewPuppet(slot *pose.Slot, field engine.FieldFunc, interval time.Duration) *Puppet {
	return &Puppet{
		slot:     slot,
		field:    field,
		interval: interval,
		angle:    -math.Pi / 2,
		visible:  true,
	}
}

// Name implements service.Service
func (p *Puppet) Name() string {
	return "puppet"
}

// Dependencies implements service.Service
func (p *Puppet) Dependencies() []string {
	return nil
}

// Start begins periodic publishing
func (p *Puppet) Start() error {
	p.mu.Lock()
	if p.stop != nil {
		p.mu.Unlock()
		return nil
	}
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	stop, done := p.stop, p.done
	p.mu.Unlock()

	p.Publish()
	go p.loop(stop, done)
	log.Printf("[feed] puppet started, publishing every %v", p.interval)
	return nil
}

// Stop halts publishing and clears the slot, as if detection stopped
func (p *Puppet) Stop() error {
	p.mu.Lock()
	stop, done := p.stop, p.done
	p.stop, p.done = nil, nil
	p.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	p.slot.Clear()
	return nil
}

func (p *Puppet) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	if p.interval <= 0 {
		<-stop
		return
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.Publish()
		}
	}
}

// Move shifts the head in screen space and publishes
func (p *Puppet) Move(dx, dy float64) {
	p.mu.Lock()
	p.placeLocked(p.field())
	p.center = p.center.Add(vmath.V(dx, dy))
	p.mu.Unlock()
	p.Publish()
}

// Turn rotates the facing by delta radians and publishes
func (p *Puppet) Turn(delta float64) {
	p.mu.Lock()
	p.angle = math.Remainder(p.angle+delta, 2*math.Pi)
	p.mu.Unlock()
	p.Publish()
}

// Toggle hides or shows the puppet, simulating detection loss
func (p *Puppet) Toggle() {
	p.mu.Lock()
	p.visible = !p.visible
	p.mu.Unlock()
	p.Publish()
}

// Visible reports whether the puppet is currently detected
func (p *Puppet) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// Head returns the screen-space head center and facing
func (p *Puppet) Head() (center vmath.Vec2, facing vmath.Vec2) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.placeLocked(p.field())
	return p.center, vmath.FromAngle(p.angle)
}

// Publish stores the current pose, or an empty list while hidden
func (p *Puppet) Publish() {
	field := p.field()

	p.mu.Lock()
	if !p.visible {
		p.mu.Unlock()
		p.slot.Store(nil)
		return
	}
	p.placeLocked(field)
	p.center = clampToField(p.center, field)
	center, angle := p.center, p.angle
	p.mu.Unlock()

	screen := BuildPose(center, angle, constants.PuppetEyeSpan)
	p.slot.Store([]pose.Pose{screen.Mirror(field.Width)})
}

// placeLocked centers the puppet the first time a usable field is seen
func (p *Puppet) placeLocked(field engine.Field) {
	if p.placed || field.Empty() {
		return
	}
	p.center = field.Center()
	p.placed = true
}

func clampToField(v vmath.Vec2, field engine.Field) vmath.Vec2 {
	if field.Empty() {
		return v
	}
	return vmath.V(
		math.Max(0, math.Min(field.Width, v.X)),
		math.Max(0, math.Min(field.Height, v.Y)),
	)
}

// BuildPose lays out eyes, ears, nose and shoulders around center, facing angle
// The ear and shoulder midpoints sit behind the nose so the facing estimate recovers angle exactly
func BuildPose(center vmath.Vec2, angle, eyeSpan float64) pose.Pose {
	facing := vmath.FromAngle(angle)
	side := vmath.V(-facing.Y, facing.X)

	at := func(forward, across float64) vmath.Vec2 {
		return center.Add(facing.Scale(forward * eyeSpan)).Add(side.Scale(across * eyeSpan))
	}

	var p pose.Pose
	set := func(l pose.Landmark, v vmath.Vec2) {
		p.Set(l, v.X, v.Y, puppetConfidence)
	}
	set(pose.Nose, at(0.5, 0))
	set(pose.LeftEye, at(0, -0.5))
	set(pose.RightEye, at(0, 0.5))
	set(pose.LeftEar, at(-0.3, -1))
	set(pose.RightEar, at(-0.3, 1))
	set(pose.LeftShoulder, at(-2, -2))
	set(pose.RightShoulder, at(-2, 2))
	return p
}
