package engine

import (
	"math/rand/v2"
	"sort"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/eyelaser/audio"
	"github.com/lixenwraith/eyelaser/config"
	"github.com/lixenwraith/eyelaser/pose"
)

// System is one stage of the per-frame pipeline
type System interface {
	Update(ctx *GameContext)
	Priority() int // Lower values run first
}

// AudioPlayer is the sound surface systems may trigger; SoundManager implements it
type AudioPlayer interface {
	Play(sound audio.SoundType)
	SetLaser(on bool)
}

// GameContext owns the game state and drives one tick of all systems
type GameContext struct {
	State  *GameState
	Config config.Game

	// Field is polled once at the start of every tick
	Field FieldFunc

	// Poses is written by the pose source and read once per tick
	Poses *pose.Slot

	Rand *rand.Rand

	// Audio may be nil when sound is unavailable
	Audio AudioPlayer

	systems    []System
	scoreboard atomic.Pointer[Scoreboard]
}

// NewGameContext creates a context with a fresh session
// A zero cfg.Seed seeds the generator from the clock
func NewGameContext(cfg config.Game, field FieldFunc, poses *pose.Slot) *GameContext {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	ctx := &GameContext{
		State:  NewGameState(),
		Config: cfg,
		Field:  field,
		Poses:  poses,
		Rand:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	board := ctx.State.Scoreboard()
	ctx.scoreboard.Store(&board)
	return ctx
}

// AddSystem registers a system, keeping priority order stable for equal priorities
func (c *GameContext) AddSystem(s System) {
	c.systems = append(c.systems, s)
	sort.SliceStable(c.systems, func(i, j int) bool {
		return c.systems[i].Priority() < c.systems[j].Priority()
	})
}

// Systems returns the registered systems in run order
func (c *GameContext) Systems() []System {
	out := make([]System, len(c.systems))
	copy(out, c.systems)
	return out
}

// Tick runs one frame: snapshot inputs, run every system, publish the scoreboard
// Poses are scaled from their detector frame to the field read this tick
// A degenerate field pauses the simulation but still advances the frame counter
func (c *GameContext) Tick() {
	field := c.Field()

	var poses []pose.Pose
	if c.Poses != nil {
		poses = c.Poses.LoadScaled(field.Width, field.Height)
	}

	c.State.BeginFrame(field, poses)

	if !field.Empty() {
		for _, s := range c.systems {
			s.Update(c)
		}
	}

	c.State.FrameNumber++
	board := c.State.Scoreboard()
	c.scoreboard.Store(&board)
}

// Scoreboard returns the snapshot published by the last tick; safe from any goroutine
func (c *GameContext) Scoreboard() Scoreboard {
	return *c.scoreboard.Load()
}
