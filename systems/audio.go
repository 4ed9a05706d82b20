package systems

import (
	"github.com/lixenwraith/eyelaser/audio"
	"github.com/lixenwraith/eyelaser/constants"
	"github.com/lixenwraith/eyelaser/engine"
)

// AudioSystem turns frame events into sound cues
type AudioSystem struct {
	laserOn bool
}

// NewAudioSystem creates a new audio system
func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

// Priority returns the system's priority
func (s *AudioSystem) Priority() int {
	return constants.PriorityAudio
}

// Update hums while any beam fires, bursts on destruction, buzzes on the first frame of a head hit
func (s *AudioSystem) Update(ctx *engine.GameContext) {
	if ctx.Audio == nil {
		return
	}
	state := ctx.State

	firing := len(state.Beams) > 0
	if firing != s.laserOn {
		ctx.Audio.SetLaser(firing)
		s.laserOn = firing
	}

	if len(state.Destroyed) > 0 {
		ctx.Audio.Play(audio.SoundExplosion)
	}

	if state.HeadHit && !state.PrevHeadHit {
		ctx.Audio.Play(audio.SoundImpact)
	}
}
