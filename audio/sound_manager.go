package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/lixenwraith/eyelaser/config"
)

const (
	explosionDuration = 400 * time.Millisecond
	impactDuration    = 180 * time.Millisecond
	laserOvertoneFreq = 880.0
)

// initSpeaker opens the output device; replaced in tests
var initSpeaker = speaker.Init

// SoundManager manages all game audio
// Every method is safe to call before Initialize or after Cleanup; calls are then no-ops
type SoundManager struct {
	mu          sync.Mutex
	cfg         config.Audio
	sampleRate  beep.SampleRate
	laserCtrl   *beep.Ctrl
	mixer       *beep.Mixer
	master      *effects.Volume
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg config.Audio) *SoundManager {
	sm := &SoundManager{
		cfg:        cfg,
		sampleRate: beep.SampleRate(cfg.SampleRate),
		mixer:      &beep.Mixer{},
	}
	sm.master = newVolume(sm.mixer, cfg.MasterVolume)
	return sm
}

// Name implements service.Service
func (sm *SoundManager) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (sm *SoundManager) Dependencies() []string {
	return nil
}

// Start implements service.Service; a disabled config or a missing device starts silent
func (sm *SoundManager) Start() error {
	if !sm.cfg.Enabled {
		log.Printf("[audio] disabled by config")
		return nil
	}
	if err := sm.Initialize(); err != nil {
		log.Printf("[audio] init failed: %v (continuing without audio)", err)
	}
	return nil
}

// Stop implements service.Service
func (sm *SoundManager) Stop() error {
	sm.Cleanup()
	return nil
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := initSpeaker(sm.sampleRate, sm.sampleRate.N(time.Millisecond*100)); err != nil {
		return errors.Wrap(err, "init speaker")
	}

	speaker.Play(sm.master)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the audio system
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if sm.laserCtrl != nil {
		speaker.Lock()
		sm.laserCtrl.Paused = true
		speaker.Unlock()
		sm.laserCtrl = nil
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// Play triggers a one-shot effect
func (sm *SoundManager) Play(sound SoundType) {
	switch sound {
	case SoundExplosion:
		sm.PlayExplosion()
	case SoundImpact:
		sm.PlayImpact()
	case SoundLaser:
		sm.SetLaser(true)
	}
}

// SetLaser starts or pauses the looping beam hum
func (sm *SoundManager) SetLaser(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if sm.laserCtrl == nil {
		if !on {
			return
		}
		streamer := beep.Streamer(NewHumGenerator(sm.sampleRate))
		if overtone, err := generators.SineTone(sm.sampleRate, laserOvertoneFreq); err == nil {
			streamer = beep.Mix(streamer, newVolume(overtone, 0.04))
		}
		sm.laserCtrl = &beep.Ctrl{Streamer: streamer, Paused: false}
		speaker.Lock()
		sm.mixer.Add(sm.laserCtrl)
		speaker.Unlock()
		return
	}

	speaker.Lock()
	sm.laserCtrl.Paused = !on
	speaker.Unlock()
}

// PlayExplosion plays the asteroid destruction burst
func (sm *SoundManager) PlayExplosion() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer := beep.Take(sm.sampleRate.N(explosionDuration), NewExplosionGenerator(sm.sampleRate))
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// PlayImpact plays the head-hit buzz
func (sm *SoundManager) PlayImpact() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer := beep.Take(sm.sampleRate.N(impactDuration), NewBuzzGenerator(sm.sampleRate, 110))
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// Initialized reports whether the speaker is running
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so zero volume is handled as silence
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
