package engine

import (
	"github.com/lixenwraith/eyelaser/pose"
	"github.com/lixenwraith/eyelaser/vmath"
)

// Aim is the per-frame head and facing derived from one mirrored pose
type Aim struct {
	PoseIndex    int
	Head         pose.Head
	Direction    vmath.Vec2
	HasDirection bool
}

// Beam is one fired eye beam segment
type Beam struct {
	From, To vmath.Vec2
}

// Scoreboard is an immutable snapshot for readers outside the frame loop
type Scoreboard struct {
	Score       float64 `json:"score"`
	HighScore   float64 `json:"high_score"`
	Projectiles int     `json:"projectiles"`
	Frame       int64   `json:"frame"`
}

// GameState is owned by the frame loop; nothing here is safe for concurrent access
type GameState struct {
	// ===== SESSION STATE =====

	Score     float64
	HighScore float64

	Projectiles []*Projectile

	FrameNumber int64

	// ===== FRAME STATE =====
	// Reset by BeginFrame, filled by systems, read by renderers and audio

	Field Field

	// Poses is the camera-space snapshot scaled to Field; it may share the slot's storage and is never modified
	Poses []pose.Pose

	// Mirrored holds Poses reflected into screen space, index-aligned with Poses
	Mirrored []pose.Pose

	Aims      []Aim
	Beams     []Beam
	Destroyed []Projectile
	Spawned   int
	Culled    int

	HeadHit     bool
	PrevHeadHit bool
}

// NewGameState creates an empty session
func NewGameState() *GameState {
	return &GameState{
		Projectiles: make([]*Projectile, 0, 64),
	}
}

// BeginFrame clears per-frame scratch and installs this frame's inputs
func (s *GameState) BeginFrame(field Field, poses []pose.Pose) {
	s.Field = field
	s.Poses = poses
	s.Mirrored = s.Mirrored[:0]
	s.Aims = s.Aims[:0]
	s.Beams = s.Beams[:0]
	s.Destroyed = s.Destroyed[:0]
	s.Spawned = 0
	s.Culled = 0
	s.PrevHeadHit = s.HeadHit
	s.HeadHit = false
}

// AddProjectile inserts a live projectile
func (s *GameState) AddProjectile(p *Projectile) {
	s.Projectiles = append(s.Projectiles, p)
}

// AddScore credits a destroyed projectile
func (s *GameState) AddScore(points float64) {
	s.Score += points
}

// BankAndReset moves the run score into the high score if it is a record, then zeroes it
// Idempotent within a frame: a second call banks 0
func (s *GameState) BankAndReset() {
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
	s.Score = 0
}

// Sweep removes projectiles flagged Dead, preserving order, and returns how many were removed
func (s *GameState) Sweep() int {
	kept := s.Projectiles[:0]
	for _, p := range s.Projectiles {
		if !p.Dead {
			kept = append(kept, p)
		}
	}
	removed := len(s.Projectiles) - len(kept)
	for i := len(kept); i < len(s.Projectiles); i++ {
		s.Projectiles[i] = nil
	}
	s.Projectiles = kept
	return removed
}

// Scoreboard snapshots the published counters
func (s *GameState) Scoreboard() Scoreboard {
	return Scoreboard{
		Score:       s.Score,
		HighScore:   s.HighScore,
		Projectiles: len(s.Projectiles),
		Frame:       s.FrameNumber,
	}
}
