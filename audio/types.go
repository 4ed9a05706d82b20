// Package audio synthesizes the game's sound effects with beep
package audio

// SoundType represents different sound effects
type SoundType int

const (
	SoundLaser     SoundType = iota // Looping beam hum
	SoundExplosion                  // Asteroid destroyed
	SoundImpact                     // Asteroid hit the head
	soundTypeCount
)

// String returns the sound name for logs
func (s SoundType) String() string {
	switch s {
	case SoundLaser:
		return "laser"
	case SoundExplosion:
		return "explosion"
	case SoundImpact:
		return "impact"
	}
	return "unknown"
}
