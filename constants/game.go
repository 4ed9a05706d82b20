package constants

import "time"

// Game Loop Timing Constants
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	// Projectile velocities are per tick, so this also sets game speed
	FrameUpdateInterval = 16 * time.Millisecond

	// DetectionInterval is the default cadence of synthetic and replayed pose sources
	DetectionInterval = 33 * time.Millisecond
)

// Asteroid Spawning
const (
	// SpawnProbability is the Bernoulli chance of one spawn per tick
	SpawnProbability = 0.02

	// AsteroidSpeedMin is the slowest spawn speed in field units per tick
	AsteroidSpeedMin = 1.0

	// AsteroidSpeedMax is the fastest spawn speed in field units per tick
	AsteroidSpeedMax = 3.0

	// AsteroidDiameterMin is the smallest sampled diameter; radius is half
	AsteroidDiameterMin = 25.0

	// AsteroidDiameterMax is the largest sampled diameter; radius is half
	AsteroidDiameterMax = 60.0

	// SpawnOffset is how far outside the chosen edge a new asteroid is placed
	SpawnOffset = 20.0

	// CullMargin is how far outside the field an asteroid may drift before removal
	CullMargin = 100.0
)

// Beam and Pose
const (
	// BeamLength is the length of each eye beam segment
	BeamLength = 1000.0

	// MinConfidence is the exclusive keypoint confidence threshold
	MinConfidence = 0.5
)

// Terminal Field Mapping
const (
	// CellWidth is the field units covered by one terminal column
	CellWidth = 8.0

	// CellHeight is the field units covered by one terminal row
	CellHeight = 16.0
)
