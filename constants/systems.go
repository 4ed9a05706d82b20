package constants

// System priorities, lower runs first
const (
	PrioritySpawn    = 10
	PriorityMovement = 20
	PriorityPose     = 30
	PriorityBeam     = 40
	PriorityHazard   = 50
	PriorityCleanup  = 60
	PriorityAudio    = 70
)

// Puppet controls
const (
	// PuppetStep is the head displacement per arrow key press in field units
	PuppetStep = 12.0

	// PuppetTurnStep is the facing rotation per turn key press in radians
	PuppetTurnStep = 0.12

	// PuppetEyeSpan is the synthetic eye separation in field units
	PuppetEyeSpan = 28.0
)
