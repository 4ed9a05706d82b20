// Package service manages the lifecycle of the game's background subsystems:
// audio output, pose sources and the network endpoint
package service

// Service defines the lifecycle interface for subsystems outside the frame loop
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies lists services that must start before this one
	Dependencies() []string

	// Start begins service operation; it must not block
	Start() error

	// Stop halts the service and releases its resources
	Stop() error
}
