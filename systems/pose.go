package systems

import (
	"github.com/lixenwraith/eyelaser/constants"
	"github.com/lixenwraith/eyelaser/engine"
	"github.com/lixenwraith/eyelaser/pose"
)

// PoseSystem mirrors this frame's detections into screen space and derives head and facing per person
type PoseSystem struct{}

// NewPoseSystem creates a new pose system
func NewPoseSystem() *PoseSystem {
	return &PoseSystem{}
}

// Priority returns the system's priority
func (s *PoseSystem) Priority() int {
	return constants.PriorityPose
}

// Update always mirrors from the raw snapshot; poses without a confident eye pair produce no aim
func (s *PoseSystem) Update(ctx *engine.GameContext) {
	state := ctx.State
	state.Mirrored = append(state.Mirrored[:0], pose.MirrorAll(state.Poses, state.Field.Width)...)

	for i := range state.Mirrored {
		head, ok := pose.HeadCenter(&state.Mirrored[i])
		if !ok {
			continue
		}
		dir, hasDir := pose.EstimateDirection(&state.Mirrored[i])
		state.Aims = append(state.Aims, engine.Aim{
			PoseIndex:    i,
			Head:         head,
			Direction:    dir,
			HasDirection: hasDir,
		})
	}
}
