package pose

import (
	"github.com/lixenwraith/eyelaser/constants"
	"github.com/lixenwraith/eyelaser/vmath"
)

// Keypoint is one detected landmark position with its confidence in [0,1]
// Present is false when the detector did not report the landmark
type Keypoint struct {
	X, Y       float64
	Confidence float64
	Present    bool
}

// Pos returns the keypoint position
func (k Keypoint) Pos() vmath.Vec2 {
	return vmath.Vec2{X: k.X, Y: k.Y}
}

// Confident reports whether the keypoint exists and clears the confidence threshold
func (k Keypoint) Confident() bool {
	return k.Present && k.Confidence > constants.MinConfidence
}

// Pose is the full keypoint record of one detected person
// Pose is a value type: copies never share keypoint storage
type Pose struct {
	Keypoints [LandmarkCount]Keypoint
}

// Set records a landmark
func (p *Pose) Set(l Landmark, x, y, confidence float64) {
	if l >= LandmarkCount {
		return
	}
	p.Keypoints[l] = Keypoint{X: x, Y: y, Confidence: confidence, Present: true}
}

// Get returns the landmark if the detector reported it, regardless of confidence
func (p *Pose) Get(l Landmark) (Keypoint, bool) {
	if l >= LandmarkCount {
		return Keypoint{}, false
	}
	kp := p.Keypoints[l]
	return kp, kp.Present
}

// Point returns the landmark position only if it is present and confident
func (p *Pose) Point(l Landmark) (vmath.Vec2, bool) {
	kp, ok := p.Get(l)
	if !ok || !kp.Confident() {
		return vmath.Vec2{}, false
	}
	return kp.Pos(), true
}

// Count returns the number of reported landmarks
func (p *Pose) Count() int {
	n := 0
	for _, kp := range p.Keypoints {
		if kp.Present {
			n++
		}
	}
	return n
}

// Mirror reflects every keypoint about the vertical center of a field of the given width
// The receiver is not modified; always mirror the raw detector pose, never a mirrored one
func (p Pose) Mirror(fieldWidth float64) Pose {
	for i := range p.Keypoints {
		if p.Keypoints[i].Present {
			p.Keypoints[i].X = fieldWidth - p.Keypoints[i].X
		}
	}
	return p
}

// Scale multiplies all keypoint coordinates, used to map detector frames into the field
func (p Pose) Scale(sx, sy float64) Pose {
	for i := range p.Keypoints {
		if p.Keypoints[i].Present {
			p.Keypoints[i].X *= sx
			p.Keypoints[i].Y *= sy
		}
	}
	return p
}

// MirrorAll mirrors a detection batch into a new slice
func MirrorAll(poses []Pose, fieldWidth float64) []Pose {
	if len(poses) == 0 {
		return nil
	}
	out := make([]Pose, len(poses))
	for i := range poses {
		out[i] = poses[i].Mirror(fieldWidth)
	}
	return out
}
