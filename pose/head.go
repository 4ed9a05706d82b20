package pose

import "github.com/lixenwraith/eyelaser/vmath"

// Head is the eye-derived head region of a pose
type Head struct {
	Center   vmath.Vec2
	LeftEye  vmath.Vec2
	RightEye vmath.Vec2
	// EyeSpan is the Euclidean eye separation
	EyeSpan float64
}

// DrawDiameter is the on-screen head size, twice the eye separation
func (h Head) DrawDiameter() float64 {
	return h.EyeSpan * 2
}

// HazardRadius is the collision radius against asteroids, the raw eye separation
// Deliberately not DrawDiameter()/2: the two conventions differ and gameplay depends on this one
func (h Head) HazardRadius() float64 {
	return h.EyeSpan
}

// HeadCenter locates the head from both eyes
// Returns false if either eye is missing or at or below the confidence threshold
func HeadCenter(p *Pose) (Head, bool) {
	left, ok := p.Point(LeftEye)
	if !ok {
		return Head{}, false
	}
	right, ok := p.Point(RightEye)
	if !ok {
		return Head{}, false
	}
	return Head{
		Center:   vmath.Midpoint(left, right),
		LeftEye:  left,
		RightEye: right,
		EyeSpan:  vmath.Distance(left, right),
	}, true
}

// directionTiers lists the landmark pairs whose midpoint anchors the facing estimate, most stable first
var directionTiers = [...][2]Landmark{
	{LeftEar, RightEar},
	{LeftShoulder, RightShoulder},
}

// EstimateDirection returns the unit facing vector from the pair midpoint toward the nose
// Ears are preferred; shoulders cover profile views where one ear is hidden
// A tier whose midpoint coincides with the nose is skipped
func EstimateDirection(p *Pose) (vmath.Vec2, bool) {
	nose, ok := p.Point(Nose)
	if !ok {
		return vmath.Vec2{}, false
	}

	for _, tier := range directionTiers {
		a, okA := p.Point(tier[0])
		b, okB := p.Point(tier[1])
		if !okA || !okB {
			continue
		}
		if dir, ok := vmath.Normalize(nose.Sub(vmath.Midpoint(a, b))); ok {
			return dir, true
		}
	}
	return vmath.Vec2{}, false
}
