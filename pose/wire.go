package pose

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// WireKeypoint is a keypoint as emitted by browser-side detectors (ml5 bodyPose, MoveNet)
type WireKeypoint struct {
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// WirePose is one detected person
type WirePose struct {
	Keypoints []WireKeypoint `json:"keypoints"`
}

// Batch is one full detection result; each batch replaces the previous one
// Width and Height describe the detector frame; zero means coordinates are already field units
type Batch struct {
	Width  float64    `json:"width,omitempty"`
	Height float64    `json:"height,omitempty"`
	Poses  []WirePose `json:"poses"`
}

// DecodeBatch parses a JSON detection batch
func DecodeBatch(data []byte) (Batch, error) {
	var b Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return Batch{}, errors.Wrap(err, "decode pose batch")
	}
	if b.Width < 0 || b.Height < 0 {
		return Batch{}, errors.Errorf("invalid frame size %gx%g", b.Width, b.Height)
	}
	return b, nil
}

// EncodeBatch renders poses back to the wire format, used by recorders and tests
func EncodeBatch(poses []Pose, width, height float64) ([]byte, error) {
	b := Batch{Width: width, Height: height, Poses: make([]WirePose, 0, len(poses))}
	for i := range poses {
		wp := WirePose{}
		for l, kp := range poses[i].Keypoints {
			if !kp.Present {
				continue
			}
			wp.Keypoints = append(wp.Keypoints, WireKeypoint{
				Name:       Landmark(l).String(),
				X:          kp.X,
				Y:          kp.Y,
				Confidence: kp.Confidence,
			})
		}
		b.Poses = append(b.Poses, wp)
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, errors.Wrap(err, "encode pose batch")
	}
	return data, nil
}

// Raw converts the batch into poses in detector coordinates
// Unknown keypoint names are dropped, a repeated name keeps the last value
func (b Batch) Raw() []Pose {
	if len(b.Poses) == 0 {
		return nil
	}

	out := make([]Pose, 0, len(b.Poses))
	for _, wp := range b.Poses {
		var p Pose
		for _, wk := range wp.Keypoints {
			l, ok := ParseLandmark(wk.Name)
			if !ok {
				continue
			}
			p.Set(l, wk.X, wk.Y, wk.Confidence)
		}
		out = append(out, p)
	}
	return out
}

// ToPoses converts the batch into field-space poses for a field of the given size
func (b Batch) ToPoses(fieldWidth, fieldHeight float64) []Pose {
	out := b.Raw()
	if b.Width <= 0 || b.Height <= 0 {
		return out
	}

	sx, sy := fieldWidth/b.Width, fieldHeight/b.Height
	for i := range out {
		out[i] = out[i].Scale(sx, sy)
	}
	return out
}

// StoreIn publishes the batch to slot unscaled, keeping its detector frame for per-tick scaling
func (b Batch) StoreIn(slot *Slot) {
	slot.StoreFrame(b.Raw(), b.Width, b.Height)
}
