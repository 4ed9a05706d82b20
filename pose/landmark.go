// Package pose holds the detected body model consumed by the game: keypoints
// keyed by a closed landmark set, mirroring into screen space, head and
// facing estimation, wire decoding and the cross-goroutine snapshot slot.
package pose

// Landmark identifies one anatomical keypoint, MoveNet/COCO ordering
type Landmark uint8

const (
	Nose Landmark = iota
	LeftEye
	RightEye
	LeftEar
	RightEar
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
	LandmarkCount
)

var landmarkNames = [LandmarkCount]string{
	Nose:          "nose",
	LeftEye:       "left_eye",
	RightEye:      "right_eye",
	LeftEar:       "left_ear",
	RightEar:      "right_ear",
	LeftShoulder:  "left_shoulder",
	RightShoulder: "right_shoulder",
	LeftElbow:     "left_elbow",
	RightElbow:    "right_elbow",
	LeftWrist:     "left_wrist",
	RightWrist:    "right_wrist",
	LeftHip:       "left_hip",
	RightHip:      "right_hip",
	LeftKnee:      "left_knee",
	RightKnee:     "right_knee",
	LeftAnkle:     "left_ankle",
	RightAnkle:    "right_ankle",
}

var landmarkByName = func() map[string]Landmark {
	m := make(map[string]Landmark, LandmarkCount)
	for i, name := range landmarkNames {
		m[name] = Landmark(i)
	}
	return m
}()

// String returns the detector name of the landmark
func (l Landmark) String() string {
	if l >= LandmarkCount {
		return "unknown"
	}
	return landmarkNames[l]
}

// ParseLandmark maps a detector keypoint name to its Landmark
func ParseLandmark(name string) (Landmark, bool) {
	l, ok := landmarkByName[name]
	return l, ok
}
