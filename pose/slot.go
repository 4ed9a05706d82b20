package pose

import "sync/atomic"

// snapshot is one delivery together with the detector frame it was captured in
type snapshot struct {
	poses         []Pose
	width, height float64
}

// Slot is a single-slot, last-write-wins holder for the newest detection batch
// Producers Store from any goroutine; the frame loop Loads without blocking
type Slot struct {
	latest atomic.Pointer[snapshot]
	stores atomic.Uint64
}

// NewSlot creates an empty slot
func NewSlot() *Slot {
	return &Slot{}
}

// Store replaces the snapshot with a copy of poses already in field units
func (s *Slot) Store(poses []Pose) {
	s.StoreFrame(poses, 0, 0)
}

// StoreFrame replaces the snapshot with a copy of poses in detector coordinates
// A positive width and height mark the detector frame; LoadScaled maps it onto the field at read time
func (s *Slot) StoreFrame(poses []Pose, width, height float64) {
	snap := &snapshot{poses: make([]Pose, len(poses))}
	copy(snap.poses, poses)
	if width > 0 && height > 0 {
		snap.width, snap.height = width, height
	}
	s.latest.Store(snap)
	s.stores.Add(1)
}

// Load returns the newest snapshot as delivered, nil when nothing has been delivered or after Clear
// The returned slice is shared and must not be modified
func (s *Slot) Load() []Pose {
	poses, _, _ := s.Frame()
	return poses
}

// Frame returns the newest snapshot with its detector frame size, zero when already in field units
func (s *Slot) Frame() (poses []Pose, width, height float64) {
	snap := s.latest.Load()
	if snap == nil {
		return nil, 0, 0
	}
	return snap.poses, snap.width, snap.height
}

// LoadScaled returns the newest snapshot in the units of a field of the given size
// Scaling happens per read, so a field resize applies to a snapshot that is already held
// Unscaled snapshots are returned shared and must not be modified
func (s *Slot) LoadScaled(fieldWidth, fieldHeight float64) []Pose {
	poses, w, h := s.Frame()
	if w == 0 || len(poses) == 0 {
		return poses
	}

	sx, sy := fieldWidth/w, fieldHeight/h
	out := make([]Pose, len(poses))
	for i := range poses {
		out[i] = poses[i].Scale(sx, sy)
	}
	return out
}

// Clear drops the snapshot, used when detection stops
func (s *Slot) Clear() {
	s.latest.Store(nil)
	s.stores.Add(1)
}

// Version counts Store and Clear calls
func (s *Slot) Version() uint64 {
	return s.stores.Load()
}
