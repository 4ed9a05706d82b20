package feed

import (
	"bufio"
	"log"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/eyelaser/pose"
)

// Recorder samples the pose slot and appends every new snapshot as a batch line
// The output is readable by ReplaySource; coordinates are written in field units
type Recorder struct {
	path     string
	interval time.Duration
	slot     *pose.Slot

	mu      sync.Mutex
	file    *os.File
	w       *bufio.Writer
	last    uint64
	written int
	stop    chan struct{}
	done    chan struct{}
}

// NewRecorder creates a recorder writing to path
func NewRecorder(path string, interval time.Duration, slot *pose.Slot) *Recorder {
	return &Recorder{
		path:     path,
		interval: interval,
		slot:     slot,
	}
}

// Name implements service.Service
func (r *Recorder) Name() string {
	return "recorder"
}

// Dependencies implements service.Service
func (r *Recorder) Dependencies() []string {
	return nil
}

// Start creates the output file and begins sampling
func (r *Recorder) Start() error {
	file, err := os.Create(r.path)
	if err != nil {
		return errors.Wrap(err, "create recording")
	}

	r.mu.Lock()
	r.file = file
	r.w = bufio.NewWriter(file)
	r.last = r.slot.Version()
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	stop, done := r.stop, r.done
	r.mu.Unlock()

	go r.loop(stop, done)
	log.Printf("[feed] recording poses to %s", r.path)
	return nil
}

// Stop flushes and closes the recording
func (r *Recorder) Stop() error {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)
	<-done

	r.mu.Lock()
	defer r.mu.Unlock()
	flushErr := r.w.Flush()
	closeErr := r.file.Close()
	log.Printf("[feed] recorded %d batches", r.written)
	if flushErr != nil {
		return errors.Wrap(flushErr, "flush recording")
	}
	return errors.Wrap(closeErr, "close recording")
}

func (r *Recorder) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	interval := r.interval
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := r.Sample(); err != nil {
				log.Printf("[feed] recorder: %v", err)
			}
		}
	}
}

// Sample writes the slot contents if they changed since the last sample
func (r *Recorder) Sample() error {
	version := r.slot.Version()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.w == nil || version == r.last {
		return nil
	}
	r.last = version

	poses, width, height := r.slot.Frame()
	line, err := pose.EncodeBatch(poses, width, height)
	if err != nil {
		return err
	}
	if _, err := r.w.Write(append(line, '\n')); err != nil {
		return errors.Wrap(err, "write recording")
	}
	r.written++
	return nil
}
