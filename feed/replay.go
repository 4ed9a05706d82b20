package feed

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/eyelaser/pose"
)

// maxLineSize bounds one JSON batch line
const maxLineSize = 1 << 20

// ReplaySource plays back recorded JSON-lines batches at a fixed cadence
type ReplaySource struct {
	path     string
	interval time.Duration
	loop     bool
	slot     *pose.Slot

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// NewReplaySource creates a replay of path publishing one batch per interval
func NewReplaySource(path string, interval time.Duration, loop bool, slot *pose.Slot) *ReplaySource {
	return &ReplaySource{
		path:     path,
		interval: interval,
		loop:     loop,
		slot:     slot,
	}
}

// Name implements service.Service
func (r *ReplaySource) Name() string {
	return "replay"
}

// Dependencies implements service.Service
func (r *ReplaySource) Dependencies() []string {
	return nil
}

// Start checks the file is readable and begins playback in the background
func (r *ReplaySource) Start() error {
	f, err := os.Open(r.path)
	if err != nil {
		return errors.Wrap(err, "open replay")
	}
	f.Close()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	r.err = nil

	go func(done chan struct{}) {
		defer close(done)
		err := r.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[feed] replay %s: %v", r.path, err)
		}
		r.mu.Lock()
		r.err = err
		r.mu.Unlock()
	}(r.done)

	log.Printf("[feed] replaying %s every %v (loop=%v)", r.path, r.interval, r.loop)
	return nil
}

// Stop cancels playback, waits for it to exit and clears the slot
func (r *ReplaySource) Stop() error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	r.slot.Clear()
	return nil
}

// Err returns the error that ended the last background run, if any
func (r *ReplaySource) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Run plays the file until it ends, or forever when looping, or until ctx is done
func (r *ReplaySource) Run(ctx context.Context) error {
	var ticker *time.Ticker
	if r.interval > 0 {
		ticker = time.NewTicker(r.interval)
		defer ticker.Stop()
	}

	wait := func() error {
		if ticker == nil {
			return ctx.Err()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			return nil
		}
	}

	return r.play(ctx, wait)
}

// play runs passes over the file; a looped pass waits one interval before its first batch
func (r *ReplaySource) play(ctx context.Context, wait func() error) error {
	for pass := 0; ; pass++ {
		if pass > 0 {
			if err := wait(); err != nil {
				return err
			}
		}

		published, err := r.pass(ctx, wait)
		if err != nil {
			return err
		}
		if !r.loop {
			return nil
		}
		if published == 0 {
			return errors.Errorf("replay %s has no playable batches", r.path)
		}
	}
}

// pass plays the file once and returns how many batches were published
func (r *ReplaySource) pass(ctx context.Context, wait func() error) (int, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return 0, errors.Wrap(err, "open replay")
	}
	defer f.Close()

	return Play(ctx, f, r.slot, wait)
}

// Play publishes each batch line of src, calling wait between batches
// Blank lines are skipped; malformed lines are logged and skipped without touching the slot
func Play(ctx context.Context, src io.Reader, slot *pose.Slot, wait func() error) (int, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	published := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return published, err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		batch, err := pose.DecodeBatch(line)
		if err != nil {
			log.Printf("[feed] line %d: %v", lineNo, err)
			continue
		}

		if published > 0 {
			if err := wait(); err != nil {
				return published, err
			}
		}

		batch.StoreIn(slot)
		published++
	}

	if err := scanner.Err(); err != nil {
		return published, errors.Wrap(err, "read replay")
	}
	return published, nil
}
