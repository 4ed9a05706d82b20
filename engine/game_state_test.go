package engine

import (
	"sync"
	"testing"

	"github.com/lixenwraith/eyelaser/config"
	"github.com/lixenwraith/eyelaser/pose"
	"github.com/lixenwraith/eyelaser/vmath"
)

// TestBankAndReset verifies the high score takes the pre-reset score
func TestBankAndReset(t *testing.T) {
	tests := []struct {
		score, high float64
		wantHigh    float64
	}{
		{50, 30, 50},
		{10, 30, 30},
		{0, 0, 0},
	}

	for _, tt := range tests {
		s := NewGameState()
		s.Score, s.HighScore = tt.score, tt.high

		s.BankAndReset()

		if s.HighScore != tt.wantHigh {
			t.Errorf("score=%v high=%v: HighScore = %v, want %v", tt.score, tt.high, s.HighScore, tt.wantHigh)
		}
		if s.Score != 0 {
			t.Errorf("score=%v high=%v: Score = %v, want 0", tt.score, tt.high, s.Score)
		}

		// A repeated bank in the same frame must not disturb the record
		s.BankAndReset()
		if s.HighScore != tt.wantHigh || s.Score != 0 {
			t.Errorf("Second bank changed state: high=%v score=%v", s.HighScore, s.Score)
		}
	}
}

func TestSweep_PreservesOrder(t *testing.T) {
	s := NewGameState()
	for i := 0; i < 5; i++ {
		s.AddProjectile(&Projectile{Radius: float64(i), Dead: i%2 == 1})
	}

	if removed := s.Sweep(); removed != 2 {
		t.Errorf("Sweep removed %d, want 2", removed)
	}
	if len(s.Projectiles) != 3 {
		t.Fatalf("Expected 3 survivors, got %d", len(s.Projectiles))
	}
	for i, want := range []float64{0, 2, 4} {
		if s.Projectiles[i].Radius != want {
			t.Errorf("Survivor %d radius = %v, want %v", i, s.Projectiles[i].Radius, want)
		}
	}
}

func TestBeginFrame_ResetsScratch(t *testing.T) {
	s := NewGameState()
	s.HeadHit = true
	s.Beams = append(s.Beams, Beam{})
	s.Destroyed = append(s.Destroyed, Projectile{})
	s.Aims = append(s.Aims, Aim{})
	s.Spawned = 1
	s.Score = 7

	s.BeginFrame(Field{Width: 10, Height: 10}, nil)

	if !s.PrevHeadHit || s.HeadHit {
		t.Error("Expected head hit to roll into PrevHeadHit")
	}
	if len(s.Beams) != 0 || len(s.Destroyed) != 0 || len(s.Aims) != 0 || s.Spawned != 0 {
		t.Error("Expected frame scratch to be cleared")
	}
	if s.Score != 7 {
		t.Error("Session state must survive BeginFrame")
	}
}

func TestProjectileAdvance(t *testing.T) {
	p := &Projectile{Pos: vmath.V(10, 10), Vel: vmath.V(-2, 1.5), Radius: 12}
	p.Advance()
	p.Advance()
	if p.Pos != vmath.V(6, 13) {
		t.Errorf("Pos = %v, want (6,13)", p.Pos)
	}
	if p.Value() != 12 {
		t.Errorf("Value = %v, want radius 12", p.Value())
	}
}

type recordingSystem struct {
	name     string
	priority int
	log      *[]string
}

func (r *recordingSystem) Update(ctx *GameContext) { *r.log = append(*r.log, r.name) }
func (r *recordingSystem) Priority() int           { return r.priority }

func TestTick_RunsSystemsInPriorityOrder(t *testing.T) {
	var order []string
	ctx := NewGameContext(config.Default().Game, StaticField(640, 480), pose.NewSlot())
	ctx.AddSystem(&recordingSystem{"cull", 60, &order})
	ctx.AddSystem(&recordingSystem{"spawn", 10, &order})
	ctx.AddSystem(&recordingSystem{"beam-a", 40, &order})
	ctx.AddSystem(&recordingSystem{"beam-b", 40, &order})

	ctx.Tick()

	want := []string{"spawn", "beam-a", "beam-b", "cull"}
	if len(order) != len(want) {
		t.Fatalf("Ran %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Ran %v, want %v", order, want)
		}
	}
	if ctx.State.FrameNumber != 1 {
		t.Errorf("FrameNumber = %d, want 1", ctx.State.FrameNumber)
	}
}

func TestTick_SnapshotsSlotAndField(t *testing.T) {
	slot := pose.NewSlot()
	width := 640.0
	ctx := NewGameContext(config.Default().Game, func() Field { return Field{Width: width, Height: 480} }, slot)

	ctx.Tick()
	if ctx.State.Poses != nil {
		t.Error("Expected no poses before any delivery")
	}

	slot.Store([]pose.Pose{{}})
	width = 800
	ctx.Tick()

	if len(ctx.State.Poses) != 1 {
		t.Errorf("Expected 1 pose, got %d", len(ctx.State.Poses))
	}
	if ctx.State.Field.Width != 800 {
		t.Errorf("Expected resized field width 800, got %v", ctx.State.Field.Width)
	}
}

// TestTick_RescalesHeldPosesOnResize verifies a stale detector batch follows a field resize
func TestTick_RescalesHeldPosesOnResize(t *testing.T) {
	slot := pose.NewSlot()
	width, height := 640.0, 480.0
	ctx := NewGameContext(config.Default().Game, func() Field { return Field{Width: width, Height: height} }, slot)

	var p pose.Pose
	p.Set(pose.Nose, 160, 120, 0.9)
	slot.StoreFrame([]pose.Pose{p}, 320, 240)

	ctx.Tick()
	if nose := ctx.State.Poses[0].Keypoints[pose.Nose]; nose.X != 320 || nose.Y != 240 {
		t.Errorf("Nose (%v,%v), want (320,240)", nose.X, nose.Y)
	}

	// No new delivery: the held batch must be rescaled, not reused at the old size
	width, height = 1280, 960
	ctx.Tick()
	if nose := ctx.State.Poses[0].Keypoints[pose.Nose]; nose.X != 640 || nose.Y != 480 {
		t.Errorf("After resize nose (%v,%v), want (640,480)", nose.X, nose.Y)
	}
}

func TestTick_EmptyFieldSkipsSystems(t *testing.T) {
	var order []string
	ctx := NewGameContext(config.Default().Game, StaticField(0, 0), nil)
	ctx.AddSystem(&recordingSystem{"spawn", 10, &order})

	ctx.Tick()

	if len(order) != 0 {
		t.Errorf("Expected no systems on empty field, ran %v", order)
	}
	if ctx.Scoreboard().Frame != 1 {
		t.Errorf("Expected frame counter to advance")
	}
}

func TestScoreboard_ConcurrentReaders(t *testing.T) {
	ctx := NewGameContext(config.Default().Game, StaticField(640, 480), pose.NewSlot())

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					_ = ctx.Scoreboard()
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		ctx.State.AddScore(1)
		ctx.Tick()
	}
	close(stop)
	wg.Wait()

	board := ctx.Scoreboard()
	if board.Score != 100 || board.Frame != 100 {
		t.Errorf("Unexpected scoreboard %+v", board)
	}
}
