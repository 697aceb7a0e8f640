package physics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu  sync.Mutex
	out []Offsets
}

func (r *recorder) WriteOffsets(o Offsets) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out = append(r.out, o)
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.out)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestLoop_TicksUntilCancelled(t *testing.T) {
	var mu sync.Mutex
	scroll := 0.0
	reader := ScrollFunc(func() float64 {
		mu.Lock()
		defer mu.Unlock()
		scroll += 10
		return scroll
	})

	rec := &recorder{}
	loop := NewLoop(NewEngine(0), reader, rec, WithFrameRate(1000))

	h, err := loop.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	waitFor(t, func() bool { return rec.len() >= 5 })
	h.Cancel()

	written := rec.len()
	if got := loop.Frames(); got != uint64(written) {
		t.Errorf("Frames() = %d, want %d", got, written)
	}

	time.Sleep(20 * time.Millisecond)
	if rec.len() != written {
		t.Errorf("offsets written after Cancel: %d -> %d", written, rec.len())
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.out[0].Vertical <= 0 {
		t.Errorf("first frame vertical offset = %v, want > 0 for downward scroll", rec.out[0].Vertical)
	}
}

func TestLoop_CancelIsIdempotent(t *testing.T) {
	loop := NewLoop(NewEngine(0), ScrollFunc(func() float64 { return 0 }), OffsetFunc(func(Offsets) {}))
	h, err := loop.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	h.Cancel()
	h.Cancel()

	select {
	case <-h.Done():
	default:
		t.Error("Done() should be closed after Cancel")
	}
}

func TestLoop_StartWhileRunning(t *testing.T) {
	loop := NewLoop(NewEngine(0), ScrollFunc(func() float64 { return 0 }), OffsetFunc(func(Offsets) {}))
	h, err := loop.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer h.Cancel()

	if _, err := loop.Start(context.Background()); !errors.Is(err, ErrRunning) {
		t.Errorf("second Start() error = %v, want ErrRunning", err)
	}
}

func TestLoop_RestartAfterCancel(t *testing.T) {
	loop := NewLoop(NewEngine(0), ScrollFunc(func() float64 { return 0 }), OffsetFunc(func(Offsets) {}))
	h, err := loop.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	h.Cancel()

	h, err = loop.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() after Cancel error: %v", err)
	}
	h.Cancel()
}

func TestLoop_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loop := NewLoop(NewEngine(0), ScrollFunc(func() float64 { return 0 }), OffsetFunc(func(Offsets) {}), WithFrameRate(500))

	h, err := loop.Start(ctx)
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	cancel()

	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after context cancellation")
	}
}

func TestLoop_StartResetsScrollReference(t *testing.T) {
	e := NewEngine(0)
	loop := NewLoop(e, ScrollFunc(func() float64 { return 900 }), OffsetFunc(func(Offsets) {}), WithFrameRate(1000))

	h, err := loop.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	waitFor(t, func() bool { return loop.Frames() >= 3 })
	h.Cancel()

	// A page loaded mid-scroll must not register the initial position as movement.
	if o := e.Offsets(); o.Vertical != 0 || o.Horizontal != 0 {
		t.Errorf("Offsets() = %+v, want zero for a stationary view", o)
	}
}

func TestWithFrameRate(t *testing.T) {
	tests := []struct {
		fps  int
		want int
	}{
		{0, DefaultFrameRate},
		{-30, DefaultFrameRate},
		{120, 120},
		{MaxFrameRate, MaxFrameRate},
		{MaxFrameRate + 1, DefaultFrameRate},
		{2_000_000_000, DefaultFrameRate},
	}
	for _, tt := range tests {
		l := NewLoop(NewEngine(0), nil, nil, WithFrameRate(tt.fps))
		if got := l.FrameRate(); got != tt.want {
			t.Errorf("WithFrameRate(%d): FrameRate() = %d, want %d", tt.fps, got, tt.want)
		}
	}
}

func TestLoop_HugeFrameRateStillTicks(t *testing.T) {
	loop := NewLoop(NewEngine(0), ScrollFunc(func() float64 { return 0 }), OffsetFunc(func(Offsets) {}),
		WithFrameRate(2_000_000_000))
	h, err := loop.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	waitFor(t, func() bool { return loop.Frames() >= 1 })
	h.Cancel()
}

func TestLoop_StopFromWriter(t *testing.T) {
	handles := make(chan *Handle, 1)
	rec := &recorder{}
	out := OffsetFunc(func(o Offsets) {
		rec.WriteOffsets(o)
		select {
		case h := <-handles:
			// A detached view tears the loop down from inside its own frame.
			h.Stop()
		default:
		}
	})
	loop := NewLoop(NewEngine(0), ScrollFunc(func() float64 { return 0 }), out, WithFrameRate(1000))

	h, err := loop.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	handles <- h

	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not exit after Stop from the writer")
	}
	written := rec.len()
	time.Sleep(20 * time.Millisecond)
	if rec.len() != written {
		t.Errorf("offsets written after Stop: %d -> %d", written, rec.len())
	}
	h.Cancel() // already exited; must not block
}
