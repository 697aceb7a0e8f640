package physics

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matzehuels/backdrop/pkg/observability"
)

// ErrRunning is returned by [Loop.Start] when the loop already has a live handle.
var ErrRunning = errors.New("frame loop already running")

// ScrollReader reports the current scroll position of a view.
type ScrollReader interface {
	ScrollY() float64
}

// OffsetWriter receives the layer offsets computed for each frame.
type OffsetWriter interface {
	WriteOffsets(Offsets)
}

// ScrollFunc adapts a function to [ScrollReader].
type ScrollFunc func() float64

// ScrollY calls f.
func (f ScrollFunc) ScrollY() float64 { return f() }

// OffsetFunc adapts a function to [OffsetWriter].
type OffsetFunc func(Offsets)

// WriteOffsets calls f.
func (f OffsetFunc) WriteOffsets(o Offsets) { f(o) }

// LoopOption configures a [Loop].
type LoopOption func(*Loop)

// WithFrameRate sets the number of frames per second. Values outside
// (0, MaxFrameRate] are ignored.
func WithFrameRate(fps int) LoopOption {
	return func(l *Loop) {
		if fps > 0 && fps <= MaxFrameRate {
			l.fps = fps
		}
	}
}

// Loop schedules one engine tick per frame. Each tick reads the scroll
// position, advances the engine and writes the resulting offsets.
//
// While a loop is running its goroutine is the only writer of the engine.
type Loop struct {
	engine *Engine
	scroll ScrollReader
	out    OffsetWriter
	fps    int

	mu      sync.Mutex
	running bool
	frames  atomic.Uint64
}

// NewLoop creates a loop that drives e from scroll and reports to out.
func NewLoop(e *Engine, scroll ScrollReader, out OffsetWriter, opts ...LoopOption) *Loop {
	l := &Loop{engine: e, scroll: scroll, out: out, fps: DefaultFrameRate}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FrameRate returns the configured frames per second.
func (l *Loop) FrameRate() int { return l.fps }

// Frames returns the number of frames ticked since the loop was created.
func (l *Loop) Frames() uint64 { return l.frames.Load() }

// Start resets the engine to the current scroll position and begins ticking.
// The loop runs until the returned handle is cancelled or ctx is done.
func (l *Loop) Start(ctx context.Context) (*Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return nil, ErrRunning
	}
	l.running = true

	l.engine.Reset(l.scroll.ScrollY())

	loopCtx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	go l.run(loopCtx, h.done)
	return h, nil
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	hooks := observability.Frame()
	hooks.OnLoopStart(ctx, l.fps)

	interval := time.Second / time.Duration(l.fps)
	if interval <= 0 {
		interval = time.Second / DefaultFrameRate
	}
	ticker := time.NewTicker(interval)
	defer func() {
		ticker.Stop()
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
		hooks.OnLoopStop(ctx, l.frames.Load())
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A cancel racing with the tick wins; detached views get no writes.
			if ctx.Err() != nil {
				return
			}
			o := l.engine.Tick(l.scroll.ScrollY())
			l.out.WriteOffsets(o)
			hooks.OnFrame(ctx, l.frames.Add(1), o.Vertical, o.Horizontal)
		}
	}
}

// Handle controls a running loop.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop cancels the loop before its next frame without waiting for it to
// exit. It is safe to call from loop callbacks and more than once.
func (h *Handle) Stop() {
	h.cancel()
}

// Cancel stops the loop and waits for it to exit. It is safe to call more
// than once, but must not be called from a ScrollReader or OffsetWriter:
// the loop goroutine would wait on itself. Use Stop there.
func (h *Handle) Cancel() {
	h.Stop()
	<-h.done
}

// Done is closed once the loop has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }
