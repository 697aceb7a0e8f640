// Package observability lets the binary attach instrumentation to the
// library packages without importing a metrics backend into them.
//
// Four hook sets exist: pipeline (generate and render), cache, HTTP and the
// parallax frame loop. Each defaults to a no-op. main registers real hooks
// once at startup; library code fetches the current set at the call site:
//
//	observability.Pipeline().OnRenderStart(ctx, seed, formats)
//
// Lookups are lock-free, so the frame loop can fetch its hooks every tick.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// =============================================================================
// Hook interfaces
// =============================================================================

// PipelineHooks receives events from the generate → render pipeline.
type PipelineHooks interface {
	// OnGenerate fires for scenes generated fresh, not served from cache.
	OnGenerate(ctx context.Context, seed uint64, lines int, duration time.Duration)
	OnRenderStart(ctx context.Context, seed uint64, formats []string)
	OnRenderComplete(ctx context.Context, seed uint64, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is "scene" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives requests handled by the API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// FrameHooks receives events from the parallax frame loop. OnFrame runs on
// the loop goroutine once per frame and must not block.
type FrameHooks interface {
	OnLoopStart(ctx context.Context, frameRate int)
	OnFrame(ctx context.Context, frame uint64, vertical, horizontal float64)
	OnLoopStop(ctx context.Context, frames uint64)
}

// =============================================================================
// No-op implementations
// =============================================================================

// NoopPipelineHooks ignores every event. Embed it to implement a subset.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerate(context.Context, uint64, int, time.Duration) {}

func (NoopPipelineHooks) OnRenderStart(context.Context, uint64, []string) {}

func (NoopPipelineHooks) OnRenderComplete(context.Context, uint64, []string, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string) {}

func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}

func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string) {}

func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// NoopFrameHooks ignores every event.
type NoopFrameHooks struct{}

func (NoopFrameHooks) OnLoopStart(context.Context, int) {}

func (NoopFrameHooks) OnFrame(context.Context, uint64, float64, float64) {}

func (NoopFrameHooks) OnLoopStop(context.Context, uint64) {}

// =============================================================================
// Registry
// =============================================================================

// slot holds one registered hook set, falling back to noop when empty.
type slot[T any] struct {
	p    atomic.Pointer[T]
	noop T
}

func (s *slot[T]) load() T {
	if p := s.p.Load(); p != nil {
		return *p
	}
	return s.noop
}

func (s *slot[T]) store(h T) { s.p.Store(&h) }

func (s *slot[T]) reset() { s.p.Store(nil) }

var (
	pipelineSlot = slot[PipelineHooks]{noop: NoopPipelineHooks{}}
	cacheSlot    = slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot     = slot[HTTPHooks]{noop: NoopHTTPHooks{}}
	frameSlot    = slot[FrameHooks]{noop: NoopFrameHooks{}}
)

// SetPipelineHooks registers h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.store(h)
	}
}

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.store(h)
	}
}

// SetHTTPHooks registers h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.store(h)
	}
}

// SetFrameHooks registers h. A nil h is ignored.
func SetFrameHooks(h FrameHooks) {
	if h != nil {
		frameSlot.store(h)
	}
}

func Pipeline() PipelineHooks { return pipelineSlot.load() }
func Cache() CacheHooks       { return cacheSlot.load() }
func HTTP() HTTPHooks         { return httpSlot.load() }
func Frame() FrameHooks       { return frameSlot.load() }

// Reset restores the no-op defaults. Tests call it in cleanup.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
	frameSlot.reset()
}
