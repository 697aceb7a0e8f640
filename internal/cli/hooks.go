package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/backdrop/pkg/observability"
)

// EnableDebugHooks routes pipeline, cache and frame-loop events to the
// CLI's logger at debug level.
func (c *CLI) EnableDebugHooks() {
	h := debugHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetFrameHooks(h)
}

// debugHooks implements the observability hook interfaces by logging.
type debugHooks struct {
	logger *log.Logger
}

func (h debugHooks) OnGenerate(_ context.Context, seed uint64, lines int, d time.Duration) {
	h.logger.Debug("generate", "seed", seed, "lines", lines, "duration", d)
}

func (h debugHooks) OnRenderStart(_ context.Context, seed uint64, formats []string) {
	h.logger.Debug("render start", "seed", seed, "formats", formats)
}

func (h debugHooks) OnRenderComplete(_ context.Context, seed uint64, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "seed", seed, "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render complete", "seed", seed, "formats", formats, "duration", d)
}

func (h debugHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h debugHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h debugHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h debugHooks) OnLoopStart(_ context.Context, fps int) {
	h.logger.Debug("frame loop start", "fps", fps)
}

// OnFrame is silent; 60 lines a second would drown everything else.
func (h debugHooks) OnFrame(context.Context, uint64, float64, float64) {}

func (h debugHooks) OnLoopStop(_ context.Context, frames uint64) {
	h.logger.Debug("frame loop stop", "frames", frames)
}

// debugHTTPHooks logs request starts; the server already logs completions.
type debugHTTPHooks struct {
	observability.NoopHTTPHooks
	logger *log.Logger
}

func (h debugHTTPHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request start", "method", method, "path", path)
}
