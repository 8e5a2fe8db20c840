// Package observability lets a host watch the star pipeline without the
// rendering packages importing a metrics backend.
//
// Three hook sets exist: [PipelineHooks] for layout and render timings,
// [CacheHooks] for artifact cache traffic, and [HTTPHooks] for the badge
// server. Each starts as a no-op. The server installs its Prometheus
// collectors at startup:
//
//	observability.SetPipelineHooks(metrics)
//	observability.SetCacheHooks(metrics)
//
// and the pipeline reports through the registered set:
//
//	done := observability.TimeLayout(ctx, settings.TotalStars, mode)
//	res := layout.Build(...)
//	done(nil)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives layout and render events. fillMode is the
// lower-case mode name ("full", "half", "precise").
type PipelineHooks interface {
	OnLayoutStart(ctx context.Context, totalStars int, fillMode string)
	OnLayoutComplete(ctx context.Context, fillMode string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives artifact cache events. keyType names the entry kind,
// currently always "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	// OnCacheSet reports a successful write of size bytes.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives badge server request events. route is the matched
// chi pattern, not the raw path, so labels stay bounded.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, route string, err error)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, int, string)                       {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// slot holds one registered hook set. Reads are lock-free because every
// render and request loads it.
type slot[T any] struct {
	v    atomic.Pointer[T]
	noop T
}

func (s *slot[T]) get() T {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return s.noop
}

func (s *slot[T]) set(h T) { s.v.Store(&h) }

func (s *slot[T]) reset() { s.v.Store(nil) }

var (
	pipelineSlot = slot[PipelineHooks]{noop: NoopPipelineHooks{}}
	cacheSlot    = slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot     = slot[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetPipelineHooks registers h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.set(h)
	}
}

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks registers h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

func Pipeline() PipelineHooks { return pipelineSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }
func HTTP() HTTPHooks         { return httpSlot.get() }

// Reset restores the no-op hooks. Tests that install hooks defer it.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}

// TimeLayout reports a layout start and returns the matching completion
// callback, which measures from this call.
func TimeLayout(ctx context.Context, totalStars int, fillMode string) func(err error) time.Duration {
	h := Pipeline()
	start := time.Now()
	h.OnLayoutStart(ctx, totalStars, fillMode)
	return func(err error) time.Duration {
		d := time.Since(start)
		h.OnLayoutComplete(ctx, fillMode, d, err)
		return d
	}
}

// TimeRender is TimeLayout for the render stage.
func TimeRender(ctx context.Context, formats []string) func(err error) time.Duration {
	h := Pipeline()
	start := time.Now()
	h.OnRenderStart(ctx, formats)
	return func(err error) time.Duration {
		d := time.Since(start)
		h.OnRenderComplete(ctx, formats, d, err)
		return d
	}
}
