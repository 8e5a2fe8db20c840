package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starbar/pkg/cache"
	"github.com/matzehuels/starbar/pkg/observability"
	"github.com/matzehuels/starbar/pkg/star/layout"
)

// Runner executes layout and render with an artifact cache in front of the
// render stage. The CLI and the badge server share it.
//
// A Runner keeps no per-call state, so one value serves concurrent
// requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is the artifact cache lifetime. Zero means DefaultArtifactTTL.
	TTL time.Duration
}

// NewRunner fills nil arguments with a DefaultKeyer, a NullCache and the
// default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute validates opts, computes the layout and returns the rendered
// artifacts, from the cache when every requested format is present.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Layout
	done := observability.TimeLayout(ctx, opts.Settings.TotalStars, opts.Settings.FillMode.String())
	hash, err := LayoutHash(r.Keyer, opts)
	if err != nil {
		done(err)
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.LayoutHash = hash
	result.Layout = GenerateLayout(opts)
	result.Stats.Stars = len(result.Layout.Stars)
	result.Stats.LayoutTime = done(nil)

	opts.Logger.Debug("computed layout",
		"stars", result.Stats.Stars,
		"rating", result.Layout.Rating,
		"size", result.Layout.Size,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Layout, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	for _, data := range artifacts {
		result.Stats.Bytes += len(data)
	}

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders l, reporting whether all formats came from the
// cache. layoutHash must come from [LayoutHash] for the same options.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Result, layoutHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				opts.Logger.Warn("cache read failed", "format", format, "err", err)
			}
			if err != nil || !hit {
				cacheHooks.OnCacheMiss(ctx, "artifact")
				break
			}
			cacheHooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	done := observability.TimeRender(ctx, opts.Formats)
	rendered, err := Render(l, opts)
	done(err)
	if err != nil {
		return nil, false, err
	}

	// A failed write only costs a later re-render.
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return DefaultArtifactTTL
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
