package pipeline

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/waterflow/pkg/cache"
	"github.com/matzehuels/waterflow/pkg/config"
	"github.com/matzehuels/waterflow/pkg/snapshot"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. It doesn't store
// pipeline results, and each layout builds its own engine.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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

// LayoutWithCacheInfo runs the session of cfg with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, cfg config.Config) (Result, bool, error) {
	cacheKey := r.Keyer.SnapshotKey(cfg.Hash(), cache.SnapshotKeyOpts{
		Steps:  cfg.Scroll.Steps,
		JumpTo: cfg.Scroll.JumpTo,
	})

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached Result
		if err := json.Unmarshal(data, &cached); err == nil && cached.Snapshot.Version == snapshot.Version {
			return cached, true, nil
		}
		// If deserialization fails, fall through to recompute
	}

	res, err := Run(ctx, cfg, r.Logger)
	if err != nil {
		return Result{}, false, err
	}

	r.Logger.Info("computed layout",
		"items", len(res.Snapshot.Items),
		"materialized", res.Stats.Source.Live(),
		"duration", res.Stats.Duration)

	if data, err := json.Marshal(res); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSnapshot)
	}
	return res, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, cfg config.Config) (Result, error) {
	res, _, err := r.LayoutWithCacheInfo(ctx, cfg)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s snapshot.Snapshot, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	data, err := snapshot.Marshal(s)
	if err != nil {
		return nil, false, err
	}
	snapHash := cache.Hash(data)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(snapHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, s, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(snapHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s snapshot.Snapshot, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
