package pipeline

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/saasfactory/archviz/pkg/cache"
	"github.com/saasfactory/archviz/pkg/diagram"
	pkgio "github.com/saasfactory/archviz/pkg/io"
	"github.com/saasfactory/archviz/pkg/observability"
	"github.com/saasfactory/archviz/pkg/render"
	"github.com/saasfactory/archviz/pkg/render/nodelink"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state, so the CLI and every HTTP request can
// share one instance.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// renderFn produces Graphviz-backed formats. Tests replace it.
	renderFn func(ctx context.Context, dot string, f render.Format) ([]byte, error)
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the DefaultKeyer.
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
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		renderFn: nodelink.Render,
	}
}

// Render validates d, emits its DOT source and produces every requested
// format.
func (r *Runner) Render(ctx context.Context, d *diagram.Diagram, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if d.NodeCount() == 0 {
		return nil, errEmptyDiagram()
	}

	dot := nodelink.ToDOT(d, nodelink.Options{Detailed: opts.Detailed})
	result := &Result{
		RunID:     uuid.NewString(),
		Title:     d.Title(),
		DOT:       dot,
		DOTHash:   cache.Hash([]byte(dot)),
		Artifacts: make(map[render.Format][]byte, len(opts.Formats)),
		Stats: Stats{
			NodeCount:    d.NodeCount(),
			EdgeCount:    d.EdgeCount(),
			ClusterCount: d.ClusterCount(),
		},
	}
	logger := cmp.Or(opts.Logger, r.Logger).With("run", result.RunID[:8])

	formats := make([]string, len(opts.Formats))
	for i, f := range opts.Formats {
		formats[i] = string(f)
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, result.Title, formats)

	start := time.Now()
	for _, f := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		formatStart := time.Now()
		data, hit, err := r.renderFormat(ctx, d, result, f, opts, logger)
		hooks.OnRenderComplete(ctx, result.Title, string(f), len(data), time.Since(formatStart), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		if hit {
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, f)
		}
		result.Artifacts[f] = data
		logger.Debug("rendered", "format", f, "bytes", len(data), "cached", hit)
	}
	result.Stats.RenderTime = time.Since(start)

	logger.Info("rendered diagram",
		"title", result.Title,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"formats", formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderFormat produces one format, going through the cache for
// Graphviz-backed formats.
func (r *Runner) renderFormat(ctx context.Context, d *diagram.Diagram, res *Result, f render.Format, opts Options, logger *log.Logger) ([]byte, bool, error) {
	switch f {
	case render.FormatDOT:
		return []byte(res.DOT), false, nil
	case render.FormatJSON:
		data, err := pkgio.Marshal(d, pkgio.JSON)
		return data, false, err
	}

	key := r.Keyer.ArtifactKey(res.DOTHash, opts.ArtifactKeyOpts(f))
	hooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			logger.Warn("cache read failed", "format", f, "err", err)
		} else if hit {
			hooks.OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, "artifact")
	}

	data, err := r.renderFn(ctx, res.DOT, f)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		logger.Warn("cache write failed", "format", f, "err", err)
	} else {
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
