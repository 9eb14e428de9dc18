// Package pipeline turns a diagram into rendered artifacts.
//
// The CLI and the HTTP server share one [Runner], so both get the same
// validation, DOT emission and artifact caching:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Render(ctx, d, pipeline.Options{
//	    Formats: []render.Format{render.FormatSVG, render.FormatPNG},
//	})
//	svg := result.Artifacts[render.FormatSVG]
//
// Graphviz output is cached by the hash of the DOT source plus the format.
// DOT and JSON outputs are produced directly and never cached.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/saasfactory/archviz/pkg/cache"
	"github.com/saasfactory/archviz/pkg/errors"
	"github.com/saasfactory/archviz/pkg/render"
)

// Options configures one pipeline run.
type Options struct {
	// Formats to produce. Defaults to png.
	Formats []render.Format `json:"formats,omitempty"`

	// Detailed adds each node's resource kind under its label.
	Detailed bool `json:"detailed,omitempty"`

	// Output is where WriteArtifacts puts files. Empty means a name derived
	// from the diagram title in the working directory.
	Output string `json:"output,omitempty"`

	// Refresh skips cache reads but still stores fresh results.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives this run's log lines. Nil uses the Runner's logger.
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []render.Format{render.DefaultFormat}
	}
}

// Validate checks every requested format is known.
func (o *Options) Validate() error {
	for _, f := range o.Formats {
		if f.ContentType() == "" {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", f)
		}
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(f render.Format) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: string(f), Detailed: o.Detailed}
}

// Result is the output of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and HTTP responses.
	RunID string

	// Title is the diagram title, used to name output files.
	Title string

	// DOT is the Graphviz source every image was rendered from.
	DOT string

	// DOTHash is the content hash of DOT, the base of every cache key.
	DOTHash string

	// Artifacts holds rendered outputs keyed by format.
	Artifacts map[render.Format][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	ClusterCount int
	RenderTime   time.Duration
}

// CacheInfo records which formats were served from the cache.
type CacheInfo struct {
	Hits []render.Format
}

// Hit reports whether f came from the cache.
func (c CacheInfo) Hit(f render.Format) bool {
	for _, h := range c.Hits {
		if h == f {
			return true
		}
	}
	return false
}

func errEmptyDiagram() error {
	return errors.New(errors.ErrCodeInvalidInput, "diagram has no nodes")
}
