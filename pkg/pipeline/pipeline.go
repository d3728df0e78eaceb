// Package pipeline runs fetch → build → layout as one cached operation.
//
// The CLI and the API server both go through a [Runner], so a layout
// computed by one is byte-for-byte the layout served by the other.
//
// # Usage
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	src, _ := source.Open("app.json", source.Options{})
//	result, err := runner.Execute(ctx, src, pipeline.Options{Direction: "LR"})
//	if err != nil {
//	    return err
//	}
//	flow.WriteFile(result.Layout, "layout.json")
//
// Records already in memory skip the fetch stage:
//
//	result, err := runner.LayoutRecords(ctx, records, opts)
//
// # Caching
//
// Layouts are cached under a key derived from the canonical record JSON, the
// direction, the id strategy and the engine's separations. A cache hit returns the stored layout
// without running the builder or the engine; Refresh forces recomputation.
// Cache failures are logged and never fail a run.
package pipeline

import (
	"time"

	"github.com/matzehuels/appgraph/pkg/builder"
	"github.com/matzehuels/appgraph/pkg/flow"
	"github.com/matzehuels/appgraph/pkg/layout"
)

// DefaultCacheTTL is how long computed layouts stay cached.
const DefaultCacheTTL = 24 * time.Hour

// Options configures a pipeline run. The zero value lays out top-to-bottom
// with composite ids.
type Options struct {
	Direction  string        `json:"direction,omitempty"`
	IDStrategy string        `json:"ids,omitempty"`
	Refresh    bool          `json:"refresh,omitempty"`
	CacheTTL   time.Duration `json:"-"`

	direction layout.Direction
	strategy  builder.IDStrategy
}

// ValidateAndSetDefaults parses Direction and IDStrategy and fills in
// defaults. It returns INVALID_INPUT for unknown values.
func (o *Options) ValidateAndSetDefaults() error {
	dir, err := layout.ParseDirection(o.Direction)
	if err != nil {
		return err
	}
	strategy, err := builder.ParseIDStrategy(o.IDStrategy)
	if err != nil {
		return err
	}
	o.direction, o.strategy = dir, strategy
	o.Direction, o.IDStrategy = string(dir), string(strategy)
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	return nil
}

// Stats reports sizes and stage timings of a run.
type Stats struct {
	RecordCount int           `json:"records"`
	NodeCount   int           `json:"nodes"`
	EdgeCount   int           `json:"edges"`
	FetchTime   time.Duration `json:"fetchTime"`
	BuildTime   time.Duration `json:"buildTime"`
	LayoutTime  time.Duration `json:"layoutTime"`
}

// Result is the output of a run.
type Result struct {
	Layout      flow.Layout
	Stats       Stats
	CacheHit    bool
	RecordsHash string
}
