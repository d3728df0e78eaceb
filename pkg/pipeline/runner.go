package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/appgraph/pkg/apps"
	"github.com/matzehuels/appgraph/pkg/builder"
	"github.com/matzehuels/appgraph/pkg/cache"
	"github.com/matzehuels/appgraph/pkg/flow"
	"github.com/matzehuels/appgraph/pkg/layout"
	"github.com/matzehuels/appgraph/pkg/observability"
	"github.com/matzehuels/appgraph/pkg/source"
)

const keyTypeLayout = "layout"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for its collaborators. Multiple goroutines
// can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Engine *layout.Engine
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
		Engine: layout.New(layout.WithLogger(logger)),
	}
}

// Execute fetches records from src and lays them out. A fetch failure is
// returned without running the builder or the engine.
func (r *Runner) Execute(ctx context.Context, src source.Source, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	fetchStart := time.Now()
	hooks.OnFetchStart(ctx, src.String())
	records, err := src.Fetch(ctx)
	fetchTime := time.Since(fetchStart)
	hooks.OnFetchComplete(ctx, src.String(), len(records), fetchTime, err)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	r.Logger.Info("fetched records",
		"source", src.String(),
		"records", len(records),
		"duration", fetchTime)

	result, err := r.LayoutRecords(ctx, records, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.FetchTime = fetchTime
	return result, nil
}

// LayoutRecords builds and lays out records, consulting the cache first
// unless opts.Refresh is set.
func (r *Runner) LayoutRecords(ctx context.Context, records []apps.Record, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{RecordsHash: cache.Hash(apps.Canonical(records))}
	result.Stats.RecordCount = len(records)
	nodeSep, rankSep := r.engine().Separation()
	key := r.Keyer.LayoutKey(result.RecordsHash, cache.LayoutKeyOpts{
		Direction:  opts.Direction,
		IDStrategy: opts.IDStrategy,
		NodeSep:    nodeSep,
		RankSep:    rankSep,
	})

	if !opts.Refresh {
		if l, ok := r.cached(ctx, key); ok {
			result.Layout = l
			result.CacheHit = true
			result.Stats.NodeCount = len(l.Nodes)
			result.Stats.EdgeCount = len(l.Edges)
			r.Logger.Info("using cached layout", "nodes", len(l.Nodes), "edges", len(l.Edges))
			return result, nil
		}
	}

	hooks := observability.Pipeline()

	buildStart := time.Now()
	nodes, edges, err := builder.Build(records, builder.Options{IDStrategy: opts.strategy})
	result.Stats.BuildTime = time.Since(buildStart)
	hooks.OnBuildComplete(ctx, len(nodes), len(edges), result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, opts.Direction, len(nodes))
	l, err := r.engine().Apply(ctx, nodes, edges, opts.direction)
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, opts.Direction, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	result.Layout = l
	result.Stats.NodeCount = len(l.Nodes)
	result.Stats.EdgeCount = len(l.Edges)

	r.Logger.Info("computed layout",
		"direction", opts.Direction,
		"nodes", len(l.Nodes),
		"edges", len(l.Edges),
		"duration", result.Stats.LayoutTime)

	r.store(ctx, key, l, opts.CacheTTL)
	return result, nil
}

func (r *Runner) engine() *layout.Engine {
	if r.Engine == nil {
		return layout.New(layout.WithLogger(r.Logger))
	}
	return r.Engine
}

func (r *Runner) cached(ctx context.Context, key string) (flow.Layout, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		hooks.OnCacheError(ctx, keyTypeLayout, err)
		r.Logger.Warn("cache read failed", "error", err)
		return flow.Layout{}, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, keyTypeLayout)
		return flow.Layout{}, false
	}
	l, err := flow.Unmarshal(data)
	if err != nil {
		hooks.OnCacheError(ctx, keyTypeLayout, err)
		r.Logger.Debug("discarding unreadable cache entry", "error", err)
		return flow.Layout{}, false
	}
	hooks.OnCacheHit(ctx, keyTypeLayout)
	return l, true
}

func (r *Runner) store(ctx context.Context, key string, l flow.Layout, ttl time.Duration) {
	data, err := flow.Marshal(l)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, keyTypeLayout, err)
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
}
