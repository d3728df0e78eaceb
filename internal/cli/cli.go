// Package cli implements the appgraph command-line interface.
//
// # Commands
//
//   - layout: lay out an application record array from a file or URL
//   - render: draw a layout as SVG, PNG, PDF or DOT
//   - edit: append a palette node to a layout
//   - serve: run the HTTP API
//   - cache: inspect or clear the layout cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands accept --verbose (-v) for debug-level logging. The logger is
// carried in the command's context.Context and retrieved with
// loggerFromContext.
//
// # Configuration
//
// Settings come from internal/config; --config names an explicit TOML file.
// Command-line flags override configured values.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/appgraph/internal/config"
	"github.com/matzehuels/appgraph/pkg/cache"
	"github.com/matzehuels/appgraph/pkg/layout"
	"github.com/matzehuels/appgraph/pkg/pipeline"
)

// appName is used for display and default file names.
const appName = "appgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	// errOut receives progress output such as the spinner.
	errOut io.Writer

	configPath string
	verbose    bool
	cfg        config.Config

	// ranker overrides the Graphviz ranker; tests set it.
	ranker layout.Ranker
}

// New creates a CLI whose logger and progress output write to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		errOut: w,
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig resolves the configuration for this invocation.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(config.LoadOptions{Path: c.configPath})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg
	return nil
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	var store cache.Cache = cache.NewNullCache()
	if !noCache {
		opened, err := c.cfg.OpenCache(ctx)
		if err != nil {
			c.Logger.Warn("cache unavailable, continuing without", "backend", c.cfg.Cache.Backend, "error", err)
		} else {
			store = opened
		}
	}
	runner := pipeline.NewRunner(store, c.cfg.Keyer(), c.Logger)
	engineOpts := append(c.cfg.EngineOptions(), layout.WithLogger(c.Logger))
	if c.ranker != nil {
		engineOpts = append(engineOpts, layout.WithRanker(c.ranker))
	}
	runner.Engine = layout.New(engineOpts...)
	return runner, nil
}

// pipelineOptions overlays flag values on the configured defaults.
func (c *CLI) pipelineOptions(direction, ids string, refresh bool) pipeline.Options {
	opts := pipeline.Options{
		Direction:  c.cfg.Layout.Direction,
		IDStrategy: c.cfg.Layout.IDStrategy,
		Refresh:    refresh,
		CacheTTL:   c.cfg.Cache.TTL,
	}
	if direction != "" {
		opts.Direction = direction
	}
	if ids != "" {
		opts.IDStrategy = ids
	}
	return opts
}
