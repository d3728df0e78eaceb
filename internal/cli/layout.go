package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/appgraph/pkg/errors"
	"github.com/matzehuels/appgraph/pkg/flow"
	"github.com/matzehuels/appgraph/pkg/source"
)

type layoutOpts struct {
	output    string
	direction string
	ids       string
	noCache   bool
	refresh   bool
	table     bool
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout [records.json|url]",
		Short: "Lay out an application record array",
		Long: `Lay out an application record array.

The input is a JSON array of {"appId", "name", "isPrimary"} records, read from
a file or fetched from an http(s) URL. Without an argument the configured
source.url is used. Exactly one record must be primary; it becomes the hub
of a star graph with an edge to every other record.

The result is written as layout.json (nodes with positions and connection
sides, plus edges) and can be drawn with 'appgraph render'.

Results are cached; --refresh recomputes, --no-cache bypasses the cache.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := c.cfg.Source.URL
			if len(args) == 1 {
				location = args[0]
			}
			if location == "" {
				return errors.New(errors.ErrCodeInvalidInput, "no input given and source.url is not configured")
			}
			return c.runLayout(cmd.Context(), location, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "layout direction: TB (default), LR")
	cmd.Flags().StringVar(&opts.ids, "ids", "", "node id strategy: composite (default), raw")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print the node positions as a table")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, location string, opts layoutOpts) error {
	logger := loggerFromContext(ctx)

	src, err := source.Open(location, source.Options{Retries: c.cfg.Source.Retries, Logger: logger})
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	prog := newProgress(logger)
	spinner := newSpinner(ctx, c.errOut, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, src, c.pipelineOptions(opts.direction, opts.ids, opts.refresh))
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()
	prog.done("layout finished", "nodes", result.Stats.NodeCount, "cached", result.CacheHit)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if opts.output == "-" {
		data, err := flow.Marshal(result.Layout)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	outputPath := layoutOutputPath(location, opts.output)
	if err := flow.WriteFile(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(result.Layout.Nodes), len(result.Layout.Edges), result.CacheHit)
	if opts.table {
		fmt.Println(layoutTable(result.Layout))
	}
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)
	return nil
}

// layoutOutputPath derives the output file from the input location unless
// one was given.
func layoutOutputPath(location, output string) string {
	if output != "" {
		return output
	}
	if errors.IsURL(location) {
		return "layout.json"
	}
	return strings.TrimSuffix(location, filepath.Ext(location)) + ".layout.json"
}
