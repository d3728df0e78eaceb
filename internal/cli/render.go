package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/appgraph/pkg/flow"
	"github.com/matzehuels/appgraph/pkg/render"
	"github.com/matzehuels/appgraph/pkg/render/nodelink"
)

type renderOpts struct {
	output  string
	format  string
	scale   float64
	showIDs bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: 2}

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Draw a layout as SVG, PNG, PDF or DOT",
		Long: `Draw a layout as SVG, PNG, PDF or DOT.

Nodes are drawn exactly where the layout placed them. The format is taken
from --format, or from the extension of --output. PNG and PDF need
rsvg-convert (librsvg) on the PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := opts.format
			if format == "" && opts.output != "" {
				format = strings.TrimPrefix(filepath.Ext(opts.output), ".")
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], f, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), png, pdf, dot")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.showIDs, "ids", false, "show node ids under labels")

	return cmd
}

func runRender(ctx context.Context, input string, format render.Format, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	l, err := flow.ReadFile(input)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	data, err := renderLayout(ctx, l, format, opts)
	if err != nil {
		return err
	}
	prog.done("rendered", "format", format, "bytes", len(data))

	outputPath := renderOutputPath(input, opts.output, format)
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Rendered %s", strings.ToUpper(string(format)))
	printFile(outputPath)
	return nil
}

func renderLayout(ctx context.Context, l flow.Layout, format render.Format, opts renderOpts) ([]byte, error) {
	dot := nodelink.ToDOT(l, nodelink.Options{ShowIDs: opts.showIDs})
	if format == render.FormatDOT {
		return []byte(dot), nil
	}

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case render.FormatPNG:
		return render.ToPNG(ctx, svg, opts.scale)
	case render.FormatPDF:
		return render.ToPDF(ctx, svg)
	}
	return svg, nil
}

// renderOutputPath strips ".layout.json" or ".json" from the input and
// appends the format's extension, unless an output was given.
func renderOutputPath(input, output string, format render.Format) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(input, ".json")
	base = strings.TrimSuffix(base, ".layout")
	return base + "." + string(format)
}
