package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/appgraph/pkg/flow"
)

type editOpts struct {
	nodeType string
	x, y     float64
	output   string
}

// editCommand creates the edit command, which drops a palette node onto an
// existing layout without re-running the layout engine.
func (c *CLI) editCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit [layout.json]",
		Short: "Add a palette node to a layout",
		Long: `Add a palette node to a layout.

The new node has the chosen type (input, default or output), the label
"<type> node" and the given position. Existing nodes keep their positions.
Without --type an interactive picker is shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.nodeType == "" {
				typ, err := pickPaletteType()
				if err != nil {
					return err
				}
				if typ == "" {
					printInfo("Nothing added")
					return nil
				}
				opts.nodeType = typ
			}
			return runEdit(cmd.Context(), args[0], opts, time.Now())
		},
	}

	cmd.Flags().StringVarP(&opts.nodeType, "type", "t", "", "node type: input, default, output")
	cmd.Flags().Float64Var(&opts.x, "x", 0, "x position of the new node")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "y position of the new node")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: overwrite input)")

	return cmd
}

func runEdit(ctx context.Context, input string, opts editOpts, now time.Time) error {
	logger := loggerFromContext(ctx)

	l, err := flow.ReadFile(input)
	if err != nil {
		return err
	}
	node, err := flow.NewPaletteNode(opts.nodeType, flow.Position{X: opts.x, Y: opts.y}, now)
	if err != nil {
		return err
	}
	if err := l.Append(node); err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = input
	}
	if err := flow.WriteFile(l, output); err != nil {
		return err
	}
	logger.Debug("appended node", "id", node.ID, "nodes", len(l.Nodes))

	printSuccess("Added %s", node.ID)
	printFile(output)
	return nil
}
