package layout

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/appgraph/pkg/dag"
	apperrors "github.com/matzehuels/appgraph/pkg/errors"
	"github.com/matzehuels/appgraph/pkg/flow"
)

// Default separations in pixels between nodes of a rank and between ranks.
const (
	DefaultNodeSep = 50.0
	DefaultRankSep = 50.0
)

// Engine positions nodes. It holds configuration only; each call to Apply
// builds its own workspace, so an Engine is safe for concurrent use as long
// as its Ranker is.
type Engine struct {
	ranker  Ranker
	logger  *log.Logger
	nodeSep float64
	rankSep float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRanker replaces the Graphviz ranker.
func WithRanker(r Ranker) Option {
	return func(e *Engine) { e.ranker = r }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSeparation sets the gap between nodes of a rank and between ranks.
// Non-positive values keep the defaults.
func WithSeparation(nodeSep, rankSep float64) Option {
	return func(e *Engine) {
		if nodeSep > 0 {
			e.nodeSep = nodeSep
		}
		if rankSep > 0 {
			e.rankSep = rankSep
		}
	}
}

// New creates an Engine. Without options it uses Graphviz with 50px
// separations and discards log output.
func New(opts ...Option) *Engine {
	e := &Engine{
		ranker:  Graphviz{},
		nodeSep: DefaultNodeSep,
		rankSep: DefaultRankSep,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e
}

// Separation reports the node and rank gaps the engine lays out with.
func (e *Engine) Separation() (nodeSep, rankSep float64) {
	return e.nodeSep, e.rankSep
}

var defaultEngine = New()

// Apply lays out nodes and edges with the default Engine.
func Apply(ctx context.Context, nodes []flow.Node, edges []flow.Edge, dir Direction) (flow.Layout, error) {
	return defaultEngine.Apply(ctx, nodes, edges, dir)
}

// Apply returns copies of nodes with position, sides and rank filled in, and
// edges unchanged. The input slices are not modified.
//
// Errors:
//   - INVALID_INPUT for an unknown direction or an empty node id
//   - DUPLICATE_NODE when two nodes share an id
//   - DANGLING_REFERENCE when an edge names an unknown node
//   - INVALID_TOPOLOGY when the edges form a cycle
//
// An empty node list yields an empty layout without running the ranker.
func (e *Engine) Apply(ctx context.Context, nodes []flow.Node, edges []flow.Edge, dir Direction) (flow.Layout, error) {
	dir, err := ParseDirection(string(dir))
	if err != nil {
		return flow.Layout{}, err
	}

	g, err := workspace(nodes, edges)
	if err != nil {
		return flow.Layout{}, err
	}

	out := flow.Layout{
		Direction: dir.String(),
		Nodes:     make([]flow.Node, 0, len(nodes)),
		Edges:     append([]flow.Edge{}, edges...),
	}
	if g.NodeCount() == 0 {
		return out, nil
	}

	ranks := g.AssignRanks()
	centers, err := e.ranker.Rank(ctx, g, RankOptions{
		Direction: dir,
		NodeSep:   e.nodeSep,
		RankSep:   e.rankSep,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return flow.Layout{}, ctxErr
		}
		return flow.Layout{}, apperrors.Wrap(apperrors.ErrCodeInternal, err, "rank layout")
	}

	source, target := dir.Sides()
	taken := make(map[Point]struct{}, len(nodes))
	nudged := 0
	for _, n := range nodes {
		wn, _ := g.Node(n.ID)
		c, ok := centers[n.ID]
		if !ok {
			return flow.Layout{}, apperrors.New(apperrors.ErrCodeInternal, "ranker returned no position for %s", n.ID)
		}
		for {
			if _, used := taken[c]; !used {
				break
			}
			c.X += wn.Width / 2
			c.Y += wn.Height / 2
			nudged++
		}
		taken[c] = struct{}{}

		n.Width, n.Height = wn.Width, wn.Height
		n.Rank = wn.Rank
		n.SourceSide, n.TargetSide = source, target
		n.Position = flow.Position{X: c.X - wn.Width/2, Y: c.Y - wn.Height/2}
		out.Nodes = append(out.Nodes, n)
	}

	e.logger.Debug("applied layout",
		"direction", dir,
		"nodes", len(out.Nodes),
		"edges", len(out.Edges),
		"ranks", ranks,
		"nudged", nudged)
	return out, nil
}

// workspace registers nodes and edges in a fresh DAG. Nodes without a size
// get the standard footprint.
func workspace(nodes []flow.Node, edges []flow.Edge) (*dag.DAG, error) {
	g := dag.New()
	for _, n := range nodes {
		w, h := n.Width, n.Height
		if w <= 0 {
			w = flow.NodeWidth
		}
		if h <= 0 {
			h = flow.NodeHeight
		}
		if err := g.AddNode(dag.Node{ID: n.ID, Width: w, Height: h}); err != nil {
			return nil, nodeError(err, n.ID)
		}
	}
	for _, ed := range edges {
		if err := g.AddEdge(dag.Edge{From: ed.SourceID, To: ed.TargetID}); err != nil {
			missing := ed.SourceID
			if errors.Is(err, dag.ErrUnknownTargetNode) {
				missing = ed.TargetID
			}
			return nil, apperrors.Wrap(apperrors.ErrCodeDanglingReference, err, "edge %s references unknown node %q", ed.ID, missing)
		}
	}
	if err := g.Validate(); err != nil {
		if errors.Is(err, dag.ErrGraphHasCycle) {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidTopology, err, "cyclic graphs cannot be laid out")
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeDanglingReference, err, "validate graph")
	}
	return g, nil
}

func nodeError(err error, id string) error {
	if errors.Is(err, dag.ErrDuplicateNodeID) {
		return apperrors.Wrap(apperrors.ErrCodeDuplicateNode, err, "node %q already exists", id)
	}
	return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "node %q", id)
}
