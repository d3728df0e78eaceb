package layout

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/matzehuels/appgraph/pkg/dag"
)

// pointsPerInch converts between Graphviz attribute units (inches) and
// output coordinates (points, which we treat as pixels).
const pointsPerInch = 72.0

// Graphviz is a Ranker backed by the Graphviz dot engine.
//
// Every call opens its own Graphviz context and graph and closes both before
// returning. Nodes are fixed-size boxes with the workspace footprint.
type Graphviz struct{}

var _ Ranker = Graphviz{}

// Rank lays out g with dot and returns node centers with y growing downward.
func (Graphviz) Rank(ctx context.Context, g *dag.DAG, opts RankOptions) (map[string]Point, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	defer graph.Close()

	names, err := populate(graph, g, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return nil, fmt.Errorf("dot layout: %w", err)
	}
	return readCenters(buf.Bytes(), g, names)
}

// populate adds g to graph under synthetic node names n0, n1, ... and returns
// the name assigned to each workspace id. Graphviz's DOT writer does not
// escape backslashes, so ids are never used as names.
func populate(graph *cgraph.Graph, g *dag.DAG, opts RankOptions) (map[string]string, error) {
	rankDir := cgraph.TBRank
	if opts.Direction == LeftToRight {
		rankDir = cgraph.LRRank
	}
	graph.SetRankDir(rankDir)
	graph.SetNodeSeparator(opts.NodeSep / pointsPerInch)
	graph.SetRankSeparator(opts.RankSep / pointsPerInch)

	names := make(map[string]string, g.NodeCount())
	created := make(map[string]*cgraph.Node, g.NodeCount())
	for i, n := range g.Nodes() {
		name := fmt.Sprintf("n%d", i)
		node, err := graph.CreateNodeByName(name)
		if err != nil {
			return nil, fmt.Errorf("create node %s: %w", n.ID, err)
		}
		node.SetShape(cgraph.BoxShape).
			SetFixedSize(true).
			SetWidth(n.Width / pointsPerInch).
			SetHeight(n.Height / pointsPerInch).
			SetLabel("")
		created[n.ID] = node
		names[n.ID] = name
	}
	for i, e := range g.Edges() {
		if _, err := graph.CreateEdgeByName(fmt.Sprintf("e%d", i), created[e.From], created[e.To]); err != nil {
			return nil, fmt.Errorf("create edge %s -> %s: %w", e.From, e.To, err)
		}
	}
	return names, nil
}

// readCenters parses the laid-out DOT document and flips y so the origin is
// the top of the bounding box.
func readCenters(out []byte, g *dag.DAG, names map[string]string) (map[string]Point, error) {
	laid, err := graphviz.ParseBytes(out)
	if err != nil {
		return nil, fmt.Errorf("parse dot output: %w", err)
	}
	defer laid.Close()

	bb, err := parseFloats(laid.GetStr("bb"), 4)
	if err != nil {
		return nil, fmt.Errorf("bounding box: %w", err)
	}
	top := bb[3]

	centers := make(map[string]Point, g.NodeCount())
	for _, n := range g.Nodes() {
		node, err := laid.NodeByName(names[n.ID])
		if err != nil || node == nil {
			return nil, fmt.Errorf("node %s missing from dot output", n.ID)
		}
		pos, err := parseFloats(node.GetStr("pos"), 2)
		if err != nil {
			return nil, fmt.Errorf("position of %s: %w", n.ID, err)
		}
		centers[n.ID] = Point{X: pos[0], Y: top - pos[1]}
	}
	return centers, nil
}

// parseFloats splits a comma separated Graphviz point list such as "86,18"
// or "0,0,172,36". A trailing "!" (pinned position) is ignored.
func parseFloats(s string, want int) ([]float64, error) {
	fields := strings.Split(strings.TrimSuffix(strings.TrimSpace(s), "!"), ",")
	if len(fields) != want {
		return nil, fmt.Errorf("expected %d values, got %q", want, s)
	}
	out := make([]float64, want)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}
