package layout

import (
	"context"

	"github.com/matzehuels/appgraph/pkg/dag"
)

// Point is the center of a node. The y axis grows downward.
type Point struct {
	X, Y float64
}

// RankOptions are passed to a Ranker for a single run.
type RankOptions struct {
	Direction Direction
	NodeSep   float64 // gap between nodes of the same rank, in pixels
	RankSep   float64 // gap between ranks, in pixels
}

// Ranker computes a center point for every node of g using a rank-based
// algorithm. Implementations must return a point for each node; they must
// not retain g after returning.
type Ranker interface {
	Rank(ctx context.Context, g *dag.DAG, opts RankOptions) (map[string]Point, error)
}

// RankerFunc adapts a function to the Ranker interface.
type RankerFunc func(ctx context.Context, g *dag.DAG, opts RankOptions) (map[string]Point, error)

// Rank calls f.
func (f RankerFunc) Rank(ctx context.Context, g *dag.DAG, opts RankOptions) (map[string]Point, error) {
	return f(ctx, g, opts)
}
