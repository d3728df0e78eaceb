// Package layout positions the nodes of a star graph.
//
// # Overview
//
// An [Engine] takes the nodes and edges produced by the builder and a
// [Direction], and returns a [flow.Layout] where every node has a top-left
// position and the sides its edges attach to. The work happens in four steps:
//
//  1. Register every node and edge in a fresh [dag.DAG] workspace, rejecting
//     duplicate ids, dangling endpoints and cycles.
//  2. Ask the [Ranker] for a center point per node. The default ranker is
//     [Graphviz], which runs the Graphviz dot engine.
//  3. Nudge nodes that landed on an already used center, in input order, by
//     half a node diagonally until the point is free.
//  4. Convert centers to top-left anchors.
//
// The workspace lives for a single call, so an Engine can be shared between
// goroutines and repeated calls never see each other's nodes.
//
// # Overlap handling
//
// Only exact coordinate collisions are resolved. Boxes that are close or
// intersect without sharing a center are left alone. For the star graphs this
// package is built for the dot engine never produces such intersections.
//
// # Usage
//
//	nodes, edges, _ := builder.Build(records, builder.Options{})
//	l, err := layout.Apply(ctx, nodes, edges, layout.LeftToRight)
package layout
