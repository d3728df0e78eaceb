// Package dag provides a small insertion-ordered directed graph used as the
// workspace of a single layout run.
//
// # Overview
//
// The layout engine registers every node (with the size of the box that will
// be drawn for it) and every edge in a fresh [DAG], validates it, assigns
// ranks and then hands the graph to a ranker that computes coordinates. The
// workspace is never reused: a DAG belongs to one call and is dropped
// afterwards, so layouts never leak into each other.
//
// # Basic Usage
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "core", Width: 172, Height: 36})
//	g.AddNode(dag.Node{ID: "billing", Width: 172, Height: 36})
//	g.AddEdge(dag.Edge{From: "core", To: "billing"})
//	if err := g.Validate(); err != nil {
//	    // dangling endpoint or cycle
//	}
//	g.AssignRanks()
//
// [DAG.Nodes], [DAG.Edges] and [DAG.Children] return results in insertion
// order, which keeps downstream output deterministic.
//
// # Errors
//
// [DAG.AddNode] rejects empty and duplicate ids, [DAG.AddEdge] rejects
// unknown endpoints and [DAG.Validate] reports cycles with [ErrGraphHasCycle].
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Build one per goroutine.
package dag
