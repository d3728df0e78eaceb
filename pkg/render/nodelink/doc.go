// Package nodelink renders layouts as node-link diagrams.
//
// # Overview
//
// [ToDOT] writes a Graphviz DOT document in which every node carries a pinned
// position (pos="x,y!"), so rendering with Graphviz's nop engine reproduces
// the layout exactly, including any nudges applied to colliding nodes. Edges
// leave and enter nodes on the sides recorded in the layout.
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Coordinates
//
// Layouts use a y axis that grows downward with positions at the top-left
// corner of each box. DOT positions are box centers on an upward y axis, so
// ToDOT converts both.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
