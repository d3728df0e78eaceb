// Package flow defines the node-and-edge model produced by appgraph.
//
// # Overview
//
// A [Layout] is what the builder and the layout engine hand to every outer
// surface (the CLI, the HTTP API, the snapshot store and the SVG renderer).
// It holds an ordered list of [Node] values, each with a fixed 172×36
// footprint and a top-left [Position], and an ordered list of [Edge] values
// connecting them.
//
// Nodes produced by the builder carry no [Node.Type]; nodes dropped from the
// editing palette carry one of [PaletteTypes] and are placed manually.
//
// # Serialization
//
// Layouts are plain JSON:
//
//	{"direction":"TB","nodes":[...],"edges":[...]}
//
// Use [Marshal]/[Unmarshal] for bytes and [WriteFile]/[ReadFile] for files.
// [Unmarshal] checks that every edge endpoint refers to a node of the same
// layout.
package flow
