// Package pkg holds the appgraph libraries.
//
// # Overview
//
// appgraph turns an inventory of applications into a star graph: the primary
// application is the hub and every other application hangs off it. The graph
// is laid out with a rank-based algorithm and drawn or served as JSON.
//
// # Architecture
//
//	records (file, URL)
//	         ↓
//	    [source]    fetch with retries
//	         ↓
//	    [builder]   star graph: nodes and edges
//	         ↓
//	    [layout]    ranks, Graphviz positions, collision nudging
//	         ↓
//	    [flow]      layout.json
//	         ↓
//	    [render]    SVG, PNG, PDF
//
// [pipeline] runs source → builder → layout with a [cache] in front, and
// [store] keeps named snapshots of computed layouts.
//
// # Quick Start
//
//	records, _ := apps.ImportJSON("apps.json")
//	nodes, edges, _ := builder.Build(records, builder.Options{})
//	l, _ := layout.Apply(ctx, nodes, edges, layout.TopToBottom)
//	flow.WriteFile(l, "apps.layout.json")
//
// [source]: github.com/matzehuels/appgraph/pkg/source
// [builder]: github.com/matzehuels/appgraph/pkg/builder
// [layout]: github.com/matzehuels/appgraph/pkg/layout
// [flow]: github.com/matzehuels/appgraph/pkg/flow
// [render]: github.com/matzehuels/appgraph/pkg/render
// [pipeline]: github.com/matzehuels/appgraph/pkg/pipeline
// [cache]: github.com/matzehuels/appgraph/pkg/cache
// [store]: github.com/matzehuels/appgraph/pkg/store
package pkg
