// Package builder turns a list of application records into the nodes and
// edges of a star graph.
//
// Exactly one record must be marked primary. The primary becomes the hub:
// one edge runs from it to every other record, in input order. Nodes come out
// unpositioned; [layout] assigns coordinates and edge sides.
//
//	nodes, edges, err := builder.Build(records, builder.Options{})
//	if errors.Is(err, errors.ErrCodeInvalidTopology) {
//	    // zero or several primaries
//	}
//
// # Node ids
//
// [Composite] (the default) derives ids as "{appId}-{index}", so the same
// application may appear twice. [Raw] uses the appId unchanged and rejects a
// repeated appId with a DUPLICATE_NODE error; it exists for consumers that
// key on appId and is deprecated.
//
// [layout]: github.com/matzehuels/appgraph/pkg/layout
package builder
