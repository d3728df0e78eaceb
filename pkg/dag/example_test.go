package dag_test

import (
	"fmt"

	"github.com/matzehuels/appgraph/pkg/dag"
)

func ExampleDAG_basic() {
	// A star: core points at two dependents
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "core", Width: 172, Height: 36})
	_ = g.AddNode(dag.Node{ID: "billing", Width: 172, Height: 36})
	_ = g.AddNode(dag.Node{ID: "search", Width: 172, Height: 36})
	_ = g.AddEdge(dag.Edge{From: "core", To: "billing"})
	_ = g.AddEdge(dag.Edge{From: "core", To: "search"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Ranks:", g.AssignRanks())
	// Output:
	// Nodes: 3
	// Edges: 2
	// Ranks: 2
}

func ExampleDAG_traversal() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "core"})
	_ = g.AddNode(dag.Node{ID: "auth"})
	_ = g.AddNode(dag.Node{ID: "cache"})
	_ = g.AddEdge(dag.Edge{From: "core", To: "auth"})
	_ = g.AddEdge(dag.Edge{From: "core", To: "cache"})

	fmt.Println("Children of core:", g.Children("core"))
	fmt.Println("In-degree of auth:", g.InDegree("auth"))
	// Output:
	// Children of core: [auth cache]
	// In-degree of auth: 1
}

func ExampleDAG_Validate() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "a"})
	_ = g.AddNode(dag.Node{ID: "b"})
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "a"})

	fmt.Println(g.Validate())
	// Output:
	// graph contains a cycle
}
