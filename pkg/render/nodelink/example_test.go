package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/appgraph/pkg/flow"
	"github.com/matzehuels/appgraph/pkg/render/nodelink"
)

func ExampleToDOT() {
	l := flow.Layout{
		Nodes: []flow.Node{
			{ID: "hub", Label: "Hub", Width: 172, Height: 36},
		},
	}

	dot := nodelink.ToDOT(l, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), `"hub"`) {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "hub" [label="Hub", pos="86,-18!", width=2.388888888888889, height=0.5];
}
