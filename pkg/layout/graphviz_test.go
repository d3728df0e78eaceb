package layout

import (
	"context"
	"testing"

	"github.com/matzehuels/appgraph/pkg/apps"
	"github.com/matzehuels/appgraph/pkg/builder"
	"github.com/matzehuels/appgraph/pkg/dag"
	"github.com/matzehuels/appgraph/pkg/flow"
)

func TestGraphviz_StarTopToBottom(t *testing.T) {
	nodes, edges := buildStar(t)
	l, err := Apply(context.Background(), nodes, edges, TopToBottom)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	assertDistinct(t, l)

	primary, _ := l.Node("A-0")
	for _, id := range []string{"B-1", "C-2"} {
		child, _ := l.Node(id)
		if child.Position.Y <= primary.Position.Y {
			t.Errorf("%s at y=%v is not below primary at y=%v", id, child.Position.Y, primary.Position.Y)
		}
	}
	b, _ := l.Node("B-1")
	c, _ := l.Node("C-2")
	if b.Position.Y != c.Position.Y {
		t.Errorf("dependents on different ranks: %v vs %v", b.Position.Y, c.Position.Y)
	}
}

func TestGraphviz_StarLeftToRight(t *testing.T) {
	nodes, edges := buildStar(t)
	l, err := Apply(context.Background(), nodes, edges, LeftToRight)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	assertDistinct(t, l)

	primary, _ := l.Node("A-0")
	for _, id := range []string{"B-1", "C-2"} {
		child, _ := l.Node(id)
		if child.Position.X <= primary.Position.X {
			t.Errorf("%s at x=%v is not right of primary at x=%v", id, child.Position.X, primary.Position.X)
		}
		if child.TargetSide != flow.SideLeft || child.SourceSide != flow.SideRight {
			t.Errorf("%s sides = %s/%s", id, child.SourceSide, child.TargetSide)
		}
	}
}

func TestGraphviz_SingleNode(t *testing.T) {
	centers, err := Graphviz{}.Rank(context.Background(), singleNodeDAG(), RankOptions{
		Direction: TopToBottom,
		NodeSep:   DefaultNodeSep,
		RankSep:   DefaultRankSep,
	})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if got := centers["solo"]; got != (Point{X: 86, Y: 18}) {
		t.Errorf("center = %+v, want {86 18}", got)
	}
}

func TestGraphviz_Deterministic(t *testing.T) {
	nodes, edges := buildStar(t)
	first, err := Apply(context.Background(), nodes, edges, TopToBottom)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	second, err := Apply(context.Background(), nodes, edges, TopToBottom)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for i := range first.Nodes {
		if first.Nodes[i] != second.Nodes[i] {
			t.Errorf("node %d differs: %+v vs %+v", i, first.Nodes[i], second.Nodes[i])
		}
	}
}

func TestGraphviz_EscapedIDs(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
	}{
		{"quote", []string{`a"b`, `c"`}},
		{"backslash", []string{`a\b`, `c\`}},
		{"escaped quote", []string{`a\"`, `a\"z`}},
		{"dot keywords", []string{"graph", "node"}},
		{"ports and unicode", []string{"a:b", "é☃"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []apps.Record{{AppID: tt.ids[0], Name: "primary", IsPrimary: true}}
			for _, id := range tt.ids[1:] {
				records = append(records, apps.Record{AppID: id, Name: id})
			}
			records = append(records, apps.Record{AppID: "plain", Name: "plain"})

			nodes, edges, err := builder.Build(records, builder.Options{})
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			l, err := Apply(context.Background(), nodes, edges, TopToBottom)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if len(l.Nodes) != len(records) {
				t.Fatalf("got %d nodes, want %d", len(l.Nodes), len(records))
			}
			assertDistinct(t, l)
			primary := l.Nodes[0]
			for _, n := range l.Nodes[1:] {
				if n.Position.Y <= primary.Position.Y {
					t.Errorf("%s at y=%v is not below primary at y=%v", n.ID, n.Position.Y, primary.Position.Y)
				}
			}
		})
	}
}

func TestParseFloats(t *testing.T) {
	got, err := parseFloats("86,18!", 2)
	if err != nil || got[0] != 86 || got[1] != 18 {
		t.Errorf("parseFloats pinned = %v, %v", got, err)
	}
	if _, err := parseFloats("1,2,3", 2); err == nil {
		t.Error("expected error for wrong arity")
	}
	if _, err := parseFloats("a,b", 2); err == nil {
		t.Error("expected error for non-numeric values")
	}
}

func singleNodeDAG() *dag.DAG {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "solo", Width: flow.NodeWidth, Height: flow.NodeHeight})
	return g
}
