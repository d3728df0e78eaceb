package cli

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/appgraph/pkg/errors"
	"github.com/matzehuels/appgraph/pkg/flow"
)

func TestRunEdit(t *testing.T) {
	input := writeLayout(t)
	before, err := flow.ReadFile(input)
	if err != nil {
		t.Fatal(err)
	}
	now := time.UnixMilli(1700000000000)

	if err := runEdit(context.Background(), input, editOpts{nodeType: flow.TypeOutput, x: 400, y: 120}, now); err != nil {
		t.Fatalf("runEdit() error: %v", err)
	}

	after, err := flow.ReadFile(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(after.Nodes) != len(before.Nodes)+1 {
		t.Fatalf("got %d nodes, want %d", len(after.Nodes), len(before.Nodes)+1)
	}
	for i, n := range before.Nodes {
		if after.Nodes[i].Position != n.Position {
			t.Errorf("node %s moved from %+v to %+v", n.ID, n.Position, after.Nodes[i].Position)
		}
	}
	added := after.Nodes[len(after.Nodes)-1]
	if added.ID != "output-1700000000000" || added.Label != "output node" {
		t.Errorf("added node = %+v", added)
	}
	if added.Position != (flow.Position{X: 400, Y: 120}) {
		t.Errorf("added position = %+v", added.Position)
	}
	if len(after.Edges) != len(before.Edges) {
		t.Errorf("edges changed: %d -> %d", len(before.Edges), len(after.Edges))
	}
}

func TestRunEdit_Errors(t *testing.T) {
	input := writeLayout(t)
	now := time.UnixMilli(1700000000000)

	err := runEdit(context.Background(), input, editOpts{nodeType: "decision"}, now)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown type: error = %v, want INVALID_INPUT", err)
	}

	if err := runEdit(context.Background(), input, editOpts{nodeType: flow.TypeInput}, now); err != nil {
		t.Fatal(err)
	}
	err = runEdit(context.Background(), input, editOpts{nodeType: flow.TypeInput}, now)
	if !errors.Is(err, errors.ErrCodeDuplicateNode) {
		t.Errorf("same millisecond: error = %v, want DUPLICATE_NODE", err)
	}
}
