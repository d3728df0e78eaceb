package store

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/matzehuels/appgraph/pkg/errors"
	"github.com/matzehuels/appgraph/pkg/flow"
)

func sampleLayout(label string) flow.Layout {
	return flow.Layout{
		Direction: "TB",
		Nodes: []flow.Node{
			{ID: "A-0", Label: label, Width: flow.NodeWidth, Height: flow.NodeHeight},
			{ID: "B-1", Label: "Billing", Width: flow.NodeWidth, Height: flow.NodeHeight, Position: flow.Position{Y: 86}},
		},
		Edges: []flow.Edge{flow.NewEdge("A-0", "B-1")},
	}
}

func TestMemory_SaveGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	st.now = func() time.Time { return fixed }

	snap, err := st.Save(ctx, sampleLayout("Core"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := ValidateID(snap.ID); err != nil {
		t.Errorf("snapshot id %q is not a uuid", snap.ID)
	}
	if !snap.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", snap.CreatedAt, fixed)
	}

	got, err := st.Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Layout.Nodes[0].Label != "Core" || len(got.Layout.Edges) != 1 {
		t.Errorf("Get returned %+v", got.Layout)
	}

	// Mutating the returned layout must not affect the stored copy.
	got.Layout.Nodes[0].Label = "changed"
	again, _ := st.Get(ctx, snap.ID)
	if again.Layout.Nodes[0].Label != "Core" {
		t.Error("stored snapshot was mutated through Get result")
	}
}

func TestMemory_GetErrors(t *testing.T) {
	st := NewMemory()
	if _, err := st.Get(context.Background(), "not-a-uuid"); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("invalid id error = %v, want INVALID_INPUT", err)
	}
	missing := "4f9c1a7e-2b7d-4a44-9a53-0c2f4e6b8d10"
	if _, err := st.Get(context.Background(), missing); !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("unknown id error = %v, want NOT_FOUND", err)
	}
}

func TestMemory_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	for _, label := range []string{"first", "second", "third"} {
		if _, err := st.Save(ctx, sampleLayout(label)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	all, err := st.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].Layout.Nodes[0].Label != "third" || all[2].Layout.Nodes[0].Label != "first" {
		t.Errorf("List order wrong: %d entries", len(all))
	}

	two, _ := st.List(ctx, 2)
	if len(two) != 2 {
		t.Errorf("List(2) returned %d entries", len(two))
	}
}

func TestMemory_SaveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMemory().Save(ctx, sampleLayout("x")); err == nil {
		t.Error("expected error for cancelled context")
	}
}
