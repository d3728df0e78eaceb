package builder

import (
	"slices"
	"testing"

	"github.com/matzehuels/appgraph/pkg/apps"
	apperrors "github.com/matzehuels/appgraph/pkg/errors"
	"github.com/matzehuels/appgraph/pkg/flow"
)

func sampleRecords() []apps.Record {
	return []apps.Record{
		{AppID: "A", Name: "Core", IsPrimary: true},
		{AppID: "B", Name: "Billing"},
		{AppID: "C", Name: "Auth"},
	}
}

func TestBuild_Star(t *testing.T) {
	nodes, edges, err := Build(sampleRecords(), Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	if want := []string{"A-0", "B-1", "C-2"}; !slices.Equal(ids, want) {
		t.Errorf("node ids = %v, want %v", ids, want)
	}

	if len(edges) != 2 {
		t.Fatalf("len(edges) = %d, want 2", len(edges))
	}
	if edges[0].ID != "e-A-0-B-1" || edges[1].ID != "e-A-0-C-2" {
		t.Errorf("edge ids = %s, %s", edges[0].ID, edges[1].ID)
	}

	incoming := map[string]int{}
	for _, e := range edges {
		if e.SourceID != "A-0" {
			t.Errorf("edge %s starts at %s, want primary A-0", e.ID, e.SourceID)
		}
		if e.Style != flow.EdgeStyleSmoothStep || !e.Animated {
			t.Errorf("edge %s style=%q animated=%v", e.ID, e.Style, e.Animated)
		}
		incoming[e.TargetID]++
	}
	if incoming["A-0"] != 0 || incoming["B-1"] != 1 || incoming["C-2"] != 1 {
		t.Errorf("incoming counts = %v", incoming)
	}
}

func TestBuild_NodeFields(t *testing.T) {
	records := []apps.Record{
		{AppID: "hub", Name: "<b>Hub & Co</b>", IsPrimary: true},
	}
	nodes, edges, err := Build(records, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("single primary should produce no edges, got %d", len(edges))
	}
	n := nodes[0]
	if n.Label != "<b>Hub & Co</b>" {
		t.Errorf("label = %q, want name verbatim", n.Label)
	}
	if n.Width != flow.NodeWidth || n.Height != flow.NodeHeight {
		t.Errorf("size = %vx%v", n.Width, n.Height)
	}
	if n.Position != (flow.Position{}) || n.SourceSide != "" || n.TargetSide != "" {
		t.Errorf("builder must not position nodes: %+v", n)
	}
}

func TestBuild_TopologyErrors(t *testing.T) {
	tests := []struct {
		name    string
		records []apps.Record
	}{
		{"Empty", []apps.Record{}},
		{"Nil", nil},
		{"NoPrimary", []apps.Record{{AppID: "A"}, {AppID: "B"}}},
		{"TwoPrimaries", []apps.Record{{AppID: "A", IsPrimary: true}, {AppID: "B", IsPrimary: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, edges, err := Build(tt.records, Options{})
			if !apperrors.Is(err, apperrors.ErrCodeInvalidTopology) {
				t.Fatalf("error = %v, want INVALID_TOPOLOGY", err)
			}
			if nodes != nil || edges != nil {
				t.Errorf("partial result returned: %v %v", nodes, edges)
			}
		})
	}
}

func TestBuild_DuplicateAppID(t *testing.T) {
	records := []apps.Record{
		{AppID: "A", Name: "Core", IsPrimary: true},
		{AppID: "A", Name: "Core replica"},
	}

	nodes, edges, err := Build(records, Options{IDStrategy: Composite})
	if err != nil {
		t.Fatalf("composite: %v", err)
	}
	if len(nodes) != 2 || nodes[0].ID == nodes[1].ID {
		t.Errorf("composite nodes = %+v, want two distinct nodes", nodes)
	}
	if len(edges) != 1 || edges[0].ID != "e-A-0-A-1" {
		t.Errorf("composite edges = %+v", edges)
	}

	if _, _, err := Build(records, Options{IDStrategy: Raw}); !apperrors.Is(err, apperrors.ErrCodeDuplicateNode) {
		t.Errorf("raw error = %v, want DUPLICATE_NODE", err)
	}
}

func TestBuild_RawIDs(t *testing.T) {
	nodes, edges, err := Build(sampleRecords(), Options{IDStrategy: Raw})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if nodes[0].ID != "A" || edges[0].ID != "e-A-B" {
		t.Errorf("raw ids: node %s edge %s", nodes[0].ID, edges[0].ID)
	}
}

func TestBuild_PrimaryNotFirst(t *testing.T) {
	records := []apps.Record{
		{AppID: "x", Name: "X"},
		{AppID: "p", Name: "P", IsPrimary: true},
		{AppID: "y", Name: "Y"},
	}
	_, edges, err := Build(records, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := []string{edges[0].ID, edges[1].ID}
	if want := []string{"e-p-1-x-0", "e-p-1-y-2"}; !slices.Equal(got, want) {
		t.Errorf("edges = %v, want %v", got, want)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	n1, e1, _ := Build(sampleRecords(), Options{})
	n2, e2, _ := Build(sampleRecords(), Options{})
	if !slices.Equal(n1, n2) || !slices.Equal(e1, e2) {
		t.Error("two builds of the same input differ")
	}
}

func TestBuild_UnknownStrategy(t *testing.T) {
	if _, _, err := Build(sampleRecords(), Options{IDStrategy: "hash"}); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestParseIDStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    IDStrategy
		wantErr bool
	}{
		{"", Composite, false},
		{"composite", Composite, false},
		{"RAW", Raw, false},
		{" raw ", Raw, false},
		{"uuid", "", true},
	}
	for _, tt := range tests {
		got, err := ParseIDStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIDStrategy(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseIDStrategy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
