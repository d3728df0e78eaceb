package builder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/appgraph/pkg/apps"
	apperrors "github.com/matzehuels/appgraph/pkg/errors"
	"github.com/matzehuels/appgraph/pkg/flow"
)

// IDStrategy selects how node ids are derived from records.
type IDStrategy string

const (
	// Composite ids are "{appId}-{index}" and are unique by construction.
	Composite IDStrategy = "composite"

	// Raw ids are the appId itself.
	//
	// Deprecated: a repeated appId is rejected instead of producing two
	// nodes. Use Composite.
	Raw IDStrategy = "raw"
)

// ParseIDStrategy converts a flag or config value to an IDStrategy.
// The empty string selects Composite.
func ParseIDStrategy(s string) (IDStrategy, error) {
	switch IDStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Composite:
		return Composite, nil
	case Raw:
		return Raw, nil
	default:
		return "", apperrors.New(apperrors.ErrCodeInvalidInput, "unknown id strategy %q (want composite or raw)", s)
	}
}

// Options configures Build. The zero value uses Composite ids.
type Options struct {
	IDStrategy IDStrategy
}

// Build converts records into star-graph nodes and edges.
//
// Node labels are the record names verbatim. Nodes carry the fixed 172×36
// footprint but no position and no sides. Build is deterministic: the same
// records always produce the same ids in the same order.
//
// Errors:
//   - INVALID_TOPOLOGY when zero records (including an empty input) or more
//     than one record are marked primary
//   - DUPLICATE_NODE when the Raw strategy sees an appId twice
//   - DANGLING_REFERENCE if an edge endpoint does not name a built node
func Build(records []apps.Record, opts Options) ([]flow.Node, []flow.Edge, error) {
	strategy := opts.IDStrategy
	if strategy == "" {
		strategy = Composite
	}
	if strategy != Composite && strategy != Raw {
		return nil, nil, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown id strategy %q", strategy)
	}

	primary, err := findPrimary(records)
	if err != nil {
		return nil, nil, err
	}

	nodes := make([]flow.Node, len(records))
	seen := make(map[string]int, len(records))
	for i, rec := range records {
		id := nodeID(strategy, rec, i)
		if first, dup := seen[id]; dup {
			return nil, nil, apperrors.New(apperrors.ErrCodeDuplicateNode,
				"appId %q appears at records %d and %d; use composite ids", rec.AppID, first, i)
		}
		seen[id] = i
		nodes[i] = flow.Node{
			ID:     id,
			Label:  rec.Name,
			Width:  flow.NodeWidth,
			Height: flow.NodeHeight,
		}
	}

	edges := make([]flow.Edge, 0, len(records)-1)
	hub := nodes[primary].ID
	for i := range records {
		if i == primary {
			continue
		}
		edges = append(edges, flow.NewEdge(hub, nodes[i].ID))
	}

	if err := flow.ValidateRefs(nodes, edges); err != nil {
		return nil, nil, err
	}
	return nodes, edges, nil
}

func findPrimary(records []apps.Record) (int, error) {
	switch n := apps.PrimaryCount(records); n {
	case 1:
		return slices.IndexFunc(records, func(r apps.Record) bool { return r.IsPrimary }), nil
	case 0:
		return -1, apperrors.New(apperrors.ErrCodeInvalidTopology, "no primary application among %d records", len(records))
	default:
		var all []string
		for _, rec := range records {
			if rec.IsPrimary {
				all = append(all, rec.AppID)
			}
		}
		return -1, apperrors.New(apperrors.ErrCodeInvalidTopology, "expected exactly one primary application, found %d (%s)",
			n, strings.Join(all, ", "))
	}
}

func nodeID(strategy IDStrategy, rec apps.Record, index int) string {
	if strategy == Raw {
		return rec.AppID
	}
	return fmt.Sprintf("%s-%d", rec.AppID, index)
}
