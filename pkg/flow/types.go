package flow

import (
	"fmt"

	apperrors "github.com/matzehuels/appgraph/pkg/errors"
)

// Node footprint shared by every node. The layout engine registers each node
// with this size and the renderer draws boxes of the same size.
const (
	NodeWidth  = 172.0
	NodeHeight = 36.0
)

// EdgeStyleSmoothStep is the rendering style of every built edge.
const EdgeStyleSmoothStep = "smoothstep"

// Side names the border of a node where edges attach.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Position is the top-left corner of a node's bounding box. The y axis grows
// downward.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is a single box of the diagram.
type Node struct {
	ID         string   `json:"id" bson:"id"`
	Label      string   `json:"label" bson:"label"`
	Type       string   `json:"type,omitempty" bson:"type,omitempty"`
	Width      float64  `json:"width" bson:"width"`
	Height     float64  `json:"height" bson:"height"`
	Position   Position `json:"position" bson:"position"`
	SourceSide Side     `json:"sourceSide,omitempty" bson:"source_side,omitempty"`
	TargetSide Side     `json:"targetSide,omitempty" bson:"target_side,omitempty"`
	Rank       int      `json:"rank" bson:"rank"`
}

// Center returns the midpoint of the node's bounding box.
func (n Node) Center() (x, y float64) {
	return n.Position.X + n.Width/2, n.Position.Y + n.Height/2
}

// Edge is a directed connection from SourceID to TargetID.
type Edge struct {
	ID       string `json:"id" bson:"id"`
	SourceID string `json:"sourceNodeId" bson:"source_node_id"`
	TargetID string `json:"targetNodeId" bson:"target_node_id"`
	Style    string `json:"style" bson:"style"`
	Animated bool   `json:"animated" bson:"animated"`
}

// EdgeID returns the identifier of the edge from source to target.
func EdgeID(source, target string) string {
	return fmt.Sprintf("e-%s-%s", source, target)
}

// NewEdge returns an animated smooth-step edge from source to target.
func NewEdge(source, target string) Edge {
	return Edge{
		ID:       EdgeID(source, target),
		SourceID: source,
		TargetID: target,
		Style:    EdgeStyleSmoothStep,
		Animated: true,
	}
}

// Layout is a positioned diagram together with the direction it was laid out
// in. Direction is empty for layouts that were never run through the engine.
type Layout struct {
	Direction string `json:"direction,omitempty" bson:"direction,omitempty"`
	Nodes     []Node `json:"nodes" bson:"nodes"`
	Edges     []Edge `json:"edges" bson:"edges"`
}

// Node returns the node with the given id.
func (l *Layout) Node(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Append adds a manually placed node without moving any existing node.
// Returns a DUPLICATE_NODE error if the id is already used.
func (l *Layout) Append(n Node) error {
	if n.ID == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "node id must not be empty")
	}
	if _, ok := l.Node(n.ID); ok {
		return apperrors.New(apperrors.ErrCodeDuplicateNode, "node %q already exists", n.ID)
	}
	l.Nodes = append(l.Nodes, n)
	return nil
}

// ValidateRefs checks that node ids are unique and that every edge endpoint
// names one of the nodes.
func ValidateRefs(nodes []Node, edges []Edge) error {
	ids := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if _, dup := ids[n.ID]; dup {
			return apperrors.New(apperrors.ErrCodeDuplicateNode, "node %q already exists", n.ID)
		}
		ids[n.ID] = struct{}{}
	}
	for _, e := range edges {
		if _, ok := ids[e.SourceID]; !ok {
			return danglingRef(e, e.SourceID)
		}
		if _, ok := ids[e.TargetID]; !ok {
			return danglingRef(e, e.TargetID)
		}
	}
	return nil
}

func danglingRef(e Edge, missing string) error {
	return apperrors.New(apperrors.ErrCodeDanglingReference, "edge %s references unknown node %q", e.ID, missing)
}
