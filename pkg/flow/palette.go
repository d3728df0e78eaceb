package flow

import (
	"fmt"
	"slices"
	"time"

	apperrors "github.com/matzehuels/appgraph/pkg/errors"
)

// Palette node types offered by the editor.
const (
	TypeInput   = "input"
	TypeDefault = "default"
	TypeOutput  = "output"
)

// PaletteTypes lists the node types a user can drop onto a layout.
var PaletteTypes = []string{TypeInput, TypeDefault, TypeOutput}

// IsPaletteType reports whether t is one of PaletteTypes.
func IsPaletteType(t string) bool {
	return slices.Contains(PaletteTypes, t)
}

// NewPaletteNode creates a manually placed node of the given palette type at
// pos. The id is "{type}-{unix millis}" of now, so two nodes of one type
// created in the same millisecond share an id and [Layout.Append] rejects the
// second with DUPLICATE_NODE.
func NewPaletteNode(nodeType string, pos Position, now time.Time) (Node, error) {
	if !IsPaletteType(nodeType) {
		return Node{}, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown node type %q (want one of %v)", nodeType, PaletteTypes)
	}
	return Node{
		ID:       fmt.Sprintf("%s-%d", nodeType, now.UnixMilli()),
		Label:    nodeType + " node",
		Type:     nodeType,
		Width:    NodeWidth,
		Height:   NodeHeight,
		Position: pos,
	}, nil
}
