package layout

import (
	"strings"

	apperrors "github.com/matzehuels/appgraph/pkg/errors"
	"github.com/matzehuels/appgraph/pkg/flow"
)

// Direction is the flow of ranks in a layout.
type Direction string

const (
	TopToBottom Direction = "TB"
	LeftToRight Direction = "LR"
)

// ParseDirection accepts "TB", "top-to-bottom", "LR" and "left-to-right"
// (case-insensitive). The empty string selects TopToBottom.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tb", "top-to-bottom":
		return TopToBottom, nil
	case "lr", "left-to-right":
		return LeftToRight, nil
	default:
		return "", apperrors.New(apperrors.ErrCodeInvalidInput, "unknown direction %q (want TB or LR)", s)
	}
}

// Sides returns the sides where edges leave (source) and enter (target) a
// node laid out in this direction.
func (d Direction) Sides() (source, target flow.Side) {
	if d == LeftToRight {
		return flow.SideRight, flow.SideLeft
	}
	return flow.SideBottom, flow.SideTop
}

func (d Direction) String() string {
	if d == "" {
		return string(TopToBottom)
	}
	return string(d)
}
