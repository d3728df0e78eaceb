package flow

import (
	"encoding/json"
	"os"

	apperrors "github.com/matzehuels/appgraph/pkg/errors"
)

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	if l.Nodes == nil {
		l.Nodes = []Node{}
	}
	if l.Edges == nil {
		l.Edges = []Edge{}
	}
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout and validates its
// references.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := ValidateRefs(l.Nodes, l.Edges); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Layout{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return Layout{}, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return Unmarshal(data)
}
