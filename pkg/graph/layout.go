package graph

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/gravitymap/pkg/errors"
)

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// The center must be present and positioned, and every positioned ID must
// pass [errors.ValidateNodeID].
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if l.Center == "" {
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout has no center")
	}
	if _, ok := l.Positions[l.Center]; !ok {
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout has no position for center %q", l.Center)
	}
	for id := range l.Positions {
		if err := errors.ValidateNodeID(id); err != nil {
			return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "layout position %q", id)
		}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s", path)
	}
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
