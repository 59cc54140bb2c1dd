package graph

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gravitymap/pkg/errors"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a Graph to indented JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a Graph as JSON to an io.Writer.
func WriteGraph(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	return nil
}

// WriteGraphFile writes a Graph to a file. The format follows the file
// extension (.yaml/.yml for YAML, anything else JSON).
func WriteGraphFile(g Graph, path string) error {
	var (
		data []byte
		err  error
	)
	if FormatFromPath(path) == FormatYAML {
		data, err = yaml.Marshal(g)
	} else {
		data, err = MarshalGraph(g)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	return os.WriteFile(path, data, 0644)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	return g, nil
}

// ReadGraphFile reads a graph file, choosing JSON or YAML by extension.
func ReadGraphFile(path string) (Graph, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", path)
	}
	if err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return UnmarshalGraph(data, FormatFromPath(path))
}

// UnmarshalGraph decodes graph bytes in the given format ("json" or "yaml").
func UnmarshalGraph(data []byte, format string) (Graph, error) {
	var g Graph
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &g); err != nil {
			return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml graph")
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &g); err != nil {
			return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json graph")
		}
	default:
		return Graph{}, errors.New(errors.ErrCodeUnsupported, "unsupported graph format %q", format)
	}
	return g, nil
}

// FormatFromPath returns FormatYAML for .yaml/.yml paths and FormatJSON otherwise.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
