package fkgraph

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	AdjacencyFile = "fk_adjacency_list"
	SummaryFile   = "fk_summary"
	ReportFile    = "FK_DEPENDENCY_TREE.md"
)

// Format selects the encoding of the adjacency and summary artifacts.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q (want json or yaml)", s)
}

func (f Format) ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

func (f Format) marshal(v interface{}) ([]byte, error) {
	if f == FormatYAML {
		return yaml.Marshal(v)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteArtifacts writes the adjacency list and summary into dir and returns
// the paths written.
func WriteArtifacts(fs afero.Fs, dir string, g *Graph, format Format) ([]string, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	outputs := []struct {
		name  string
		value interface{}
	}{
		{AdjacencyFile, g.AdjacencyList()},
		{SummaryFile, g.Summary()},
	}

	var paths []string
	for _, out := range outputs {
		data, err := format.marshal(out.value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", out.name, err)
		}
		path := filepath.Join(dir, out.name+format.ext())
		if err := afero.WriteFile(fs, path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ReadAdjacency loads an adjacency list written by WriteArtifacts.
func ReadAdjacency(fs afero.Fs, path string) (*Graph, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read adjacency list %s: %w", path, err)
	}

	var list map[string][]AdjacencyEntry
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &list)
	default:
		err = json.Unmarshal(data, &list)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode adjacency list %s: %w", path, err)
	}
	return FromAdjacencyList(list), nil
}

// WriteReport renders the markdown analysis into dir.
func WriteReport(fs afero.Fs, dir string, a *Analysis, topN int) (string, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, ReportFile)
	if err := afero.WriteFile(fs, path, []byte(RenderMarkdown(a, topN)), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
