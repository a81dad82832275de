package fkgraph

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// LoadDir builds a graph from every .sql file directly under dir, in name
// order. An unreadable directory is an error; an unreadable or unparseable
// file only adds a diagnostic.
func LoadDir(fs afero.Fs, dir string, parser *Parser) (*Graph, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read FK directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	b := NewBuilder(parser)
	for _, name := range files {
		data, err := afero.ReadFile(fs, filepath.Join(dir, name))
		if err != nil {
			b.Fail(name, fmt.Sprintf("failed to read file: %v", err))
			continue
		}
		b.Add(name, string(data))
	}
	return b.Graph(), nil
}
