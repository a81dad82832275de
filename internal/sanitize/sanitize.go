// Package sanitize strips whitespace from file names in a DDL tree, so the
// scripts can be referenced from shell tooling without quoting.
package sanitize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/afero"
)

type Status string

const (
	StatusPreview  Status = "preview"
	StatusRenamed  Status = "renamed"
	StatusConflict Status = "conflict"
	StatusFailed   Status = "failed"
)

type Rename struct {
	Dir    string
	Old    string
	New    string
	Status Status
	Err    error
}

type Result struct {
	Renames   []Rename
	Renamed   int
	Unchanged int
	Conflicts int
	Errors    int
}

// FileName removes every Unicode whitespace rune from name.
func FileName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
}

// Run walks root and renames files whose name contains whitespace. With
// dryRun set nothing is touched and planned renames are reported as previews.
// Directories keep their names.
func Run(fs afero.Fs, root string, dryRun bool) (*Result, error) {
	info, err := fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	// Collect first: renaming while walking would revisit entries.
	type candidate struct{ dir, name string }
	var candidates []candidate
	result := &Result{}

	err = afero.Walk(fs, root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return nil
		}
		if FileName(fi.Name()) == fi.Name() {
			result.Unchanged++
			return nil
		}
		candidates = append(candidates, candidate{dir: filepath.Dir(path), name: fi.Name()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	for _, c := range candidates {
		r := Rename{Dir: c.dir, Old: c.name, New: FileName(c.name)}
		oldPath := filepath.Join(c.dir, r.Old)
		newPath := filepath.Join(c.dir, r.New)

		exists, err := afero.Exists(fs, newPath)
		switch {
		case err != nil:
			r.Status, r.Err = StatusFailed, err
			result.Errors++
		case exists:
			r.Status = StatusConflict
			result.Conflicts++
		case dryRun:
			r.Status = StatusPreview
			result.Renamed++
		default:
			if err := fs.Rename(oldPath, newPath); err != nil {
				r.Status, r.Err = StatusFailed, err
				result.Errors++
			} else {
				r.Status = StatusRenamed
				result.Renamed++
			}
		}
		result.Renames = append(result.Renames, r)
	}
	return result, nil
}
