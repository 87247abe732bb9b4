// Package filesystem lists animation sources stored as files in a directory.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"artbind/internal/ports"
)

var sourceRegex = regexp.MustCompile(`^([^.].*)\.ya?ml$`)

// Catalog implements ports.SourceCatalog over one directory. Hidden files
// and subdirectories are ignored.
type Catalog struct {
	dir string
}

var _ ports.SourceCatalog = (*Catalog)(nil)

// NewCatalog creates a catalog rooted at dir
func NewCatalog(dir string) *Catalog {
	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~") {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, dir[1:])
	}
	return &Catalog{dir: dir}
}

// Dir returns the catalog directory
func (c *Catalog) Dir() string {
	return c.dir
}

// List returns every source in the directory sorted by name
func (c *Catalog) List(ctx context.Context) ([]ports.SourceInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources: %w", err)
	}

	var sources []ports.SourceInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matches := sourceRegex.FindStringSubmatch(entry.Name())
		if matches == nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// removed while listing
			continue
		}

		sources = append(sources, ports.SourceInfo{
			Name:     matches[1],
			Path:     filepath.Join(c.dir, entry.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(sources, func(i, j int) bool {
		if sources[i].Name != sources[j].Name {
			return sources[i].Name < sources[j].Name
		}
		return sources[i].Path < sources[j].Path
	})

	return sources, nil
}

// Find returns the source named name. name may carry its extension.
func (c *Catalog) Find(ctx context.Context, name string) (ports.SourceInfo, error) {
	sources, err := c.List(ctx)
	if err != nil {
		return ports.SourceInfo{}, err
	}

	for _, s := range sources {
		if s.Name == name || filepath.Base(s.Path) == name {
			return s, nil
		}
	}
	return ports.SourceInfo{}, fmt.Errorf("source %s not found in %s: %w", name, c.dir, fs.ErrNotExist)
}
