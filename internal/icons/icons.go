// Package icons resolves icon names from bullet tags to PNG files on disk.
package icons

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Catalog maps icon names to PNG files in a directory. The name of an icon
// is its file stem, so "[[shield]]" resolves to shield.png. A Catalog is
// immutable after Load and safe for concurrent readers.
type Catalog struct {
	dir   string
	files map[string]string // normalized name -> filename
}

// Load scans a directory for PNG icons. An empty dir yields an empty
// catalog, so rendering without icons installed degrades instead of failing.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{dir: dir, files: make(map[string]string)}
	if dir == "" {
		return c, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading icon directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		c.files[Normalize(stem)] = entry.Name()
	}
	return c, nil
}

// Normalize maps an icon tag to catalog form: lower case with hyphens for
// spaces and underscores.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "-")
	return strings.ReplaceAll(name, "_", "-")
}

// Has reports whether the catalog holds an icon for the name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.files[Normalize(name)]
	return ok
}

// Lookup reads the PNG bytes for an icon name.
func (c *Catalog) Lookup(name string) ([]byte, bool) {
	file, ok := c.files[Normalize(name)]
	if !ok {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(c.dir, file))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Names lists the catalog's icon names, sorted.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.files))
	for name := range c.files {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns how many icons are installed.
func (c *Catalog) Len() int {
	return len(c.files)
}
