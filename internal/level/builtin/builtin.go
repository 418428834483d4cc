// Package builtin registers the levels shipped with the binary, plus any
// level files found in a user level directory.
package builtin

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/uberjump/internal/level"
	"github.com/vovakirdan/uberjump/internal/registry"
)

//go:embed level01.yaml level02.toml
var files embed.FS

// ids lists the embedded levels in file order, filled by init.
var ids []string

func init() {
	entries, err := files.ReadDir(".")
	if err != nil {
		panic(fmt.Sprintf("builtin: reading embedded levels: %v", err))
	}
	for _, e := range entries {
		name := e.Name()
		data, err := files.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("builtin: reading %s: %v", name, err))
		}
		desc, err := level.Parse(data, path.Ext(name))
		if err != nil {
			panic(fmt.Sprintf("builtin: %s: %v", name, err))
		}
		register(desc, func() (level.Description, error) {
			return level.Parse(data, path.Ext(name))
		})
		ids = append(ids, strings.TrimSuffix(name, path.Ext(name)))
	}
}

func register(desc level.Description, f registry.Factory) {
	registry.Register(desc.ID, desc.Name, f)
}

// RegisterDir registers every supported level file in dir and returns
// the IDs it added. Files whose ID is already taken are skipped.
func RegisterDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("builtin: reading level dir: %w", err)
	}

	var added []string
	for _, e := range entries {
		if e.IsDir() || !level.Supported(filepath.Ext(e.Name())) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		desc, err := level.LoadFile(p)
		if err != nil {
			return added, err
		}
		if registry.Exists(desc.ID) {
			continue
		}
		register(desc, func() (level.Description, error) {
			return level.LoadFile(p)
		})
		added = append(added, desc.ID)
	}
	sort.Strings(added)
	return added, nil
}

// IDs returns the IDs of the embedded levels.
func IDs() []string {
	return slices.Clone(ids)
}
