// Package presets ships the built-in sweeps for the supported model
// families, embedded in the binary as HCL files.
package presets

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/specialistvlad/gridsweep/internal/config"
	"github.com/specialistvlad/gridsweep/internal/hcl"
)

//go:embed sweeps/*.hcl
var files embed.FS

const dir = "sweeps"

// Names returns the available preset names, sorted.
func Names() []string {
	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		panic(fmt.Sprintf("presets: embedded directory unreadable: %v", err))
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Load decodes the named presets into a model. Sweep sources are reported as
// `preset:<name>`.
func Load(ctx context.Context, names ...string) (*config.Model, error) {
	decoder := hcl.NewDecoder()
	m := &config.Model{}

	for _, name := range names {
		src, err := files.ReadFile(path.Join(dir, name+".hcl"))
		if err != nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(Names(), ", "))
		}

		sweeps, err := decoder.Decode(ctx, "preset:"+name, src)
		if err != nil {
			return nil, fmt.Errorf("failed to decode preset %q: %w", name, err)
		}
		for _, s := range sweeps {
			if err := s.Validate(); err != nil {
				return nil, err
			}
		}
		if err := m.Add(sweeps...); err != nil {
			return nil, err
		}
	}

	return m, nil
}
