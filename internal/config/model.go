package config

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/gridsweep/internal/model"
)

// Model is the unified representation of every sweep found in the
// configured paths, in file order and then declaration order.
type Model struct {
	Sweeps []*model.Sweep
}

// Add appends sweeps, rejecting a name that is already taken.
func (m *Model) Add(sweeps ...*model.Sweep) error {
	for _, s := range sweeps {
		if prev := m.Lookup(s.Name); prev != nil {
			return &model.ConfigError{
				Source:   s.Source,
				Sweep:    s.Name,
				Reason:   fmt.Sprintf("sweep name already declared in %s", prev.Source),
				Position: -1,
			}
		}
		m.Sweeps = append(m.Sweeps, s)
	}
	return nil
}

// Lookup returns the sweep with the given name, or nil.
func (m *Model) Lookup(name string) *model.Sweep {
	for _, s := range m.Sweeps {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Select returns the named sweeps in model order. An empty name list selects
// every sweep. Unknown names are an error.
func (m *Model) Select(names ...string) ([]*model.Sweep, error) {
	if len(names) == 0 {
		return m.Sweeps, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if m.Lookup(n) == nil {
			return nil, fmt.Errorf("unknown sweep %q (available: %s)", n, strings.Join(m.Names(), ", "))
		}
		wanted[n] = true
	}

	var out []*model.Sweep
	for _, s := range m.Sweeps {
		if wanted[s.Name] {
			out = append(out, s)
		}
	}
	return out, nil
}

// Names returns the sweep names in model order.
func (m *Model) Names() []string {
	names := make([]string, len(m.Sweeps))
	for i, s := range m.Sweeps {
		names[i] = s.Name
	}
	return names
}
