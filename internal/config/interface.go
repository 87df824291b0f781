package config

import (
	"context"

	"github.com/specialistvlad/gridsweep/internal/model"
)

// Loader reads sweep definitions from paths and returns the unified model.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Decoder turns the contents of one file into sweeps.
type Decoder interface {
	// Extensions lists the file extensions the decoder handles, including
	// the leading dot.
	Extensions() []string
	// Decode parses src, read from filename, into sweeps in declaration
	// order.
	Decode(ctx context.Context, filename string, src []byte) ([]*model.Sweep, error)
}
