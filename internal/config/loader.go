package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/gridsweep/internal/ctxlog"
	"github.com/specialistvlad/gridsweep/internal/fsutil"
)

// FileLoader discovers sweep files under the given paths and routes each one
// to the decoder registered for its extension.
type FileLoader struct {
	decoders map[string]Decoder
}

// NewFileLoader creates a loader for the given decoders. A later decoder
// overrides an earlier one for the same extension.
func NewFileLoader(decoders ...Decoder) *FileLoader {
	l := &FileLoader{decoders: make(map[string]Decoder)}
	for _, d := range decoders {
		for _, ext := range d.Extensions() {
			l.decoders[strings.ToLower(ext)] = d
		}
	}
	return l
}

// Extensions returns every extension the loader can decode.
func (l *FileLoader) Extensions() []string {
	exts := make([]string, 0, len(l.decoders))
	for ext := range l.decoders {
		exts = append(exts, ext)
	}
	return exts
}

// Load walks every path, decodes each supported file and validates the
// resulting sweeps. A path that does not exist is an error; a directory with
// no sweep files yields an empty model.
func (l *FileLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Sweep loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to find sweep files: %w", err)
	}
	logger.Debug("Discovered sweep files.", "count", len(files))

	m := &Model{}
	for _, file := range files {
		decoder, ok := l.decoders[strings.ToLower(filepath.Ext(file))]
		if !ok {
			return nil, fmt.Errorf("unsupported sweep file %s: no decoder for extension %q", file, filepath.Ext(file))
		}

		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read sweep file %s: %w", file, err)
		}

		sweeps, err := decoder.Decode(ctx, file, src)
		if err != nil {
			return nil, fmt.Errorf("failed to decode sweep file %s: %w", file, err)
		}
		for _, s := range sweeps {
			if err := s.Validate(); err != nil {
				return nil, err
			}
		}
		if err := m.Add(sweeps...); err != nil {
			return nil, err
		}
		logger.Debug("Loaded sweeps from file.", "file", file, "sweeps", len(sweeps))
	}

	if len(m.Sweeps) == 0 {
		logger.Warn("No sweeps found in configured paths.", "paths", paths)
	}
	return m, nil
}
