package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/gridsweep/internal/ctxlog"
	"github.com/specialistvlad/gridsweep/internal/model"
)

// Decoder is the HCL implementation of config.Decoder.
type Decoder struct{}

// NewDecoder creates a new HCL sweep decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Extensions implements config.Decoder.
func (d *Decoder) Extensions() []string {
	return []string{".hcl"}
}

// fileRoot decodes all top-level blocks of a sweep file.
type fileRoot struct {
	Sweeps []*hclSweep `hcl:"sweep,block"`
}

// hclSweep is a single 'sweep' block before translation.
type hclSweep struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// Decode implements config.Decoder.
func (d *Decoder) Decode(ctx context.Context, filename string, src []byte) ([]*model.Sweep, error) {
	logger := ctxlog.FromContext(ctx).With("file", filename)
	logger.Debug("Decoding HCL sweep file.")

	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	sweeps := make([]*model.Sweep, 0, len(root.Sweeps))
	var allDiags hcl.Diagnostics
	for _, block := range root.Sweeps {
		s, sweepDiags := translateSweep(block, src)
		allDiags = append(allDiags, sweepDiags...)
		if sweepDiags.HasErrors() {
			continue // Keep collecting diagnostics from the remaining sweeps.
		}
		s.Source = filename

		for _, name := range s.Template.Axes() {
			if !s.Grid.Has(name) {
				logger.Warn("Sweep arguments reference an undeclared axis; every job of this sweep will fail to render.",
					"sweep", s.Name, "axis", name)
			}
		}
		sweeps = append(sweeps, s)
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}

	logger.Debug("Decoded HCL sweep file.", "sweeps", len(sweeps))
	return sweeps, nil
}
