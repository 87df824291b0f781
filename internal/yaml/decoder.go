// Package yaml provides the YAML implementation of config.Decoder. The file
// layout mirrors the HCL one:
//
//	sweeps:
//	  - name: gbrt
//	    command: [python, train.py]
//	    axes:
//	      - name: learning_rate
//	        values: [1.0, 0.9, 0.8]
//	    args:
//	      - gbrt
//	      - flag: --learning-rate
//	        axis: learning_rate
//	      - flag: --seed=
//	        value: 42
//
// Scalars keep the spelling they have in the file.
package yaml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/specialistvlad/gridsweep/internal/ctxlog"
	"github.com/specialistvlad/gridsweep/internal/model"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Decoder is the YAML implementation of config.Decoder.
type Decoder struct{}

// NewDecoder creates a new YAML sweep decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Extensions implements config.Decoder.
func (d *Decoder) Extensions() []string {
	return []string{".yaml", ".yml"}
}

type yamlFile struct {
	Sweeps []yamlSweep `yaml:"sweeps"`
}

type yamlSweep struct {
	Name    string      `yaml:"name"`
	JobType string      `yaml:"job_type"`
	Command yaml.Node   `yaml:"command"`
	Axes    []yamlAxis  `yaml:"axes"`
	Args    []yaml.Node `yaml:"args"`
}

type yamlAxis struct {
	Name   string      `yaml:"name"`
	Values []yaml.Node `yaml:"values"`
}

// yamlFlagArg is the mapping form of an argument.
type yamlFlagArg struct {
	Flag   string    `yaml:"flag"`
	Axis   string    `yaml:"axis"`
	Value  yaml.Node `yaml:"value"`
	Joined *bool     `yaml:"joined"`
}

// Decode implements config.Decoder.
func (d *Decoder) Decode(ctx context.Context, filename string, src []byte) ([]*model.Sweep, error) {
	logger := ctxlog.FromContext(ctx).With("file", filename)
	logger.Debug("Decoding YAML sweep file.")

	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var file yamlFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filename, err)
	}

	sweeps := make([]*model.Sweep, 0, len(file.Sweeps))
	for i, ys := range file.Sweeps {
		s, err := translateSweep(ys)
		if err != nil {
			return nil, fmt.Errorf("%s: sweep #%d: %w", filename, i, err)
		}
		s.Source = filename
		sweeps = append(sweeps, s)
	}

	logger.Debug("Decoded YAML sweep file.", "sweeps", len(sweeps))
	return sweeps, nil
}

func translateSweep(ys yamlSweep) (*model.Sweep, error) {
	s := &model.Sweep{
		Name:     ys.Name,
		Template: model.CommandTemplate{JobType: ys.JobType},
	}
	if s.Template.JobType == "" {
		s.Template.JobType = ys.Name
	}

	command, err := translateCommand(&ys.Command)
	if err != nil {
		return nil, err
	}
	s.Template.Command = command

	for _, ya := range ys.Axes {
		axis := model.ParameterAxis{Name: ya.Name}
		for j := range ya.Values {
			lit, err := translateLiteral(&ya.Values[j])
			if err != nil {
				return nil, fmt.Errorf("axis %q: %w", ya.Name, err)
			}
			axis.Values = append(axis.Values, lit)
		}
		s.Grid.Axes = append(s.Grid.Axes, axis)
	}

	for j := range ys.Args {
		slot, err := translateSlot(&ys.Args[j])
		if err != nil {
			return nil, fmt.Errorf("args[%d]: %w", j, err)
		}
		s.Template.Slots = append(s.Template.Slots, slot)
	}

	return s, nil
}

// translateCommand accepts a sequence of words or a single shell-like string.
func translateCommand(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		words, err := shellquote.Split(node.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid command: %w", node.Line, err)
		}
		return words, nil
	case yaml.SequenceNode:
		var words []string
		if err := node.Decode(&words); err != nil {
			return nil, fmt.Errorf("line %d: invalid command: %w", node.Line, err)
		}
		return words, nil
	}
	return nil, fmt.Errorf("line %d: command must be a string or a list of strings", node.Line)
}

func translateSlot(node *yaml.Node) (model.Slot, error) {
	if node.Kind == yaml.ScalarNode {
		lit, err := translateLiteral(node)
		return model.LiteralSlot(lit), err
	}
	if node.Kind != yaml.MappingNode {
		return model.Slot{}, fmt.Errorf("line %d: an argument must be a scalar or a mapping", node.Line)
	}

	var arg yamlFlagArg
	if err := node.Decode(&arg); err != nil {
		return model.Slot{}, fmt.Errorf("line %d: %w", node.Line, err)
	}

	hasValue := arg.Value.Kind != 0
	if (arg.Axis == "") == !hasValue {
		return model.Slot{}, fmt.Errorf("line %d: an argument mapping needs exactly one of 'axis' or 'value'", node.Line)
	}

	slot := model.Slot{Flag: arg.Flag, Axis: arg.Axis}
	if hasValue {
		lit, err := translateLiteral(&arg.Value)
		if err != nil {
			return model.Slot{}, err
		}
		slot.Literal = lit
	}

	if arg.Joined != nil {
		slot.Joined = *arg.Joined
	} else {
		slot.Joined = strings.HasSuffix(arg.Flag, "=")
	}
	if slot.Joined && slot.Flag == "" {
		return model.Slot{}, fmt.Errorf("line %d: 'joined' requires a 'flag'", node.Line)
	}
	return slot, nil
}

// translateLiteral converts a scalar node into a Literal using its resolved
// tag for the type and its source text for the value.
func translateLiteral(node *yaml.Node) (model.Literal, error) {
	if node.Kind != yaml.ScalarNode {
		return model.Literal{}, fmt.Errorf("line %d: expected a scalar value", node.Line)
	}

	switch node.ShortTag() {
	case "!!str":
		return model.String(node.Value), nil
	case "!!int", "!!float":
		return model.Number(node.Value), nil
	case "!!bool":
		if _, err := strconv.ParseBool(node.Value); err != nil {
			return model.Literal{}, fmt.Errorf("line %d: invalid bool %q", node.Line, node.Value)
		}
		return model.Literal{Raw: node.Value, Type: cty.Bool}, nil
	case "!!null":
		return model.Literal{}, fmt.Errorf("line %d: null is not a valid value", node.Line)
	}
	return model.Literal{}, fmt.Errorf("line %d: unsupported value %q with tag %s", node.Line, node.Value, node.ShortTag())
}
