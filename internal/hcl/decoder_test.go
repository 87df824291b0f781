package hcl

import (
	"context"
	"testing"

	"github.com/specialistvlad/gridsweep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func decode(t *testing.T, src string) ([]*model.Sweep, error) {
	t.Helper()
	return NewDecoder().Decode(context.Background(), "test.hcl", []byte(src))
}

func rawValues(axis model.ParameterAxis) []string {
	out := make([]string, len(axis.Values))
	for i, v := range axis.Values {
		out[i] = v.Raw
	}
	return out
}

func TestDecode_FullSweep(t *testing.T) {
	sweeps, err := decode(t, `
sweep "gbrt" {
  job_type = "gbrt"
  command  = ["python", "train.py"]

  axis "learning_rate" {
    values = [1.0, 0.9, 0.8, 1]
  }

  axis "loss" {
    values = ["ls", "huber"]
  }

  args = [
    "gbrt",
    axis.loss,
    { "--learning-rate" = axis.learning_rate },
    { "--seed=" = 42 },
    true,
  ]
}
`)
	require.NoError(t, err)
	require.Len(t, sweeps, 1)

	s := sweeps[0]
	assert.Equal(t, "gbrt", s.Name)
	assert.Equal(t, "test.hcl", s.Source)
	assert.Equal(t, []string{"python", "train.py"}, s.Template.Command)
	assert.Equal(t, []string{"learning_rate", "loss"}, s.Grid.Names())
	assert.Equal(t, []string{"1.0", "0.9", "0.8", "1"}, rawValues(s.Grid.Axes[0]))
	assert.True(t, s.Grid.Axes[0].Values[0].Type.Equals(cty.Number))
	assert.Equal(t, []string{"ls", "huber"}, rawValues(s.Grid.Axes[1]))

	require.Len(t, s.Template.Slots, 5)
	assert.Equal(t, model.LiteralSlot(model.String("gbrt")), s.Template.Slots[0])
	assert.Equal(t, model.AxisSlot("loss"), s.Template.Slots[1])
	assert.Equal(t, model.FlagSlot("--learning-rate", "learning_rate"), s.Template.Slots[2])
	assert.Equal(t, model.Slot{Flag: "--seed=", Joined: true, Literal: model.Number("42")}, s.Template.Slots[3])
	assert.Equal(t, model.LiteralSlot(model.Bool(true)), s.Template.Slots[4])
}

func TestDecode_Defaults(t *testing.T) {
	sweeps, err := decode(t, `
sweep "multiframe" {
  command = "python -m signal.multiframe --verbose"
  args    = ["--all"]
}
`)
	require.NoError(t, err)
	require.Len(t, sweeps, 1)

	s := sweeps[0]
	assert.Equal(t, "multiframe", s.Template.JobType, "job type defaults to the sweep label")
	assert.Equal(t, []string{"python", "-m", "signal.multiframe", "--verbose"}, s.Template.Command)
	assert.Empty(t, s.Grid.Axes)
}

func TestDecode_NegativeAndExponentNumbers(t *testing.T) {
	sweeps, err := decode(t, `
sweep "x" {
  axis "v" {
    values = [-1, 1e-3, 0.10]
  }
}
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"-1", "1e-3", "0.10"}, rawValues(sweeps[0].Grid.Axes[0]))
}

func TestDecode_MultipleSweepsKeepOrder(t *testing.T) {
	sweeps, err := decode(t, `
sweep "et" {}
sweep "rf" {}
`)
	require.NoError(t, err)
	require.Len(t, sweeps, 2)
	assert.Equal(t, "et", sweeps[0].Name)
	assert.Equal(t, "rf", sweeps[1].Name)
}

func TestDecode_UndeclaredAxisIsLeftToRendering(t *testing.T) {
	sweeps, err := decode(t, `
sweep "et" {
  axis "max_features" {
    values = [2500]
  }
  args = [axis.n_estimators]
}
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"n_estimators"}, sweeps[0].Template.Axes())
}

func TestDecode_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax error",
			src:     `sweep "a" {`,
			wantErr: "failed to parse HCL file test.hcl",
		},
		{
			name:    "unknown top-level block",
			src:     `step "a" "b" {}`,
			wantErr: "failed to decode HCL file test.hcl",
		},
		{
			name:    "values must be a list",
			src: `
sweep "a" {
  axis "x" {
    values = "abc"
  }
}`,
			wantErr: "static list expression is required",
		},
		{
			name:    "values must be constants",
			src: `
sweep "a" {
  axis "x" {
    values = [var.foo]
  }
}`,
			wantErr: "Only constant strings, numbers and bools are allowed here",
		},
		{
			name:    "missing values",
			src: `
sweep "a" {
  axis "x" {
  }
}`,
			wantErr: `The argument "values" is required`,
		},
		{
			name: "parenthesized number",
			src: `
sweep "a" {
  axis "x" {
    values = [(1.0)]
  }
}`,
			wantErr: "Only constant strings, numbers and bools are allowed here",
		},
		{
			name: "arithmetic value",
			src: `
sweep "a" {
  axis "x" {
    values = [1, 2 * 3]
  }
}`,
			wantErr: "Only constant strings, numbers and bools are allowed here",
		},
		{
			name: "interpolated string",
			src: `
sweep "a" {
  axis "x" {
    values = ["a${"b"}"]
  }
}`,
			wantErr: "Only constant strings, numbers and bools are allowed here",
		},
		{
			name:    "expression as flag value",
			src:     `sweep "a" { args = [{ "--n" = 4 + 1 }] }`,
			wantErr: "Only constant strings, numbers and bools are allowed here",
		},
		{
			name:    "reference outside axis",
			src:     `sweep "a" { args = [var.foo] }`,
			wantErr: "Invalid axis reference",
		},
		{
			name:    "flag object with two entries",
			src:     `sweep "a" { args = [{ "--a" = 1, "--b" = 2 }] }`,
			wantErr: "exactly one entry",
		},
		{
			name:    "nested flag object",
			src:     `sweep "a" { args = [{ "--a" = { "--b" = 2 } }] }`,
			wantErr: "must be a constant or an axis reference",
		},
		{
			name:    "unbalanced command quote",
			src:     `sweep "a" { command = "python 'train.py" }`,
			wantErr: "Invalid command",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decode(t, tc.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
