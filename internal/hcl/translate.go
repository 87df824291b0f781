package hcl

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/kballard/go-shellquote"
	"github.com/specialistvlad/gridsweep/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// axisRoot is the root name of a traversal that references an axis.
const axisRoot = "axis"

var sweepBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "job_type"},
		{Name: "command"},
		{Name: "args"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "axis", LabelNames: []string{"name"}},
	},
}

var axisBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "values", Required: true},
	},
}

// translateSweep converts one parsed sweep block into the model.
func translateSweep(block *hclSweep, src []byte) (*model.Sweep, hcl.Diagnostics) {
	content, diags := block.Body.Content(sweepBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	s := &model.Sweep{
		Name:     block.Name,
		Template: model.CommandTemplate{JobType: block.Name},
	}

	if attr, ok := content.Attributes["job_type"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &s.Template.JobType)...)
	}

	if attr, ok := content.Attributes["command"]; ok {
		var cmdDiags hcl.Diagnostics
		s.Template.Command, cmdDiags = translateCommand(attr.Expr)
		diags = append(diags, cmdDiags...)
	}

	for _, axisBlock := range content.Blocks {
		axis, axisDiags := translateAxis(axisBlock, src)
		diags = append(diags, axisDiags...)
		s.Grid.Axes = append(s.Grid.Axes, axis)
	}

	if attr, ok := content.Attributes["args"]; ok {
		exprs, listDiags := hcl.ExprList(attr.Expr)
		diags = append(diags, listDiags...)
		for _, expr := range exprs {
			slot, slotDiags := translateSlot(expr, src)
			diags = append(diags, slotDiags...)
			s.Template.Slots = append(s.Template.Slots, slot)
		}
	}

	return s, diags
}

// translateCommand accepts either a list of strings or a single string that
// is split the way a POSIX shell would.
func translateCommand(expr hcl.Expression) ([]string, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	if val.Type() == cty.String {
		words, err := shellquote.Split(val.AsString())
		if err != nil {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid command",
				Detail:   fmt.Sprintf("The command string could not be split into words: %s.", err),
				Subject:  expr.Range().Ptr(),
			}}
		}
		return words, nil
	}

	var words []string
	diags = gohcl.DecodeExpression(expr, nil, &words)
	return words, diags
}

// translateAxis converts an 'axis' block into a ParameterAxis.
func translateAxis(block *hcl.Block, src []byte) (model.ParameterAxis, hcl.Diagnostics) {
	axis := model.ParameterAxis{Name: block.Labels[0]}

	content, diags := block.Body.Content(axisBodySchema)
	if diags.HasErrors() {
		return axis, diags
	}

	exprs, listDiags := hcl.ExprList(content.Attributes["values"].Expr)
	diags = append(diags, listDiags...)
	for _, expr := range exprs {
		lit, litDiags := translateLiteral(expr, src)
		diags = append(diags, litDiags...)
		if !litDiags.HasErrors() {
			axis.Values = append(axis.Values, lit)
		}
	}

	return axis, diags
}

// translateSlot converts one 'args' element into a Slot.
func translateSlot(expr hcl.Expression, src []byte) (model.Slot, hcl.Diagnostics) {
	if pairs, mapDiags := hcl.ExprMap(expr); !mapDiags.HasErrors() {
		return translateFlagSlot(expr, pairs, src)
	}

	if len(expr.Variables()) > 0 {
		name, diags := translateAxisRef(expr)
		return model.AxisSlot(name), diags
	}

	lit, diags := translateLiteral(expr, src)
	return model.LiteralSlot(lit), diags
}

// translateFlagSlot converts a `{ "--flag" = value }` element.
func translateFlagSlot(expr hcl.Expression, pairs []hcl.KeyValuePair, src []byte) (model.Slot, hcl.Diagnostics) {
	if len(pairs) != 1 {
		return model.Slot{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid flag argument",
			Detail:   "A flag argument must be an object with exactly one entry, like { \"--depth\" = axis.depth }.",
			Subject:  expr.Range().Ptr(),
		}}
	}

	var flag string
	diags := gohcl.DecodeExpression(pairs[0].Key, nil, &flag)
	if diags.HasErrors() {
		return model.Slot{}, diags
	}

	valueExpr := pairs[0].Value
	if _, nested := hcl.ExprMap(valueExpr); !nested.HasErrors() {
		return model.Slot{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid flag argument",
			Detail:   "The value of a flag argument must be a constant or an axis reference.",
			Subject:  valueExpr.Range().Ptr(),
		}}
	}

	slot, valueDiags := translateSlot(valueExpr, src)
	diags = append(diags, valueDiags...)
	slot.Flag = flag
	slot.Joined = strings.HasSuffix(flag, "=")
	return slot, diags
}

// translateAxisRef extracts the axis name from an `axis.<name>` traversal.
func translateAxisRef(expr hcl.Expression) (string, hcl.Diagnostics) {
	invalid := hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid axis reference",
		Detail:   "Arguments may only reference axes, written as axis.<name>.",
		Subject:  expr.Range().Ptr(),
	}}

	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() || len(traversal) != 2 || traversal.RootName() != axisRoot {
		return "", invalid
	}
	attr, ok := traversal[1].(hcl.TraverseAttr)
	if !ok {
		return "", invalid
	}
	return attr.Name, nil
}

// translateLiteral converts a constant expression into a Literal. Numbers
// keep their source spelling, so `1.0` is not turned into `1`.
func translateLiteral(expr hcl.Expression, src []byte) (model.Literal, hcl.Diagnostics) {
	if len(expr.Variables()) > 0 || !isConstant(expr) {
		return model.Literal{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid value",
			Detail:   "Only constant strings, numbers and bools are allowed here.",
			Subject:  expr.Range().Ptr(),
		}}
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return model.Literal{}, diags
	}
	if val.IsNull() || !val.IsKnown() {
		return model.Literal{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid value",
			Detail:   "A null value is not allowed here.",
			Subject:  expr.Range().Ptr(),
		}}
	}

	switch val.Type() {
	case cty.String:
		return model.String(val.AsString()), diags
	case cty.Bool:
		return model.Bool(val.True()), diags
	case cty.Number:
		raw := strings.TrimSpace(string(expr.Range().SliceBytes(src)))
		if raw == "" {
			raw = val.AsBigFloat().Text('f', -1)
		}
		return model.Number(raw), diags
	}

	return model.Literal{}, hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid value",
		Detail:   fmt.Sprintf("Expected a string, number or bool, got %s.", val.Type().FriendlyName()),
		Subject:  expr.Range().Ptr(),
	}}
}

// isConstant reports whether expr is a plain literal: a number, bool or null,
// a quoted string without interpolation, or a negated number. Anything else
// would not survive being rendered from its source text.
func isConstant(expr hcl.Expression) bool {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		return true
	case *hclsyntax.TemplateExpr:
		return e.IsStringLiteral()
	case *hclsyntax.UnaryOpExpr:
		if e.Op != hclsyntax.OpNegate {
			return false
		}
		_, ok := e.Val.(*hclsyntax.LiteralValueExpr)
		return ok
	}
	return false
}
