package sweep

import (
	"github.com/specialistvlad/gridsweep/internal/model"
)

// Render substitutes a combination into a template. It fails with a
// *model.TemplateError when a slot names an axis the combination does not
// assign.
func Render(sweepName string, c model.Combination, tmpl model.CommandTemplate) (model.JobSpec, error) {
	var args []string
	if len(tmpl.Command) > 1 {
		args = append(args, tmpl.Command[1:]...)
	}

	for i, slot := range tmpl.Slots {
		value := slot.Literal
		if slot.IsAxis() {
			v, ok := c.Get(slot.Axis)
			if !ok {
				return model.JobSpec{}, &model.TemplateError{Axis: slot.Axis, Slot: i, Index: c.Index()}
			}
			value = v
		}

		switch {
		case slot.Flag == "":
			args = append(args, value.Raw)
		case slot.Joined:
			args = append(args, slot.Flag+value.Raw)
		default:
			args = append(args, slot.Flag, value.Raw)
		}
	}

	return model.JobSpec{
		Sweep:       sweepName,
		Index:       c.Index(),
		JobType:     tmpl.JobType,
		Command:     tmpl.Executable(),
		Args:        args,
		Combination: c,
	}, nil
}
