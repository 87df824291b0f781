package sweep

import (
	"iter"

	"github.com/specialistvlad/gridsweep/internal/model"
)

// Count returns the number of combinations Enumerate yields for the grid.
func Count(grid model.Grid) int {
	return grid.Size()
}

// Enumerate returns a lazy sequence over every combination of the grid, in
// row-major order: the last-declared axis varies fastest.
//
// The sequence works like an odometer whose digits are per-axis value indices
// and whose radices are the axis sizes. It can be ranged over any number of
// times and always yields the same combinations. A grid without axes yields a
// single empty combination; a grid with an empty axis yields nothing.
func Enumerate(grid model.Grid) iter.Seq[model.Combination] {
	names := grid.Names()
	return func(yield func(model.Combination) bool) {
		for _, axis := range grid.Axes {
			if len(axis.Values) == 0 {
				return
			}
		}

		digits := make([]int, len(grid.Axes))
		values := make([]model.Literal, len(grid.Axes))
		for index := 0; ; index++ {
			for i, d := range digits {
				values[i] = grid.Axes[i].Values[d]
			}
			if !yield(model.NewCombination(index, names, values)) {
				return
			}
			if !advance(digits, grid.Axes) {
				return
			}
		}
	}
}

// advance increments the odometer by one, least significant digit last. It
// returns false once every digit has rolled over.
func advance(digits []int, axes []model.ParameterAxis) bool {
	for i := len(digits) - 1; i >= 0; i-- {
		digits[i]++
		if digits[i] < len(axes[i].Values) {
			return true
		}
		digits[i] = 0
	}
	return false
}
