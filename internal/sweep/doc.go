// Package sweep implements the grid dispatcher: it enumerates the Cartesian
// product of a sweep's axes, renders one job per combination and hands each
// job to a sink.
//
// Enumeration and rendering are pure. Dispatch is the only step with side
// effects, and it is always performed one job at a time, in enumeration
// order.
package sweep
