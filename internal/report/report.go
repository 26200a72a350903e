// Package report renders the outcome of a reduction run to disk, either
// as a human-readable markdown summary or as a machine-readable JSON
// document.
package report

import "github.com/zjy-dev/ir-bugpoint/internal/target"

// FunctionStats captures the size of a function at one point in the
// reduction, for the before/after comparison a report shows.
type FunctionStats struct {
	Blocks int
	Insts  int
}

// CrashReport summarizes one reduction run: the backend it crashed, the
// message the oracle captured, and how much the function shrank.
type CrashReport struct {
	FunctionName string
	Target       target.Descriptor
	CrashMessage string
	Before       FunctionStats
	After        FunctionStats
}

// Reporter saves a CrashReport to disk in some format.
type Reporter interface {
	Save(r *CrashReport) error
}
