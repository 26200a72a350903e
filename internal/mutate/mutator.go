// Package mutate implements the six semantics-destroying,
// structure-preserving transformations the reduction engine tries against
// a crashing function: remove an instruction, collapse an instruction
// down to a constant or a trap, remove a whole block, compact unused
// entity tables, and merge a block into its unique predecessor.
package mutate

import "github.com/zjy-dev/ir-bugpoint/internal/ir"

// Mutator produces a sequence of candidate rewrites of a function. A
// Mutator is constructed fresh at the start of each reduction phase and
// carries its own cursor state across repeated Mutate calls within that
// phase; only the function passed to Mutate changes between calls.
type Mutator interface {
	// Name is a stable identifier used for progress reporting.
	Name() string

	// MutationCount is an upper bound on remaining candidates, used only
	// for progress reporting — never a loop limit.
	MutationCount(f *ir.Function) int

	// Mutate applies the mutator's next rewrite to f in place and
	// returns the resulting function, a human-readable description, and
	// a Status. ok is false when the mutator is exhausted for the
	// function it was constructed against.
	Mutate(f *ir.Function) (result *ir.Function, message string, status Status, ok bool)

	// DidCrash is invoked by the driver after it accepts a candidate
	// this mutator produced (i.e. the oracle reported it still
	// crashes). Most mutators have nothing to do here.
	DidCrash()
}
