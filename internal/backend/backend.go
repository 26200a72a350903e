// Package backend defines the contract the oracle wrapper consumes: a
// verifier plus a code generator, both opaque to the reduction engine
// itself. The engine never special-cases a particular backend; it only
// ever calls through this interface.
package backend

import (
	"github.com/zjy-dev/ir-bugpoint/internal/ir"
	"github.com/zjy-dev/ir-bugpoint/internal/target"
)

// Backend is the external collaborator the oracle wrapper drives. Verify
// performs static IR validation; a non-nil error means the candidate is
// malformed and must never reach CompileAndEmit. CompileAndEmit is the
// actual code generator under test — its job is to crash (by panicking)
// when it encounters the bug being reduced.
type Backend interface {
	// Verify statically validates f. A non-nil return means f is
	// malformed input, not a backend bug.
	Verify(f *ir.Function, t target.Descriptor) error

	// CompileAndEmit runs the real code generator. Implementations are
	// expected to panic on the bug being chased; the oracle wrapper is
	// responsible for catching that panic, not this method.
	CompileAndEmit(f *ir.Function, t target.Descriptor) error
}
