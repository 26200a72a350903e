package backend

import (
	"github.com/zjy-dev/ir-bugpoint/internal/ir"
	"github.com/zjy-dev/ir-bugpoint/internal/target"
)

// TestBackend implements the testing seam described by the reduction
// engine's design: it accepts any function as well-formed, and panics
// with a fixed message iff the function contains a call instruction.
// This lets the reduction engine and its mutators be exercised
// end-to-end without a real code generator.
type TestBackend struct{}

// Verify always succeeds for TestBackend; it has no notion of malformed
// input beyond what CompileAndEmit itself panics on.
func (TestBackend) Verify(*ir.Function, target.Descriptor) error { return nil }

// CompileAndEmit panics with "test crash" iff f contains a call
// instruction, and succeeds otherwise.
func (TestBackend) CompileAndEmit(f *ir.Function, _ target.Descriptor) error {
	for _, bid := range f.Blocks() {
		b, _ := f.Block(bid)
		for _, iid := range b.Insts() {
			inst, _ := b.Inst(iid)
			if inst.Data.Opcode == ir.OpCall {
				panic("test crash")
			}
		}
	}
	return nil
}
