// Package ir implements the concrete in-memory intermediate representation
// reduced by the bugpoint engine: blocks, instructions, a data-flow graph,
// and the entity side tables referenced from instructions.
package ir

import "fmt"

// BlockID identifies an extended basic block. Stable across Function.Clone.
type BlockID int

// InstID identifies an instruction. Stable across Function.Clone and across
// removal of other instructions (invariant 3 of the reduction engine).
type InstID int

// Value identifies an SSA value produced by an instruction or a block
// parameter.
type Value int

// ExtFuncID identifies an entry in a function's external-function table.
type ExtFuncID int

// SigID identifies an entry in a function's signature table.
type SigID int

// StackSlotID identifies an entry in a function's stack-slot table.
type StackSlotID int

// GlobalValueID identifies an entry in a function's global-value table.
type GlobalValueID int

func (b BlockID) String() string { return fmt.Sprintf("block%d", int(b)) }
func (i InstID) String() string  { return fmt.Sprintf("inst%d", int(i)) }
func (v Value) String() string   { return fmt.Sprintf("v%d", int(v)) }
