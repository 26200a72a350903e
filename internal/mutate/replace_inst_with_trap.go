package mutate

import (
	"fmt"

	"github.com/zjy-dev/ir-bugpoint/internal/ir"
)

// ReplaceInstWithTrap walks every instruction in layout order and tries
// collapsing it down to an unconditional trap. Already-trap instructions
// are skipped.
type ReplaceInstWithTrap struct {
	block     ir.BlockID
	inst      ir.InstID
	exhausted bool
}

// NewReplaceInstWithTrap seeds a cursor at f's first instruction.
func NewReplaceInstWithTrap(f *ir.Function) *ReplaceInstWithTrap {
	block, inst, ok := ir.FirstInst(f)
	return &ReplaceInstWithTrap{block: block, inst: inst, exhausted: !ok}
}

func (m *ReplaceInstWithTrap) Name() string { return "replace inst with trap" }

func (m *ReplaceInstWithTrap) MutationCount(f *ir.Function) int { return ir.InstCount(f) }

func (m *ReplaceInstWithTrap) Mutate(f *ir.Function) (*ir.Function, string, Status, bool) {
	if m.exhausted {
		return nil, "", Skip, false
	}
	_, prevInst, ok := ir.NextInstRetPrev(f, &m.block, &m.inst)
	if !ok {
		m.exhausted = true
		return nil, "", Skip, false
	}

	data, _ := f.InstData(prevInst)
	if data.Opcode == ir.OpTrap {
		return f, fmt.Sprintf("replace inst %s with trap", prevInst), Skip, true
	}
	f.ReplaceInst(prevInst, ir.TrapData(0))
	return f, fmt.Sprintf("replace inst %s with trap", prevInst), Changed, true
}

func (m *ReplaceInstWithTrap) DidCrash() {}
