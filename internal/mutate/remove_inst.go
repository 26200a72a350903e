package mutate

import (
	"fmt"

	"github.com/zjy-dev/ir-bugpoint/internal/ir"
)

// RemoveInst walks every instruction in layout order and tries removing
// it outright. Removing the last instruction of a block also removes the
// now-empty block, since the cursor never lands on an empty block.
type RemoveInst struct {
	block     ir.BlockID
	inst      ir.InstID
	exhausted bool
}

// NewRemoveInst seeds a cursor at f's first instruction.
func NewRemoveInst(f *ir.Function) *RemoveInst {
	block, inst, ok := ir.FirstInst(f)
	return &RemoveInst{block: block, inst: inst, exhausted: !ok}
}

func (m *RemoveInst) Name() string { return "remove inst" }

func (m *RemoveInst) MutationCount(f *ir.Function) int { return ir.InstCount(f) }

func (m *RemoveInst) Mutate(f *ir.Function) (*ir.Function, string, Status, bool) {
	if m.exhausted {
		return nil, "", Skip, false
	}
	prevBlock, prevInst, ok := ir.NextInstRetPrev(f, &m.block, &m.inst)
	if !ok {
		m.exhausted = true
		return nil, "", Skip, false
	}

	f.RemoveInst(prevInst)
	if b, exists := f.Block(prevBlock); exists && b.Len() == 0 {
		f.RemoveBlock(prevBlock)
		return f, fmt.Sprintf("remove inst %s and empty block %s", prevInst, prevBlock), ExpandedOrShrunk, true
	}
	return f, fmt.Sprintf("remove inst %s", prevInst), ExpandedOrShrunk, true
}

func (m *RemoveInst) DidCrash() {}
