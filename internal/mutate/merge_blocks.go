package mutate

import (
	"fmt"

	"github.com/zjy-dev/ir-bugpoint/internal/ir"
	"github.com/zjy-dev/ir-bugpoint/internal/target"
)

// MergeBlocks walks blocks in layout order and tries folding each one
// into its unique predecessor: a block with any number of predecessors
// other than exactly one is left alone.
type MergeBlocks struct {
	block    ir.BlockID
	prev     ir.BlockID
	havePrev bool
	features target.Features
}

// NewMergeBlocks seeds a cursor at f's entry block.
func NewMergeBlocks(f *ir.Function, features target.Features) *MergeBlocks {
	entry, _ := f.EntryBlock()
	return &MergeBlocks{block: entry, features: features}
}

func (m *MergeBlocks) Name() string { return "merge blocks" }

// MutationCount reports N-1 for N blocks: N blocks can fold into at most
// N-1 merges.
func (m *MergeBlocks) MutationCount(f *ir.Function) int {
	n := ir.BlockCount(f)
	if n == 0 {
		return 0
	}
	return n - 1
}

func (m *MergeBlocks) Mutate(f *ir.Function) (*ir.Function, string, Status, bool) {
	next, ok := f.NextBlock(m.block)
	if !ok {
		return nil, "", Skip, false
	}
	m.block = next

	cfg := ir.ComputeCFG(f)
	preds := cfg.Predecessors(next)
	if len(preds) != 1 {
		return f, fmt.Sprintf("did nothing for %s", next), Skip, true
	}
	pred := preds[0]

	if m.features.BasicBlocks {
		predBlock, _ := f.Block(pred.Block)
		if predPredInst, has := predBlock.PrevInst(pred.Inst); has {
			predPredData, _ := f.InstData(predPredInst)
			if predPredData.Opcode.IsBranch() {
				return f, fmt.Sprintf("did nothing for %s", next), Skip, true
			}
		}
	}

	predData, _ := f.InstData(pred.Inst)
	branchArgs := predData.BranchArgs()
	params := f.DetachBlockParams(next)
	for i, param := range params {
		arg := branchArgs[i]
		if param != arg {
			f.ChangeToAlias(param, arg)
		}
	}

	f.RemoveInst(pred.Inst)

	b, _ := f.Block(next)
	for {
		first, has := b.FirstInst()
		if !has {
			break
		}
		detached, _ := f.DetachInst(first)
		f.MoveInstToEnd(detached, pred.Block)
	}

	f.RemoveBlock(next)

	m.prev = pred.Block
	m.havePrev = true

	return f, fmt.Sprintf("merged %s and %s", pred.Block, next), ExpandedOrShrunk, true
}

func (m *MergeBlocks) DidCrash() {
	if m.havePrev {
		m.block = m.prev
	}
}
