package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTrivialCrasher builds the S1 fixture from the reduction engine's
// test scenarios: b0 jumps to b1, b1 calls an external function and
// returns.
func buildTrivialCrasher(t *testing.T) *Function {
	t.Helper()
	f := New("trivial")
	extFunc := f.AppendExtFunc(ExtFuncData{Name: "f"})

	b0 := f.AddBlock()
	b1 := f.AddBlock()

	f.AppendInst(b0, JumpData(b1))
	f.AppendInst(b1, CallData(extFunc))
	f.AppendInst(b1, ReturnData())

	return f
}

func TestEntryBlockAndLayoutOrder(t *testing.T) {
	f := buildTrivialCrasher(t)

	entry, ok := f.EntryBlock()
	require.True(t, ok)
	assert.Equal(t, f.Blocks()[0], entry)

	next, ok := f.NextBlock(entry)
	require.True(t, ok)
	assert.Equal(t, f.Blocks()[1], next)

	_, ok = f.NextBlock(next)
	assert.False(t, ok)
}

func TestCloneIsolatesMutation(t *testing.T) {
	f := buildTrivialCrasher(t)
	clone := f.Clone()

	entry, _ := f.EntryBlock()
	b, _ := clone.Block(entry)
	first, _ := b.FirstInst()
	clone.RemoveInst(first)

	assert.Equal(t, 3, InstCount(f), "original function must be unaffected by mutating the clone")
	assert.Equal(t, 2, InstCount(clone))
}

func TestNextInstRetPrevCrossesEmptyBlocks(t *testing.T) {
	f := New("cross")
	b0 := f.AddBlock()
	b1 := f.AddBlock() // will stay empty
	b2 := f.AddBlock()
	f.AppendInst(b0, JumpData(b1))
	f.AppendInst(b2, ReturnData())
	_ = b1

	block, inst := b0, must(t, f, b0)
	_, _, ok := NextInstRetPrev(f, &block, &inst)
	require.True(t, ok)
	assert.Equal(t, b2, block, "cursor should skip the empty block and land on b2")
}

func must(t *testing.T, f *Function, block BlockID) InstID {
	t.Helper()
	b, ok := f.Block(block)
	require.True(t, ok)
	first, ok := b.FirstInst()
	require.True(t, ok)
	return first
}

func TestResolveAliases(t *testing.T) {
	f := New("alias")
	b0 := f.AddBlock()
	v0 := f.NewValue(I32)
	v1 := f.NewValue(I32)
	f.ChangeToAlias(v0, v1)

	inst := f.AppendInst(b0, ReturnData(v0))
	inst.Results = nil

	ResolveAliases(f)

	block, _ := f.Block(b0)
	i, _ := block.Inst(inst.ID)
	assert.Equal(t, v1, i.Data.Args[0])
}

func TestComputeCFGPredecessors(t *testing.T) {
	f := buildTrivialCrasher(t)
	cfg := ComputeCFG(f)

	b1 := f.Blocks()[1]
	preds := cfg.Predecessors(b1)
	require.Len(t, preds, 1)
	assert.Equal(t, f.Blocks()[0], preds[0].Block)
}
