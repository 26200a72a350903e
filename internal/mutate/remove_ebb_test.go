package mutate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjy-dev/ir-bugpoint/internal/ir"
	"github.com/zjy-dev/ir-bugpoint/internal/mutate"
)

func buildThreeBlockFunction() *ir.Function {
	f := ir.New("f")
	b0 := f.AddBlock()
	b1 := f.AddBlock()
	b2 := f.AddBlock()
	f.AppendInst(b0, ir.JumpData(b1))
	f.AppendInst(b1, ir.JumpData(b2))
	f.AppendInst(b2, ir.ReturnData())
	return f
}

func TestRemoveEbbNeverVisitsEntry(t *testing.T) {
	f := buildThreeBlockFunction()
	entry, _ := f.EntryBlock()
	m := mutate.NewRemoveEbb(f)

	res, _, status, ok := m.Mutate(f.Clone())
	require.True(t, ok)
	assert.Equal(t, mutate.ExpandedOrShrunk, status)
	newEntry, _ := res.EntryBlock()
	assert.Equal(t, entry, newEntry)
	assert.Equal(t, 2, ir.BlockCount(res))
}

func TestRemoveEbbExhaustsAfterLastBlock(t *testing.T) {
	f := buildThreeBlockFunction()
	m := mutate.NewRemoveEbb(f)

	cur := f
	for i := 0; i < 2; i++ {
		res, _, _, ok := m.Mutate(cur.Clone())
		require.Truef(t, ok, "step %d", i)
		cur = res
	}

	_, _, _, ok := m.Mutate(cur.Clone())
	assert.False(t, ok)
}

func TestRemoveEbbOnSingleBlockFunctionIsExhausted(t *testing.T) {
	f := ir.New("f")
	f.AddBlock()
	m := mutate.NewRemoveEbb(f)
	_, _, _, ok := m.Mutate(f.Clone())
	assert.False(t, ok)
}
