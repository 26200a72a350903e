package mutate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjy-dev/ir-bugpoint/internal/ir"
	"github.com/zjy-dev/ir-bugpoint/internal/mutate"
)

func TestRemoveUnusedEntitiesCompactsExtFuncsAndRewritesRefs(t *testing.T) {
	f := ir.New("f")
	f.AppendExtFunc(ir.ExtFuncData{Name: "dead"})
	live := f.AppendExtFunc(ir.ExtFuncData{Name: "live"})
	b0 := f.AddBlock()
	inst := f.AppendInst(b0, ir.CallData(live))
	f.AppendInst(b0, ir.ReturnData())

	m := mutate.NewRemoveUnusedEntities(f)
	res, msg, status, ok := m.Mutate(f)
	require.True(t, ok)
	assert.Equal(t, mutate.Changed, status)
	assert.Contains(t, msg, "ext funcs")

	require.Len(t, res.ExtFuncs, 1)
	assert.Equal(t, "live", res.ExtFuncs[0].Name)
	data, _ := res.InstData(inst.ID)
	assert.Equal(t, ir.ExtFuncID(0), data.FuncRef)
}

func TestRemoveUnusedEntitiesRunsFourPhasesThenExhausts(t *testing.T) {
	f := ir.New("f")
	f.AddBlock()
	m := mutate.NewRemoveUnusedEntities(f)

	for i := 0; i < 4; i++ {
		_, _, status, ok := m.Mutate(f)
		require.Truef(t, ok, "phase %d", i)
		assert.Equal(t, mutate.Changed, status)
	}

	_, _, _, ok := m.Mutate(f)
	assert.False(t, ok)
}

func TestRemoveUnusedEntitiesAbandonsOnCyclicGlobalValues(t *testing.T) {
	f := ir.New("f")
	f.AddBlock()
	f.AppendGlobalValue(ir.GlobalValueData{Kind: ir.GlobalLoad, Base: 0})

	m := mutate.NewRemoveUnusedEntities(f)
	for i := 0; i < 3; i++ {
		_, _, _, ok := m.Mutate(f)
		require.True(t, ok)
	}

	_, _, _, ok := m.Mutate(f)
	assert.False(t, ok, "phase 3 must abandon when a global value can cycle")
}
