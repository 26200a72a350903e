package mutate

import (
	"fmt"
	"strings"

	"github.com/zjy-dev/ir-bugpoint/internal/ir"
)

// ReplaceInstWithConst walks every instruction in layout order and tries
// collapsing it down to a constant that rebinds the same result
// value(s). An instruction with no results, or already a constant, is
// skipped outright.
type ReplaceInstWithConst struct {
	block     ir.BlockID
	inst      ir.InstID
	exhausted bool
}

// NewReplaceInstWithConst seeds a cursor at f's first instruction.
func NewReplaceInstWithConst(f *ir.Function) *ReplaceInstWithConst {
	block, inst, ok := ir.FirstInst(f)
	return &ReplaceInstWithConst{block: block, inst: inst, exhausted: !ok}
}

func (m *ReplaceInstWithConst) Name() string { return "replace inst with const" }

func (m *ReplaceInstWithConst) MutationCount(f *ir.Function) int { return ir.InstCount(f) }

func isConstOpcode(op ir.Opcode) bool {
	switch op {
	case ir.OpIconst, ir.OpF32const, ir.OpF64const:
		return true
	default:
		return false
	}
}

func (m *ReplaceInstWithConst) Mutate(f *ir.Function) (*ir.Function, string, Status, bool) {
	if m.exhausted {
		return nil, "", Skip, false
	}
	_, prevInst, ok := ir.NextInstRetPrev(f, &m.block, &m.inst)
	if !ok {
		m.exhausted = true
		return nil, "", Skip, false
	}

	data, _ := f.InstData(prevInst)
	results := f.InstResults(prevInst)

	if len(results) == 0 || isConstOpcode(data.Opcode) {
		return f, "", Skip, true
	}

	if len(results) == 1 {
		ty := f.ValueType(results[0])
		constData, name := ir.ConstDataForType(ty)
		f.ReplaceInst(prevInst, constData)
		return f, fmt.Sprintf("replace inst %s with %s", prevInst, name), Changed, true
	}

	datas := make([]ir.InstructionData, len(results))
	resultLists := make([][]ir.Value, len(results))
	names := make([]string, len(results))
	for i, r := range results {
		ty := f.ValueType(r)
		constData, name := ir.ConstDataForType(ty)
		datas[i] = constData
		resultLists[i] = []ir.Value{r}
		names[i] = name
	}
	f.ReplaceInstWithSequence(prevInst, datas, resultLists)

	return f, fmt.Sprintf("replace inst %s with %s", prevInst, strings.Join(names, " / ")), ExpandedOrShrunk, true
}

func (m *ReplaceInstWithConst) DidCrash() {}
