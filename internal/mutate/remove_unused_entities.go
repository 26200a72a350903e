package mutate

import (
	"errors"

	"github.com/zjy-dev/ir-bugpoint/internal/ir"
)

// ErrCyclicGlobalValues describes the case in which the global-value
// phase abandons its mutation: a Load or IAddImm entry, either of which
// can reference another global value and so cannot be compacted by a
// simple usage scan. Mutate does not return this error; it reports that
// case as a nil, false result.
var ErrCyclicGlobalValues = errors.New("global value table may be cyclic")

// RemoveUnusedEntities compacts the four entity side tables — external
// function refs, signatures, stack slots, and global values — by
// rebuilding each as a fresh, densely packed table containing only the
// entries instructions still reference, in a single phase per kind.
// After the fourth phase the mutator is exhausted.
type RemoveUnusedEntities struct {
	kind int
}

// NewRemoveUnusedEntities starts at phase 0 (external function refs).
func NewRemoveUnusedEntities(f *ir.Function) *RemoveUnusedEntities {
	return &RemoveUnusedEntities{}
}

func (m *RemoveUnusedEntities) Name() string { return "remove unused entities" }

func (m *RemoveUnusedEntities) MutationCount(f *ir.Function) int { return 4 }

func (m *RemoveUnusedEntities) Mutate(f *ir.Function) (*ir.Function, string, Status, bool) {
	switch m.kind {
	case 0:
		m.kind++
		compactExtFuncs(f)
		return f, "remove unused ext funcs", Changed, true
	case 1:
		m.kind++
		compactSignatures(f)
		return f, "remove unused signatures", Changed, true
	case 2:
		m.kind++
		compactStackSlots(f)
		return f, "remove unused stack slots", Changed, true
	case 3:
		m.kind++
		if !compactGlobalValues(f) {
			return nil, "", Skip, false
		}
		return f, "remove unused global values", Changed, true
	default:
		return nil, "", Skip, false
	}
}

func (m *RemoveUnusedEntities) DidCrash() {}

func compactExtFuncs(f *ir.Function) {
	usage := map[ir.ExtFuncID][]ir.InstID{}
	for _, inst := range f.AllInsts() {
		data, _ := f.InstData(inst)
		switch data.Opcode {
		case ir.OpCall, ir.OpFuncAddr:
			usage[data.FuncRef] = append(usage[data.FuncRef], inst)
		}
	}

	old := f.ExtFuncs
	fresh := make([]ir.ExtFuncData, 0, len(old))
	for oldID, data := range old {
		insts, used := usage[ir.ExtFuncID(oldID)]
		if !used {
			continue
		}
		newID := ir.ExtFuncID(len(fresh))
		fresh = append(fresh, data)
		for _, inst := range insts {
			ref := newID
			f.MutateInstData(inst, func(d *ir.InstructionData) { d.FuncRef = ref })
		}
	}
	f.SetExtFuncs(fresh)
}

func compactSignatures(f *ir.Function) {
	type user struct {
		inst    ir.InstID
		isInst  bool
		extFunc ir.ExtFuncID
	}
	usage := map[ir.SigID][]user{}
	for _, inst := range f.AllInsts() {
		data, _ := f.InstData(inst)
		if data.Opcode == ir.OpCallIndirect {
			usage[data.SigRef] = append(usage[data.SigRef], user{inst: inst, isInst: true})
		}
	}
	for id, ef := range f.ExtFuncs {
		usage[ef.Signature] = append(usage[ef.Signature], user{extFunc: ir.ExtFuncID(id)})
	}

	old := f.Signatures
	fresh := make([]ir.Signature, 0, len(old))
	for oldID, sig := range old {
		users, used := usage[ir.SigID(oldID)]
		if !used {
			continue
		}
		newID := ir.SigID(len(fresh))
		fresh = append(fresh, sig)
		for _, u := range users {
			if u.isInst {
				id := newID
				f.MutateInstData(u.inst, func(d *ir.InstructionData) { d.SigRef = id })
			} else {
				f.ExtFuncs[u.extFunc].Signature = newID
			}
		}
	}
	f.SetSignatures(fresh)
}

func compactStackSlots(f *ir.Function) {
	usage := map[ir.StackSlotID][]ir.InstID{}
	for _, inst := range f.AllInsts() {
		data, _ := f.InstData(inst)
		switch data.Opcode {
		case ir.OpStackLoad, ir.OpStackStore, ir.OpRegSpill, ir.OpRegFill:
			usage[data.StackSlot] = append(usage[data.StackSlot], inst)
		}
	}

	old := f.StackSlots
	fresh := make([]ir.StackSlotData, 0, len(old))
	for oldID, data := range old {
		insts, used := usage[ir.StackSlotID(oldID)]
		if !used {
			continue
		}
		newID := ir.StackSlotID(len(fresh))
		fresh = append(fresh, data)
		for _, inst := range insts {
			slot := newID
			f.MutateInstData(inst, func(d *ir.InstructionData) { d.StackSlot = slot })
		}
	}
	f.SetStackSlots(fresh)
}

// compactGlobalValues reports false (abandoning the mutation) if any
// entry is a Load or IAddImm, since those can reference other global
// values and form cycles a single usage scan can't safely compact.
func compactGlobalValues(f *ir.Function) bool {
	for _, gv := range f.GlobalValues {
		if gv.Kind == ir.GlobalLoad || gv.Kind == ir.GlobalIAddImm {
			return false
		}
	}

	usage := map[ir.GlobalValueID][]ir.InstID{}
	for _, inst := range f.AllInsts() {
		data, _ := f.InstData(inst)
		if data.Opcode == ir.OpUnaryGlobalValue {
			usage[data.GlobalValue] = append(usage[data.GlobalValue], inst)
		}
	}

	old := f.GlobalValues
	fresh := make([]ir.GlobalValueData, 0, len(old))
	for oldID, data := range old {
		insts, used := usage[ir.GlobalValueID(oldID)]
		if !used {
			continue
		}
		newID := ir.GlobalValueID(len(fresh))
		fresh = append(fresh, data)
		for _, inst := range insts {
			gv := newID
			f.MutateInstData(inst, func(d *ir.InstructionData) { d.GlobalValue = gv })
		}
	}
	f.SetGlobalValues(fresh)
	return true
}
