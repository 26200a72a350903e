package ir

import "encoding/json"

// The textual IR parser/printer pairing is explicitly out of scope for
// the reduction engine (spec.md section 1); JSON is the stand-in
// round-trip format used by the CLI and by any out-of-process backend
// that needs to hand a candidate Function to a subprocess.

type instSnapshot struct {
	ID      InstID
	Data    InstructionData
	Results []Value
}

type blockSnapshot struct {
	ID     BlockID
	Params []Value
	Insts  []instSnapshot
}

type functionSnapshot struct {
	Name         string
	Blocks       []blockSnapshot
	ValueTypes   map[Value]Type
	Aliases      map[Value]Value
	ExtFuncs     []ExtFuncData
	Signatures   []Signature
	StackSlots   []StackSlotData
	GlobalValues []GlobalValueData
	NextValue    Value
	NextInstID   InstID
	NextBlockID  BlockID
}

// MarshalJSON renders f as a JSON snapshot of its current blocks,
// data-flow graph, and entity tables.
func (f *Function) MarshalJSON() ([]byte, error) {
	snap := functionSnapshot{
		Name:         f.Name,
		ValueTypes:   f.ValueTypes,
		Aliases:      f.Aliases,
		ExtFuncs:     f.ExtFuncs,
		Signatures:   f.Signatures,
		StackSlots:   f.StackSlots,
		GlobalValues: f.GlobalValues,
		NextValue:    f.nextValue,
		NextInstID:   f.nextInstID,
		NextBlockID:  f.nextBlockID,
	}
	for _, bid := range f.Blocks() {
		b, _ := f.Block(bid)
		bs := blockSnapshot{ID: b.ID, Params: b.Params}
		for _, iid := range b.Insts() {
			inst, _ := b.Inst(iid)
			bs.Insts = append(bs.Insts, instSnapshot{ID: inst.ID, Data: inst.Data, Results: inst.Results})
		}
		snap.Blocks = append(snap.Blocks, bs)
	}
	return json.Marshal(snap)
}

// UnmarshalJSON reconstructs a Function from a JSON snapshot produced by
// MarshalJSON.
func (f *Function) UnmarshalJSON(data []byte) error {
	var snap functionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	f.Name = snap.Name
	f.ValueTypes = snap.ValueTypes
	if f.ValueTypes == nil {
		f.ValueTypes = make(map[Value]Type)
	}
	f.Aliases = snap.Aliases
	if f.Aliases == nil {
		f.Aliases = make(map[Value]Value)
	}
	f.ExtFuncs = snap.ExtFuncs
	f.Signatures = snap.Signatures
	f.StackSlots = snap.StackSlots
	f.GlobalValues = snap.GlobalValues
	f.nextValue = snap.NextValue
	f.nextInstID = snap.NextInstID
	f.nextBlockID = snap.NextBlockID

	f.blocks = make(map[BlockID]*Block)
	f.instBlock = make(map[InstID]BlockID)
	f.blockOrder = nil
	for _, bs := range snap.Blocks {
		b := newBlock(bs.ID)
		b.Params = bs.Params
		for _, is := range bs.Insts {
			inst := &Inst{ID: is.ID, Data: is.Data, Results: is.Results}
			b.appendInst(inst)
			f.instBlock[inst.ID] = bs.ID
		}
		f.blocks[bs.ID] = b
		f.blockOrder = append(f.blockOrder, bs.ID)
	}
	return nil
}
