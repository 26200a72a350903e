package ir

// MutateInstData applies fn to a copy of inst's current payload and
// writes the result back in place, preserving instruction identity,
// position, and bound results. Used by entity-table compaction to
// rewrite a single reference field (FuncRef, SigRef, StackSlot,
// GlobalValue) without disturbing anything else about the instruction.
func (f *Function) MutateInstData(inst InstID, fn func(*InstructionData)) {
	block, ok := f.instBlock[inst]
	if !ok {
		return
	}
	i, ok := f.blocks[block].Inst(inst)
	if !ok {
		return
	}
	fn(&i.Data)
}

// InstData returns a copy of inst's current structural payload.
func (f *Function) InstData(inst InstID) (InstructionData, bool) {
	block, ok := f.instBlock[inst]
	if !ok {
		return InstructionData{}, false
	}
	i, ok := f.blocks[block].Inst(inst)
	if !ok {
		return InstructionData{}, false
	}
	return i.Data, true
}

// SetExtFuncs replaces the external-function table wholesale. Used by
// entity compaction, which always rebuilds by appending in scan order
// rather than deleting in place (see internal/mutate's RemoveUnusedEntities).
func (f *Function) SetExtFuncs(table []ExtFuncData) { f.ExtFuncs = table }

// SetSignatures replaces the signature table wholesale.
func (f *Function) SetSignatures(table []Signature) { f.Signatures = table }

// SetStackSlots replaces the stack-slot table wholesale.
func (f *Function) SetStackSlots(table []StackSlotData) { f.StackSlots = table }

// SetGlobalValues replaces the global-value table wholesale.
func (f *Function) SetGlobalValues(table []GlobalValueData) { f.GlobalValues = table }

// AllInsts returns every instruction ID in the function, in layout order.
// Containing blocks are not returned; InstBlock looks one up.
func (f *Function) AllInsts() []InstID {
	var all []InstID
	for _, bid := range f.Blocks() {
		b, _ := f.Block(bid)
		all = append(all, b.Insts()...)
	}
	return all
}
