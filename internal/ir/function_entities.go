package ir

// AppendExtFunc appends a new external-function entry and returns its ID.
func (f *Function) AppendExtFunc(data ExtFuncData) ExtFuncID {
	id := ExtFuncID(len(f.ExtFuncs))
	f.ExtFuncs = append(f.ExtFuncs, data)
	return id
}

// AppendSignature appends a new signature entry and returns its ID.
func (f *Function) AppendSignature(sig Signature) SigID {
	id := SigID(len(f.Signatures))
	f.Signatures = append(f.Signatures, sig)
	return id
}

// AppendStackSlot appends a new stack-slot entry and returns its ID.
func (f *Function) AppendStackSlot(data StackSlotData) StackSlotID {
	id := StackSlotID(len(f.StackSlots))
	f.StackSlots = append(f.StackSlots, data)
	return id
}

// AppendGlobalValue appends a new global-value entry and returns its ID.
func (f *Function) AppendGlobalValue(data GlobalValueData) GlobalValueID {
	id := GlobalValueID(len(f.GlobalValues))
	f.GlobalValues = append(f.GlobalValues, data)
	return id
}
