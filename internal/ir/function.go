package ir

// Function is the in-memory IR module the reducer mutates: an ordered
// sequence of blocks, a data-flow graph keyed by instruction and value
// identity, and the entity side tables instructions may reference.
//
// Function is cheaply cloneable: Clone performs a deep copy so every
// candidate trial in the reduce package can mutate its own copy while the
// accepted function stays untouched until the oracle confirms the
// candidate still crashes.
type Function struct {
	Name string

	blockOrder []BlockID
	blocks     map[BlockID]*Block
	instBlock  map[InstID]BlockID

	ValueTypes map[Value]Type
	Aliases    map[Value]Value

	ExtFuncs     []ExtFuncData
	Signatures   []Signature
	StackSlots   []StackSlotData
	GlobalValues []GlobalValueData

	nextValue   Value
	nextInstID  InstID
	nextBlockID BlockID
}

// New creates an empty function.
func New(name string) *Function {
	return &Function{
		Name:       name,
		blocks:     make(map[BlockID]*Block),
		instBlock:  make(map[InstID]BlockID),
		ValueTypes: make(map[Value]Type),
		Aliases:    make(map[Value]Value),
	}
}

// Clone performs a deep copy of f. IDs are preserved, so a mutator's
// cursor (which only ever stores BlockID/InstID) remains meaningful
// against the clone.
func (f *Function) Clone() *Function {
	nf := New(f.Name)
	nf.blockOrder = append([]BlockID(nil), f.blockOrder...)
	for id, b := range f.blocks {
		nf.blocks[id] = b.clone()
	}
	for id, bid := range f.instBlock {
		nf.instBlock[id] = bid
	}
	for v, t := range f.ValueTypes {
		nf.ValueTypes[v] = t
	}
	for v, a := range f.Aliases {
		nf.Aliases[v] = a
	}
	nf.ExtFuncs = cloneExtFuncs(f.ExtFuncs)
	nf.Signatures = cloneSignatures(f.Signatures)
	nf.StackSlots = cloneStackSlots(f.StackSlots)
	nf.GlobalValues = cloneGlobalValues(f.GlobalValues)
	nf.nextValue = f.nextValue
	nf.nextInstID = f.nextInstID
	nf.nextBlockID = f.nextBlockID
	return nf
}

// Blocks returns block IDs in layout order.
func (f *Function) Blocks() []BlockID { return append([]BlockID(nil), f.blockOrder...) }

// Block looks up a block by ID.
func (f *Function) Block(id BlockID) (*Block, bool) {
	b, ok := f.blocks[id]
	return b, ok
}

// EntryBlock returns the function's entry block: the first block in
// layout order. Present whenever the function is non-empty.
func (f *Function) EntryBlock() (BlockID, bool) {
	if len(f.blockOrder) == 0 {
		return 0, false
	}
	return f.blockOrder[0], true
}

// NextBlock returns the block following id in layout order.
func (f *Function) NextBlock(id BlockID) (BlockID, bool) {
	for i, cur := range f.blockOrder {
		if cur == id {
			if i+1 < len(f.blockOrder) {
				return f.blockOrder[i+1], true
			}
			return 0, false
		}
	}
	return 0, false
}

// InstBlock returns the block currently containing inst.
func (f *Function) InstBlock(inst InstID) (BlockID, bool) {
	b, ok := f.instBlock[inst]
	return b, ok
}

// AddBlock appends a fresh block to the end of layout and returns its ID.
func (f *Function) AddBlock() BlockID {
	id := f.nextBlockID
	f.nextBlockID++
	f.blocks[id] = newBlock(id)
	f.blockOrder = append(f.blockOrder, id)
	return id
}

// RemoveBlock deletes a block from layout. The block must already be
// empty of instructions; callers (mutators) are responsible for removing
// or relocating its instructions first, per invariant 4.
func (f *Function) RemoveBlock(id BlockID) {
	for i, cur := range f.blockOrder {
		if cur == id {
			f.blockOrder = append(f.blockOrder[:i], f.blockOrder[i+1:]...)
			break
		}
	}
	delete(f.blocks, id)
}

// NewValue allocates a fresh SSA value of the given type.
func (f *Function) NewValue(t Type) Value {
	v := f.nextValue
	f.nextValue++
	f.ValueTypes[v] = t
	return v
}

// ValueType returns the resolved type of v.
func (f *Function) ValueType(v Value) Type { return f.ValueTypes[v] }

// AppendInst appends a new instruction with the given data to the end of
// block, allocating a fresh instruction ID. Returns the created Inst.
func (f *Function) AppendInst(block BlockID, data InstructionData) *Inst {
	inst := &Inst{ID: f.nextInstID, Data: data.clone()}
	f.nextInstID++
	b := f.blocks[block]
	b.appendInst(inst)
	f.instBlock[inst.ID] = block
	return inst
}

// MoveInstToEnd relocates an existing instruction (removed from its
// current block beforehand by the caller) onto the end of dst.
func (f *Function) MoveInstToEnd(inst *Inst, dst BlockID) {
	f.blocks[dst].appendInst(inst)
	f.instBlock[inst.ID] = dst
}

// RemoveInst removes inst from its block's layout and data-flow graph.
func (f *Function) RemoveInst(inst InstID) {
	block, ok := f.instBlock[inst]
	if !ok {
		return
	}
	f.blocks[block].removeInst(inst)
	delete(f.instBlock, inst)
}

// DetachInst removes inst from its current block's layout, returning it
// intact (data and results preserved) so the caller can relocate it via
// MoveInstToEnd. Unlike RemoveInst, nothing about the instruction itself
// is discarded.
func (f *Function) DetachInst(inst InstID) (*Inst, bool) {
	block, ok := f.instBlock[inst]
	if !ok {
		return nil, false
	}
	detached, ok := f.blocks[block].detachInst(inst)
	if !ok {
		return nil, false
	}
	delete(f.instBlock, inst)
	return detached, true
}

// ReplaceInst overwrites the structural payload of an existing
// instruction, keeping its ID, position, and result-value identities.
func (f *Function) ReplaceInst(inst InstID, data InstructionData) {
	block := f.instBlock[inst]
	f.blocks[block].replaceInst(inst, data.clone())
}

// ReplaceInstWithSequence swaps inst for a sequence of freshly allocated
// instructions occupying its former position in layout order, each
// rebinding its own result list. Used by ReplaceInstWithConst when an
// instruction with multiple results is decomposed into one constant per
// result.
func (f *Function) ReplaceInstWithSequence(inst InstID, datas []InstructionData, results [][]Value) []InstID {
	block := f.instBlock[inst]
	news := make([]*Inst, len(datas))
	ids := make([]InstID, len(datas))
	for i, d := range datas {
		ni := &Inst{ID: f.nextInstID, Data: d.clone(), Results: append([]Value(nil), results[i]...)}
		f.nextInstID++
		news[i] = ni
		ids[i] = ni.ID
		f.instBlock[ni.ID] = block
	}
	f.blocks[block].replaceInstWithMany(inst, news)
	delete(f.instBlock, inst)
	return ids
}

// InstResults returns the result values bound to inst.
func (f *Function) InstResults(inst InstID) []Value {
	block := f.instBlock[inst]
	i, ok := f.blocks[block].Inst(inst)
	if !ok {
		return nil
	}
	return i.Results
}

// SetInstResults rebinds the result-value list of inst.
func (f *Function) SetInstResults(inst InstID, results []Value) {
	block := f.instBlock[inst]
	i, _ := f.blocks[block].Inst(inst)
	i.Results = results
}

// ClearResults detaches an instruction's results without discarding the
// value identities themselves, so a replacement instruction can rebind
// the same values.
func (f *Function) ClearResults(inst InstID) []Value {
	results := f.InstResults(inst)
	f.SetInstResults(inst, nil)
	return results
}

// DetachBlockParams clears and returns block's parameter list.
func (f *Function) DetachBlockParams(block BlockID) []Value {
	b := f.blocks[block]
	params := b.Params
	b.Params = nil
	return params
}

// ChangeToAlias records that v is now an alias of target: every future
// operand reference to v should be resolved to target instead.
func (f *Function) ChangeToAlias(v, target Value) {
	f.Aliases[v] = target
}

// ResolveAlias follows the alias chain for v to its canonical
// representative.
func (f *Function) ResolveAlias(v Value) Value {
	seen := map[Value]bool{}
	for {
		target, ok := f.Aliases[v]
		if !ok || seen[v] {
			return v
		}
		seen[v] = true
		v = target
	}
}

// ResolveAliasesInArguments rewrites every operand of inst to its
// canonical non-aliased form.
func (f *Function) ResolveAliasesInArguments(inst InstID) {
	block := f.instBlock[inst]
	i, ok := f.blocks[block].Inst(inst)
	if !ok {
		return
	}
	for idx, arg := range i.Data.Args {
		i.Data.Args[idx] = f.ResolveAlias(arg)
	}
}

// ResolveAliases rewrites every instruction's operands to their
// canonical non-aliased form. Run once before the first reduction pass
// (invariant 5).
func ResolveAliases(f *Function) {
	for _, bid := range f.Blocks() {
		b, _ := f.Block(bid)
		for _, iid := range b.Insts() {
			f.ResolveAliasesInArguments(iid)
		}
	}
}

// BlockCount returns the number of blocks currently in the function.
func BlockCount(f *Function) int { return len(f.blockOrder) }

// InstCount returns the total number of instructions across all blocks.
func InstCount(f *Function) int {
	n := 0
	for _, b := range f.blocks {
		n += b.Len()
	}
	return n
}
