package ir

// Inst is a single instruction: its identity, structural payload, and the
// list of SSA values it defines.
type Inst struct {
	ID      InstID
	Data    InstructionData
	Results []Value
}

func (i *Inst) clone() *Inst {
	return &Inst{
		ID:      i.ID,
		Data:    i.Data.clone(),
		Results: append([]Value(nil), i.Results...),
	}
}

// Block is an extended basic block: an ordered instruction sequence with
// block parameters filled in by predecessors' branch arguments.
type Block struct {
	ID     BlockID
	Params []Value

	order []InstID
	insts map[InstID]*Inst
}

func newBlock(id BlockID) *Block {
	return &Block{ID: id, insts: make(map[InstID]*Inst)}
}

func (b *Block) clone() *Block {
	nb := newBlock(b.ID)
	nb.Params = append([]Value(nil), b.Params...)
	nb.order = append([]InstID(nil), b.order...)
	for id, inst := range b.insts {
		nb.insts[id] = inst.clone()
	}
	return nb
}

// Len returns the number of instructions currently in the block.
func (b *Block) Len() int { return len(b.order) }

// Insts returns the instruction IDs in layout order.
func (b *Block) Insts() []InstID { return append([]InstID(nil), b.order...) }

// Inst looks up an instruction by ID within this block.
func (b *Block) Inst(id InstID) (*Inst, bool) {
	inst, ok := b.insts[id]
	return inst, ok
}

// FirstInst returns the first instruction of the block, if any.
func (b *Block) FirstInst() (InstID, bool) {
	if len(b.order) == 0 {
		return 0, false
	}
	return b.order[0], true
}

// LastInst returns the last instruction of the block, if any.
func (b *Block) LastInst() (InstID, bool) {
	if len(b.order) == 0 {
		return 0, false
	}
	return b.order[len(b.order)-1], true
}

// NextInst returns the instruction following id in layout order.
func (b *Block) NextInst(id InstID) (InstID, bool) {
	for i, cur := range b.order {
		if cur == id {
			if i+1 < len(b.order) {
				return b.order[i+1], true
			}
			return 0, false
		}
	}
	return 0, false
}

// PrevInst returns the instruction preceding id in layout order.
func (b *Block) PrevInst(id InstID) (InstID, bool) {
	for i, cur := range b.order {
		if cur == id {
			if i > 0 {
				return b.order[i-1], true
			}
			return 0, false
		}
	}
	return 0, false
}

// appendInst adds inst to the end of the block's layout.
func (b *Block) appendInst(inst *Inst) {
	b.order = append(b.order, inst.ID)
	b.insts[inst.ID] = inst
}

// removeInst removes id from the block's layout and data.
func (b *Block) removeInst(id InstID) {
	for i, cur := range b.order {
		if cur == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	delete(b.insts, id)
}

// detachInst removes id from the block's layout and returns it intact,
// so the caller can relocate it into another block.
func (b *Block) detachInst(id InstID) (*Inst, bool) {
	for i, cur := range b.order {
		if cur == id {
			inst := b.insts[cur]
			b.order = append(b.order[:i], b.order[i+1:]...)
			delete(b.insts, cur)
			return inst, true
		}
	}
	return nil, false
}

// replaceInst overwrites the data of an existing instruction in place,
// preserving its position in the layout and its ID.
func (b *Block) replaceInst(id InstID, data InstructionData) {
	inst := b.insts[id]
	inst.Data = data
}

// replaceInstWithMany swaps a single instruction in the layout for a
// sequence of replacement instructions occupying its former position.
func (b *Block) replaceInstWithMany(old InstID, news []*Inst) {
	for i, cur := range b.order {
		if cur != old {
			continue
		}
		newOrder := make([]InstID, 0, len(b.order)-1+len(news))
		newOrder = append(newOrder, b.order[:i]...)
		for _, n := range news {
			newOrder = append(newOrder, n.ID)
			b.insts[n.ID] = n
		}
		newOrder = append(newOrder, b.order[i+1:]...)
		b.order = newOrder
		delete(b.insts, old)
		return
	}
}
