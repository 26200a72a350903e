package ir

// FirstInst returns the function's first instruction in layout order,
// scanning forward past any leading empty blocks. Used to seed a fresh
// mutator cursor before the first call to NextInstRetPrev.
func FirstInst(f *Function) (block BlockID, inst InstID, ok bool) {
	for _, bid := range f.Blocks() {
		b, _ := f.Block(bid)
		if first, has := b.FirstInst(); has {
			return bid, first, true
		}
	}
	return 0, 0, false
}

// NextInstRetPrev advances the cursor (block, inst) to the next
// instruction in layout order, crossing into the first instruction of the
// next non-empty block when the current block is exhausted (invariant 4
// guarantees no empty block is ever left behind mid-iteration, but the
// cursor still has to skip past one defensively). It returns the
// pre-advance position. After the function's last instruction has been
// returned the cursor is left past the end, and the next call reports
// ok=false.
func NextInstRetPrev(f *Function, block *BlockID, inst *InstID) (prevBlock BlockID, prevInst InstID, ok bool) {
	const endOfFunction InstID = -1
	if *inst == endOfFunction {
		return *block, *inst, false
	}
	prevBlock, prevInst = *block, *inst

	if b, exists := f.Block(*block); exists {
		if next, has := b.NextInst(*inst); has {
			*inst = next
			return prevBlock, prevInst, true
		}
	}

	cur := *block
	for {
		next, has := f.NextBlock(cur)
		if !has {
			*inst = endOfFunction
			return prevBlock, prevInst, true
		}
		cur = next
		b, _ := f.Block(cur)
		if first, has := b.FirstInst(); has {
			*block = cur
			*inst = first
			return prevBlock, prevInst, true
		}
	}
}
