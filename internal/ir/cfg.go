package ir

// Predecessor is one incoming control-flow edge: the block it originates
// from and the branch instruction within that block that targets the
// successor.
type Predecessor struct {
	Block BlockID
	Inst  InstID
}

// ControlFlowGraph holds the predecessor relation computed from a
// function's branch instructions. It must be recomputed whenever the
// function's layout or branch targets change; MergeBlocks recomputes it
// on every candidate since merges can only ever be evaluated fresh.
type ControlFlowGraph struct {
	preds map[BlockID][]Predecessor
}

// ComputeCFG scans every instruction in f and records control-flow edges
// for the branch opcodes that carry an explicit Target block.
func ComputeCFG(f *Function) *ControlFlowGraph {
	cfg := &ControlFlowGraph{preds: make(map[BlockID][]Predecessor)}
	for _, bid := range f.Blocks() {
		b, _ := f.Block(bid)
		for _, iid := range b.Insts() {
			inst, _ := b.Inst(iid)
			if !inst.Data.Opcode.IsBranch() {
				continue
			}
			if inst.Data.Opcode == OpReturn {
				continue
			}
			cfg.preds[inst.Data.Target] = append(cfg.preds[inst.Data.Target], Predecessor{
				Block: bid,
				Inst:  iid,
			})
		}
	}
	return cfg
}

// Predecessors returns the incoming edges of block, in scan order.
func (cfg *ControlFlowGraph) Predecessors(block BlockID) []Predecessor {
	return append([]Predecessor(nil), cfg.preds[block]...)
}
