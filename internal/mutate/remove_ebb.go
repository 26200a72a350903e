package mutate

import (
	"fmt"

	"github.com/zjy-dev/ir-bugpoint/internal/ir"
)

// RemoveEbb walks blocks after the entry block in layout order and tries
// deleting each one wholesale, instructions and all. The entry block is
// never visited: the cursor starts at the block after it and only ever
// moves forward.
type RemoveEbb struct {
	next      ir.BlockID
	exhausted bool
}

// NewRemoveEbb seeds a cursor at the block following f's entry block.
func NewRemoveEbb(f *ir.Function) *RemoveEbb {
	entry, ok := f.EntryBlock()
	if !ok {
		return &RemoveEbb{exhausted: true}
	}
	next, ok := f.NextBlock(entry)
	return &RemoveEbb{next: next, exhausted: !ok}
}

func (m *RemoveEbb) Name() string { return "remove ebb" }

func (m *RemoveEbb) MutationCount(f *ir.Function) int { return ir.BlockCount(f) }

func (m *RemoveEbb) Mutate(f *ir.Function) (*ir.Function, string, Status, bool) {
	if m.exhausted {
		return nil, "", Skip, false
	}
	target := m.next
	after, ok := f.NextBlock(target)
	m.next = after
	m.exhausted = !ok

	b, _ := f.Block(target)
	for {
		last, has := b.LastInst()
		if !has {
			break
		}
		f.RemoveInst(last)
	}
	f.RemoveBlock(target)

	return f, fmt.Sprintf("remove ebb %s", target), ExpandedOrShrunk, true
}

func (m *RemoveEbb) DidCrash() {}
