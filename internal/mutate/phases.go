package mutate

import (
	"github.com/zjy-dev/ir-bugpoint/internal/ir"
	"github.com/zjy-dev/ir-bugpoint/internal/target"
)

// PhaseFactories returns one constructor per phase, in the fixed order
// the pass driver iterates every pass: RemoveInst, ReplaceInstWithConst,
// ReplaceInstWithTrap, RemoveEbb, RemoveUnusedEntities, MergeBlocks. The
// driver calls each factory with the function as it stands at the start
// of that phase, so a fresh mutator's cursor is always seeded against
// live state rather than whatever the function looked like at the start
// of the pass.
func PhaseFactories(features target.Features) []func(f *ir.Function) Mutator {
	return []func(f *ir.Function) Mutator{
		func(f *ir.Function) Mutator { return NewRemoveInst(f) },
		func(f *ir.Function) Mutator { return NewReplaceInstWithConst(f) },
		func(f *ir.Function) Mutator { return NewReplaceInstWithTrap(f) },
		func(f *ir.Function) Mutator { return NewRemoveEbb(f) },
		func(f *ir.Function) Mutator { return NewRemoveUnusedEntities(f) },
		func(f *ir.Function) Mutator { return NewMergeBlocks(f, features) },
	}
}
