// Package target describes the opaque handle identifying which backend
// code generator the reduction engine's oracle should invoke, plus the
// build-time feature flags that change mutator behavior.
package target

// Descriptor identifies a code-generation backend. The reduction engine
// never inspects its fields; it only threads the value through to the
// backend.Backend implementation the oracle wraps.
type Descriptor struct {
	// Name identifies the backend/ISA, e.g. "x86_64", "aarch64".
	Name string

	// Triple is an optional target-triple string, passed through
	// verbatim to whichever backend.Backend implementation is wired up.
	Triple string
}

// Features are build-time flags that change mutator behavior. They are
// not backend properties; they're part of how bugpoint itself was built,
// mirroring the original tool's Cargo feature flags.
type Features struct {
	// BasicBlocks enables the stricter MergeBlocks mode that refuses to
	// merge a block whose unique predecessor ends in a
	// conditional-branch-then-unconditional-branch pair, to avoid
	// breaking that idiom apart.
	BasicBlocks bool
}
