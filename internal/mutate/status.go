package mutate

// Status reports how a candidate produced by Mutator.Mutate compares to
// the function it was derived from.
type Status int

const (
	// Skip means the candidate is identical to the input (or otherwise
	// undesirable to try) and must never reach the oracle; the driver
	// counts the step and moves on without a crash check.
	Skip Status = iota

	// Changed means a candidate was produced that does not shrink the
	// function, but may still enable further reductions later.
	Changed

	// ExpandedOrShrunk means a candidate was produced whose size may have
	// changed in either direction. Most mutators that report it only
	// shrink the function; ReplaceInstWithConst reports it when it splits
	// a multi-result instruction into one constant per result, which
	// raises the instruction count.
	ExpandedOrShrunk
)

func (s Status) String() string {
	switch s {
	case Skip:
		return "skip"
	case Changed:
		return "changed"
	case ExpandedOrShrunk:
		return "expanded_or_shrunk"
	default:
		return "unknown"
	}
}
