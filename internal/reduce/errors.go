package reduce

import "errors"

// ErrNotACrasher is returned when the function given to Reduce does not
// crash the backend under the oracle wrapper to begin with — there is
// nothing to reduce.
var ErrNotACrasher = errors.New("function does not crash the backend")

// errLostCrasher is an internal assertion failure: the function the
// driver believed still crashed failed a final confirmation check. This
// should be unreachable given the driver only ever accepts oracle-confirmed
// candidates, so surfacing it as a distinct error helps tell "input
// wasn't a crasher" apart from "the engine has a bug" at the CLI layer.
var errLostCrasher = errors.New("reduced function unexpectedly stopped crashing")
