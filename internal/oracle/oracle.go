// Package oracle wraps a backend.Backend with the crash-detection
// contract the reduction engine drives every candidate function through:
// a verifier error and a verifier panic both count as Succeed, only a
// code-generator panic counts as Crash. A Wrapper holds no scratch
// compilation context or code buffer of its own; each Check calls
// straight through to the backend, and any reuse of scratch state is up
// to the backend.Backend implementation.
package oracle

import (
	"fmt"

	"github.com/sourcegraph/conc/panics"

	"github.com/zjy-dev/ir-bugpoint/internal/backend"
	"github.com/zjy-dev/ir-bugpoint/internal/ir"
	"github.com/zjy-dev/ir-bugpoint/internal/target"
)

// Outcome is the result of running a candidate function through a Wrapper.
type Outcome struct {
	// Crashed is true iff the backend's code generator panicked.
	Crashed bool

	// Message is the recovered panic text when Crashed is true.
	Message string
}

// Succeeded reports whether the candidate compiled (or was rejected by
// the verifier) without crashing.
func (o Outcome) Succeeded() bool { return !o.Crashed }

// Wrapper drives a backend.Backend through the crash-check contract.
// It is not safe for concurrent use: callers reuse one Wrapper per
// goroutine so the crash isolation stays cheap across thousands of
// candidates in a reduction pass.
type Wrapper struct {
	Backend backend.Backend
	Target  target.Descriptor
}

// New builds a Wrapper around b for the given target.
func New(b backend.Backend, t target.Descriptor) *Wrapper {
	return &Wrapper{Backend: b, Target: t}
}

// Check runs f through Verify then CompileAndEmit, catching any panic
// from either call. A verifier error, and a verifier panic, both map to
// Outcome{Crashed: false} — the engine is hunting code-generator bugs,
// not malformed-input rejections. Only a panic out of CompileAndEmit is
// reported as a crash.
func (w *Wrapper) Check(f *ir.Function) Outcome {
	var verifyErr error
	var verifyCatcher panics.Catcher
	verifyCatcher.Try(func() {
		verifyErr = w.Backend.Verify(f, w.Target)
	})
	if r := verifyCatcher.Recovered(); r != nil {
		// The verifier panicked rather than returning an error. Treat it
		// the same as a clean verifier rejection: compiling the same
		// function would very likely reproduce the same panic, and this
		// engine is chasing code-generator crashes, not verifier ones.
		return Outcome{Crashed: false}
	}
	if verifyErr != nil {
		return Outcome{Crashed: false}
	}

	var compileCatcher panics.Catcher
	compileCatcher.Try(func() {
		_ = w.Backend.CompileAndEmit(f, w.Target)
	})
	if r := compileCatcher.Recovered(); r != nil {
		return Outcome{Crashed: true, Message: panicString(r)}
	}
	return Outcome{Crashed: false}
}

func panicString(r *panics.Recovered) string {
	switch v := r.Value.(type) {
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
