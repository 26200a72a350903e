// Package reduce drives the fixpoint search that shrinks a crashing
// function: repeated passes over the mutator family, accepting any
// candidate the oracle still reports as a crash, until a full pass makes
// no progress or a safety cap is hit.
package reduce

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/zjy-dev/ir-bugpoint/internal/ir"
	"github.com/zjy-dev/ir-bugpoint/internal/mutate"
	"github.com/zjy-dev/ir-bugpoint/internal/oracle"
	"github.com/zjy-dev/ir-bugpoint/internal/target"
)

const (
	maxPasses          = 100
	maxCandidatesPerPhase = 10000
)

// Result is the outcome of a successful reduction.
type Result struct {
	Function     *ir.Function
	CrashMessage string
}

// Limits caps the pass driver's search: MaxPasses bounds the outer
// fixpoint loop and MaxCandidates bounds each phase's inner candidate
// loop. A zero field falls back to the package's default safety cap.
type Limits struct {
	MaxPasses     int
	MaxCandidates int
}

func (l Limits) withDefaults() Limits {
	if l.MaxPasses <= 0 {
		l.MaxPasses = maxPasses
	}
	if l.MaxCandidates <= 0 {
		l.MaxCandidates = maxCandidatesPerPhase
	}
	return l
}

// Reduce repeatedly applies the mutator family to f, keeping only
// candidates the oracle still reports as crashing, until a full pass
// makes no further progress. ctx is checked cooperatively between
// candidates; cancellation returns the best function found so far
// alongside ctx.Err(). limits caps the search; its zero value applies
// the package defaults.
func Reduce(ctx context.Context, w *oracle.Wrapper, features target.Features, f *ir.Function, limits Limits, progress Progress) (Result, error) {
	if progress == nil {
		progress = NullProgress{}
	}
	limits = limits.withDefaults()

	initial := w.Check(f)
	if initial.Succeeded() {
		return Result{}, ErrNotACrasher
	}

	ir.ResolveAliases(f)

	lastMessage := initial.Message
	var runErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for pass := 0; pass < limits.MaxPasses; pass++ {
			progress.SetPrefix(fmt.Sprintf("pass %d", pass))
			progressed := false

			for _, newMutator := range mutate.PhaseFactories(features) {
				m := newMutator(f)
				progress.SetMessage(m.Name())
				progress.SetLength(m.MutationCount(f))

				for step := 0; step < limits.MaxCandidates; step++ {
					if err := gctx.Err(); err != nil {
						return err
					}

					candidate := f.Clone()
					result, msg, status, ok := m.Mutate(candidate)
					if !ok {
						break
					}
					progress.SetPosition(step)
					if status == mutate.Skip {
						continue
					}

					outcome := w.Check(result)
					if outcome.Succeeded() {
						continue
					}

					f = result
					lastMessage = outcome.Message
					m.DidCrash()
					progress.Println(msg)
					if status == mutate.ExpandedOrShrunk {
						progressed = true
					}
				}
			}

			if !progressed {
				break
			}
		}
		return nil
	})
	runErr = g.Wait()

	progress.Finish()

	if runErr != nil {
		return Result{Function: f, CrashMessage: lastMessage}, runErr
	}

	final := w.Check(f)
	if final.Succeeded() {
		return Result{}, errLostCrasher
	}

	return Result{Function: f, CrashMessage: lastMessage}, nil
}
