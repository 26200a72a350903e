package backend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjy-dev/ir-bugpoint/internal/backend"
	"github.com/zjy-dev/ir-bugpoint/internal/ir"
	"github.com/zjy-dev/ir-bugpoint/internal/target"
)

// fakeRunner is a CommandRunner stand-in that returns a scripted result
// without touching the OS, mirroring the exec package's real runner
// shape closely enough that ProcessBackend can't tell the difference.
type fakeRunner struct {
	result *backend.ExecResult
	err    error
	lastArgs []string
}

func (f *fakeRunner) Run(name string, args ...string) (*backend.ExecResult, error) {
	f.lastArgs = args
	return f.result, f.err
}

func buildFunction() *ir.Function {
	f := ir.New("sample")
	b0 := f.AddBlock()
	f.AppendInst(b0, ir.ReturnData())
	return f
}

func TestProcessBackendVerifyNonZeroExitIsError(t *testing.T) {
	runner := &fakeRunner{result: &backend.ExecResult{ExitCode: 1, Stderr: "bad input"}}
	b := backend.NewProcessBackend("fake-compiler")
	b.Runner = runner

	err := b.Verify(buildFunction(), target.Descriptor{Name: "test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad input")
}

func TestProcessBackendVerifySucceedsOnZeroExit(t *testing.T) {
	runner := &fakeRunner{result: &backend.ExecResult{ExitCode: 0}}
	b := backend.NewProcessBackend("fake-compiler")
	b.Runner = runner

	err := b.Verify(buildFunction(), target.Descriptor{Name: "test"})
	assert.NoError(t, err)
}

func TestProcessBackendCompileAndEmitPanicsOnCrashExitCode(t *testing.T) {
	runner := &fakeRunner{result: &backend.ExecResult{ExitCode: 128 + 11, Stderr: "segfault"}}
	b := backend.NewProcessBackend("fake-compiler")
	b.Runner = runner

	assert.PanicsWithValue(t, "segfault", func() {
		_ = b.CompileAndEmit(buildFunction(), target.Descriptor{Name: "test"})
	})
}

func TestProcessBackendCompileAndEmitNonCrashErrorReturnsError(t *testing.T) {
	runner := &fakeRunner{result: &backend.ExecResult{ExitCode: 1, Stderr: "internal error"}}
	b := backend.NewProcessBackend("fake-compiler")
	b.Runner = runner

	err := b.CompileAndEmit(buildFunction(), target.Descriptor{Name: "test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal error")
}

func TestProcessBackendCompileAndEmitSucceedsOnZeroExit(t *testing.T) {
	runner := &fakeRunner{result: &backend.ExecResult{ExitCode: 0}}
	b := backend.NewProcessBackend("fake-compiler")
	b.Runner = runner

	err := b.CompileAndEmit(buildFunction(), target.Descriptor{Name: "test"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"--compile"}, runner.lastArgs[:1])
}
