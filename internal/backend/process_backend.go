package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"syscall"

	"github.com/zjy-dev/ir-bugpoint/internal/ir"
	"github.com/zjy-dev/ir-bugpoint/internal/target"
)

// ExecResult is the outcome of running an external command.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner runs an external command and reports its outcome. Kept
// as an interface so tests can substitute a fake without touching the OS.
type CommandRunner interface {
	Run(name string, args ...string) (*ExecResult, error)
}

// OSCommandRunner runs commands against the real host.
type OSCommandRunner struct{}

// Run executes name with args, capturing stdout/stderr and the exit code.
// A non-zero exit status is reported through ExitCode, not as an error;
// only commands that could not even be started (e.g. not found) return err.
// A process killed by a signal is reported with ExitCode 128+signum.
func (OSCommandRunner) Run(name string, args ...string) (*ExecResult, error) {
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &ExecResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}

	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return nil, err
		}
	}
	if ws, ok := cmd.ProcessState.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		result.ExitCode = 128 + int(ws.Signal())
	}
	return result, nil
}

// ProcessBackend drives an out-of-process code generator: the candidate
// function is serialized to JSON and passed to CompilerPath as its final
// command-line argument, and
// the subprocess's exit status stands in for the in-process panic the
// oracle wrapper otherwise catches directly. This is the child-process
// crash-isolation path spec.md section 9 calls for when the host runtime
// offers no in-process unwinding to catch.
type ProcessBackend struct {
	CompilerPath string
	Runner       CommandRunner
	VerifyArgs   []string
	CompileArgs  []string
}

// NewProcessBackend builds a ProcessBackend that shells out to compilerPath.
func NewProcessBackend(compilerPath string) *ProcessBackend {
	return &ProcessBackend{
		CompilerPath: compilerPath,
		Runner:       OSCommandRunner{},
		VerifyArgs:   []string{"--verify"},
		CompileArgs:  []string{"--compile"},
	}
}

func (p *ProcessBackend) run(f *ir.Function, _ target.Descriptor, args []string) (*ExecResult, error) {
	payload, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshal candidate function: %w", err)
	}
	allArgs := append(append([]string(nil), args...), string(payload))
	return p.Runner.Run(p.CompilerPath, allArgs...)
}

// Verify shells out with VerifyArgs; a non-zero exit is reported as a
// verifier error.
func (p *ProcessBackend) Verify(f *ir.Function, t target.Descriptor) error {
	res, err := p.run(f, t, p.VerifyArgs)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("verifier rejected candidate: %s", res.Stderr)
	}
	return nil
}

// CompileAndEmit shells out with CompileArgs. A crash-indicating exit
// status (killed by signal, conventionally 128+signum) is turned into a
// panic so the oracle wrapper's single panic-catching path handles both
// in-process and out-of-process backends uniformly.
func (p *ProcessBackend) CompileAndEmit(f *ir.Function, t target.Descriptor) error {
	res, err := p.run(f, t, p.CompileArgs)
	if err != nil {
		return err
	}
	if isCrashExitCode(res.ExitCode) {
		msg := res.Stderr
		if msg == "" {
			msg = fmt.Sprintf("subprocess exited with status %d", res.ExitCode)
		}
		panic(msg)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("compile failed with status %d: %s", res.ExitCode, res.Stderr)
	}
	return nil
}

// isCrashExitCode reports whether code looks like a process killed by a
// signal under the common `128+signum` convention (SIGSEGV, SIGABRT,
// SIGBUS, SIGILL, SIGFPE).
func isCrashExitCode(code int) bool {
	switch code {
	case 128 + 4, 128 + 6, 128 + 7, 128 + 8, 128 + 11:
		return true
	default:
		return false
	}
}
