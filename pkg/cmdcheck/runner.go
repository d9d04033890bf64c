package cmdcheck

import (
	"context"
	"os/exec"
)

// Runner abstracts command lookup and execution for testability.
type Runner interface {
	LookPath(file string) (string, error)
	CombinedOutput(ctx context.Context, name string, args ...string) (string, error)
}

// RealRunner runs actual OS commands.
type RealRunner struct{}

// LookPath searches for an executable in PATH.
func (RealRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// CombinedOutput executes a command under the given context and
// returns its combined stdout and stderr.
func (RealRunner) CombinedOutput(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

// MockRunner is a test double for Runner.
type MockRunner struct {
	LookPathFunc       func(file string) (string, error)
	CombinedOutputFunc func(ctx context.Context, name string, args ...string) (string, error)
}

func (m *MockRunner) LookPath(file string) (string, error) {
	return m.LookPathFunc(file)
}

func (m *MockRunner) CombinedOutput(ctx context.Context, name string, args ...string) (string, error) {
	return m.CombinedOutputFunc(ctx, name, args...)
}
