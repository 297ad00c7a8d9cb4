// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"testing"
)

type (
	// MockCommandRecorder captures arguments passed to exec.Command for
	// verification. It uses the TestHelperProcess pattern to simulate command
	// execution.
	MockCommandRecorder struct {
		// Invocations records each call to the mock exec.Command
		Invocations []MockInvocation
		// ExitCode is the exit code to return (0 = success)
		ExitCode int
		// Stdout is the output to write to stdout
		Stdout string
		// Stderr is the output to write to stderr
		Stderr string
		// FailOnSubcommand can be set to a subcommand that should fail
		FailOnSubcommand string
	}

	// MockInvocation represents a single invocation of exec.Command.
	MockInvocation struct {
		// Name is the command name (e.g., "docker", "podman")
		Name string
		// Args are the arguments passed to the command
		Args []string
	}
)

// NewMockCommandRecorder creates a new recorder with default settings (success, no output).
func NewMockCommandRecorder() *MockCommandRecorder {
	return &MockCommandRecorder{
		Invocations: make([]MockInvocation, 0),
		ExitCode:    0,
	}
}

// CommandFunc returns a function that can replace execCommand for testing.
// The function records invocations and returns a command that runs TestHelperProcess.
func (m *MockCommandRecorder) CommandFunc(t *testing.T) ExecCommandFunc {
	t.Helper()
	return func(_ context.Context, name string, args ...string) *exec.Cmd {
		m.Invocations = append(m.Invocations, MockInvocation{
			Name: name,
			Args: args,
		})

		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, args...)
		cmd := exec.Command(os.Args[0], cs...)
		cmd.Env = []string{
			"GO_WANT_HELPER_PROCESS=1",
			fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", m.ExitCode),
			fmt.Sprintf("GO_HELPER_STDOUT=%s", m.Stdout),
			fmt.Sprintf("GO_HELPER_STDERR=%s", m.Stderr),
		}

		// Duplicate env entries are resolved last-wins by os/exec.
		if m.FailOnSubcommand != "" && len(args) > 0 && args[0] == m.FailOnSubcommand {
			cmd.Env = append(cmd.Env, "GO_HELPER_EXIT_CODE=1")
		}

		return cmd
	}
}

// LastInvocation returns the most recent invocation, or nil if none.
func (m *MockCommandRecorder) LastInvocation() *MockInvocation {
	if len(m.Invocations) == 0 {
		return nil
	}
	return &m.Invocations[len(m.Invocations)-1]
}

// LastArgs returns the arguments from the most recent invocation.
func (m *MockCommandRecorder) LastArgs() []string {
	if inv := m.LastInvocation(); inv != nil {
		return inv.Args
	}
	return nil
}

// AssertArgsEqual verifies the last invocation args match exactly.
func (m *MockCommandRecorder) AssertArgsEqual(t *testing.T, expected []string) {
	t.Helper()
	if got := m.LastArgs(); !slices.Equal(got, expected) {
		t.Errorf("expected args %v, got %v", expected, got)
	}
}

// AssertArgsContainAll verifies that the last invocation args contain all expected strings.
func (m *MockCommandRecorder) AssertArgsContainAll(t *testing.T, expected []string) {
	t.Helper()
	args := m.LastArgs()
	argsStr := strings.Join(args, " ")
	for _, exp := range expected {
		if !strings.Contains(argsStr, exp) {
			t.Errorf("expected args to contain %q, got: %v", exp, args)
		}
	}
}

// AssertInvocationCount verifies the number of command invocations.
func (m *MockCommandRecorder) AssertInvocationCount(t *testing.T, expected int) {
	t.Helper()
	if len(m.Invocations) != expected {
		t.Errorf("expected %d invocations, got %d", expected, len(m.Invocations))
	}
}

// HasArgPair checks if the last invocation contains a flag-value pair (e.g., "-f", "db.yaml").
func (m *MockCommandRecorder) HasArgPair(flag, value string) bool {
	args := m.LastArgs()
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

// Reset clears all recorded invocations.
func (m *MockCommandRecorder) Reset() {
	m.Invocations = m.Invocations[:0]
}

// TestHelperProcess is used by the mock to simulate command execution.
// It reads configuration from environment variables and outputs accordingly.
// This function should not be called directly - it is invoked by the mock.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	if stdout := os.Getenv("GO_HELPER_STDOUT"); stdout != "" {
		fmt.Fprint(os.Stdout, stdout)
	}
	if stderr := os.Getenv("GO_HELPER_STDERR"); stderr != "" {
		fmt.Fprint(os.Stderr, stderr)
	}

	code := 0
	if v := os.Getenv("GO_HELPER_EXIT_CODE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			code = n
		}
	}
	os.Exit(code)
}
