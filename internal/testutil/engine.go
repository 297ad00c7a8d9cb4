// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"fmt"
	"sync"

	"flopods-devstack/internal/container"
)

type (
	// EngineCall records one invocation of a FakeEngine method.
	EngineCall struct {
		// Method is the Engine method name (Stop, Remove, RemoveVolume,
		// RemoveNetwork, ComposeUp, Exec).
		Method string
		// Target is the container/volume/network/compose-file the call
		// addressed.
		Target string
		// Args is the exec argv; nil for non-exec calls.
		Args []string
	}

	// FakeEngine is an in-memory container.Engine that records calls instead
	// of shelling out. Failure behavior is configured per method family.
	FakeEngine struct {
		mu    sync.Mutex
		calls []EngineCall

		// StopErr, RemoveErr, VolumeErr, NetworkErr, ComposeErr are returned
		// by every call of the corresponding method when non-nil.
		StopErr    error
		RemoveErr  error
		VolumeErr  error
		NetworkErr error
		ComposeErr error

		// ExecExitCode is the exit code reported for Exec calls; ExecHook, if
		// set, takes precedence and computes the result per call.
		ExecExitCode int
		ExecStdout   string
		ExecHook     func(containerName string, argv []string) *container.ExecResult
	}
)

var _ container.Engine = (*FakeEngine)(nil)

// NewFakeEngine creates a FakeEngine where every operation succeeds.
func NewFakeEngine() *FakeEngine {
	return &FakeEngine{}
}

// Name returns the fake engine name.
func (e *FakeEngine) Name() string { return "fake" }

// Available always reports true.
func (e *FakeEngine) Available() bool { return true }

// Version returns a fixed test version.
func (e *FakeEngine) Version(context.Context) (string, error) { return "0.0.0-test", nil }

// Stop records the call and returns StopErr.
func (e *FakeEngine) Stop(_ context.Context, containerName string) error {
	e.record(EngineCall{Method: "Stop", Target: containerName})
	return e.StopErr
}

// Remove records the call and returns RemoveErr.
func (e *FakeEngine) Remove(_ context.Context, containerName string, _ bool) error {
	e.record(EngineCall{Method: "Remove", Target: containerName})
	return e.RemoveErr
}

// RemoveVolume records the call and returns VolumeErr.
func (e *FakeEngine) RemoveVolume(_ context.Context, volumeName string) error {
	e.record(EngineCall{Method: "RemoveVolume", Target: volumeName})
	return e.VolumeErr
}

// RemoveNetwork records the call and returns NetworkErr.
func (e *FakeEngine) RemoveNetwork(_ context.Context, networkName string) error {
	e.record(EngineCall{Method: "RemoveNetwork", Target: networkName})
	return e.NetworkErr
}

// ComposeUp records the call and returns ComposeErr.
func (e *FakeEngine) ComposeUp(_ context.Context, composeFile string) error {
	e.record(EngineCall{Method: "ComposeUp", Target: composeFile})
	return e.ComposeErr
}

// Exec records the call and reports the configured result, writing
// ExecStdout to the caller's stdout writer on success.
func (e *FakeEngine) Exec(_ context.Context, containerName string, command []string, opts container.ExecOptions) (*container.ExecResult, error) {
	argv := make([]string, len(command))
	copy(argv, command)
	e.record(EngineCall{Method: "Exec", Target: containerName, Args: argv})

	if e.ExecHook != nil {
		return e.ExecHook(containerName, argv), nil
	}

	result := &container.ExecResult{ExitCode: e.ExecExitCode}
	if result.Ok() && e.ExecStdout != "" && opts.Stdout != nil {
		fmt.Fprint(opts.Stdout, e.ExecStdout)
	}
	return result, nil
}

// Calls returns a copy of the recorded calls in invocation order.
func (e *FakeEngine) Calls() []EngineCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]EngineCall, len(e.calls))
	copy(out, e.calls)
	return out
}

// CallsTo returns the recorded calls for one method, in invocation order.
func (e *FakeEngine) CallsTo(method string) []EngineCall {
	var out []EngineCall
	for _, c := range e.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears the recorded calls.
func (e *FakeEngine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = nil
}

func (e *FakeEngine) record(c EngineCall) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, c)
}
