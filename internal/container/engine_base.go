// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// BaseCLIEngineOption configures a BaseCLIEngine.
	BaseCLIEngineOption func(*BaseCLIEngine)

	// BaseCLIEngine provides common implementation for CLI-based container
	// engines. Docker and Podman engines embed this struct; every operation
	// shared across CLI engines (Stop, Remove, RemoveVolume, RemoveNetwork,
	// ComposeUp, Exec and their argument builders) is implemented here, while
	// engine-specific methods (Name, Available, Version) remain on the
	// concrete types.
	BaseCLIEngine struct {
		name        string // engine name for error messages (e.g., "docker", "podman")
		binaryPath  string // resolved at construction via exec.LookPath
		execCommand ExecCommandFunc
	}
)

// WithName sets the engine name used in error messages.
func WithName(name string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.name = name
	}
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.execCommand = fn
	}
}

// NewBaseCLIEngine creates a new base engine with the given binary path.
func NewBaseCLIEngine(binaryPath string, opts ...BaseCLIEngineOption) *BaseCLIEngine {
	e := &BaseCLIEngine{
		binaryPath:  binaryPath,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the engine name used in error messages.
func (e *BaseCLIEngine) Name() string {
	return e.name
}

// BinaryPath returns the path to the container engine binary.
func (e *BaseCLIEngine) BinaryPath() string {
	return e.binaryPath
}

// --- Argument Builders ---

// StopArgs constructs arguments for a container stop command.
//
// Generated command: <binary> stop <container>
func (e *BaseCLIEngine) StopArgs(containerName string) []string {
	return []string{"stop", containerName}
}

// RemoveArgs constructs arguments for a container remove command.
//
// Generated command: <binary> rm [-f] <container>
func (e *BaseCLIEngine) RemoveArgs(containerName string, force bool) []string {
	args := []string{"rm"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, containerName)
	return args
}

// VolumeRemoveArgs constructs arguments for a volume remove command.
//
// Generated command: <binary> volume rm <volume>
func (e *BaseCLIEngine) VolumeRemoveArgs(volumeName string) []string {
	return []string{"volume", "rm", volumeName}
}

// NetworkRemoveArgs constructs arguments for a network remove command.
//
// Generated command: <binary> network rm <network>
func (e *BaseCLIEngine) NetworkRemoveArgs(networkName string) []string {
	return []string{"network", "rm", networkName}
}

// ComposeUpArgs constructs arguments for a detached compose-up command.
//
// Generated command: <binary> compose -f <file> up -d
func (e *BaseCLIEngine) ComposeUpArgs(composeFile string) []string {
	return []string{"compose", "-f", composeFile, "up", "-d"}
}

// ExecArgs constructs arguments for a container exec command.
// Env entries are emitted in sorted key order so generated argv is
// deterministic for a given option set.
//
// Generated command: <binary> exec [options] <container> <command...>
func (e *BaseCLIEngine) ExecArgs(containerName string, command []string, opts ExecOptions) []string {
	args := []string{"exec"}

	if opts.WorkDir != "" {
		args = append(args, "-w", opts.WorkDir)
	}

	keys := make([]string, 0, len(opts.Env))
	for k := range opts.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-e", fmt.Sprintf("%s=%s", k, opts.Env[k]))
	}

	args = append(args, containerName)
	args = append(args, command...)

	return args
}

// --- Command Execution ---

// RunCommandStatus executes a command and returns only the error status.
func (e *BaseCLIEngine) RunCommandStatus(ctx context.Context, args ...string) error {
	cmd := e.CreateCommand(ctx, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}
	return nil
}

// RunCommandWithOutput executes a command with stdout captured to a buffer.
func (e *BaseCLIEngine) RunCommandWithOutput(ctx context.Context, args ...string) (string, error) {
	cmd := e.CreateCommand(ctx, args...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}

	return out.String(), nil
}

// CreateCommand creates an exec.Cmd for the given arguments.
// This is useful when the caller needs to customize stdin/stdout/stderr.
func (e *BaseCLIEngine) CreateCommand(ctx context.Context, args ...string) *exec.Cmd {
	return e.execCommand(ctx, e.binaryPath, args...)
}

// --- Promoted Engine Methods (shared by Docker and Podman) ---

// Stop stops a running container.
func (e *BaseCLIEngine) Stop(ctx context.Context, containerName string) error {
	return e.RunCommandStatus(ctx, e.StopArgs(containerName)...)
}

// Remove removes a container.
func (e *BaseCLIEngine) Remove(ctx context.Context, containerName string, force bool) error {
	return e.RunCommandStatus(ctx, e.RemoveArgs(containerName, force)...)
}

// RemoveVolume removes a named volume.
func (e *BaseCLIEngine) RemoveVolume(ctx context.Context, volumeName string) error {
	return e.RunCommandStatus(ctx, e.VolumeRemoveArgs(volumeName)...)
}

// RemoveNetwork removes a named network.
func (e *BaseCLIEngine) RemoveNetwork(ctx context.Context, networkName string) error {
	return e.RunCommandStatus(ctx, e.NetworkRemoveArgs(networkName)...)
}

// ComposeUp starts the services of a compose file in detached mode.
func (e *BaseCLIEngine) ComposeUp(ctx context.Context, composeFile string) error {
	return e.RunCommandStatus(ctx, e.ComposeUpArgs(composeFile)...)
}

// Exec runs a command in a running container. A non-zero exit code is
// captured in ExecResult.ExitCode (not returned as error); only
// infrastructure failures set ExecResult.Error.
func (e *BaseCLIEngine) Exec(ctx context.Context, containerName string, command []string, opts ExecOptions) (*ExecResult, error) {
	args := e.ExecArgs(containerName, command, opts)

	cmd := e.CreateCommand(ctx, args...)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	err := cmd.Run()

	result := &ExecResult{}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
			result.Error = err
		}
	}

	return result, nil
}
