// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"io"
)

// Engine defines the interface for container runtime operations.
type Engine interface {
	// Name returns the engine name (docker or podman).
	Name() string
	// Available checks if the engine is available on the system.
	Available() bool
	// Version returns the engine version.
	Version(ctx context.Context) (string, error)

	// Stop stops a running container.
	Stop(ctx context.Context, containerName string) error
	// Remove removes a container.
	Remove(ctx context.Context, containerName string, force bool) error
	// RemoveVolume removes a named volume. This destroys the volume's data.
	RemoveVolume(ctx context.Context, volumeName string) error
	// RemoveNetwork removes a named network.
	RemoveNetwork(ctx context.Context, networkName string) error
	// ComposeUp starts the services of a compose file in detached mode.
	ComposeUp(ctx context.Context, composeFile string) error
	// Exec runs a command in a running container.
	Exec(ctx context.Context, containerName string, command []string, opts ExecOptions) (*ExecResult, error)
}

// ExecOptions contains options for executing a command in a running container.
type ExecOptions struct {
	// Env contains extra environment variables for the command.
	Env map[string]string
	// WorkDir is the working directory inside the container.
	WorkDir string
	// Stdout is where to write standard output.
	Stdout io.Writer
	// Stderr is where to write standard error.
	Stderr io.Writer
}

// ExecResult contains the result of executing a command in a container.
// A non-zero exit code is captured in ExitCode, not returned as an error;
// Error is set only for infrastructure failures (binary missing, etc.).
type ExecResult struct {
	ExitCode int
	Error    error
}

// Ok reports whether the command completed with a zero exit code and no
// infrastructure failure.
func (r *ExecResult) Ok() bool {
	return r != nil && r.ExitCode == 0 && r.Error == nil
}

// EngineType identifies the container engine type.
type EngineType string

const (
	EngineTypeDocker EngineType = "docker"
	EngineTypePodman EngineType = "podman"
)

// ErrEngineNotAvailable is returned when a container engine is not available.
type ErrEngineNotAvailable struct {
	Engine string
	Reason string
}

func (e *ErrEngineNotAvailable) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// NewEngine creates a new container engine based on preference, falling back
// to the other engine when the preferred one is not installed or reachable.
func NewEngine(preferredType EngineType) (Engine, error) {
	switch preferredType {
	case EngineTypeDocker:
		engine := NewDockerEngine()
		if engine.Available() {
			return engine, nil
		}
		podmanEngine := NewPodmanEngine()
		if podmanEngine.Available() {
			return podmanEngine, nil
		}
		return nil, &ErrEngineNotAvailable{
			Engine: "docker",
			Reason: "docker is not installed or not accessible, and podman fallback is also not available",
		}

	case EngineTypePodman:
		engine := NewPodmanEngine()
		if engine.Available() {
			return engine, nil
		}
		dockerEngine := NewDockerEngine()
		if dockerEngine.Available() {
			return dockerEngine, nil
		}
		return nil, &ErrEngineNotAvailable{
			Engine: "podman",
			Reason: "podman is not installed or not accessible, and docker fallback is also not available",
		}

	default:
		return nil, fmt.Errorf("unknown container engine type: %s", preferredType)
	}
}

// AutoDetectEngine tries to find an available container engine.
func AutoDetectEngine() (Engine, error) {
	docker := NewDockerEngine()
	if docker.Available() {
		return docker, nil
	}

	podman := NewPodmanEngine()
	if podman.Available() {
		return podman, nil
	}

	return nil, &ErrEngineNotAvailable{
		Engine: "any",
		Reason: "no container engine (docker or podman) is available on this system",
	}
}
