// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	// ContainerEngineDocker uses Docker as the container runtime.
	ContainerEngineDocker ContainerEngine = "docker"
	// ContainerEnginePodman uses Podman as the container runtime.
	ContainerEnginePodman ContainerEngine = "podman"

	// DefaultContainerEngine is the engine used when CONTAINER_RUNTIME is
	// unset or not recognized.
	DefaultContainerEngine = ContainerEngineDocker
)

// ErrInvalidContainerEngine is the sentinel error wrapped by InvalidContainerEngineError.
var ErrInvalidContainerEngine = errors.New("invalid container engine")

type (
	// ContainerEngine specifies which container runtime CLI to drive.
	ContainerEngine string

	// InvalidContainerEngineError is returned when a ContainerEngine value is
	// not recognized. It wraps ErrInvalidContainerEngine for errors.Is() compatibility.
	InvalidContainerEngineError struct {
		Value ContainerEngine
	}

	// ComposeService pairs a logical service name with its compose file path.
	ComposeService struct {
		// Name is the logical service name (database, localstack, redis).
		Name string
		// Path is the absolute path to the service's compose file.
		Path string
	}

	// Config is the fully-resolved configuration bundle. It is built once at
	// startup by Load and passed by reference to every downstream component;
	// nothing reads the process environment after resolution.
	Config struct {
		// ContainerEngine is the validated runtime selector.
		ContainerEngine ContainerEngine

		// EnvFile is the config file the bundle was resolved from, empty when
		// resolution used process environment and defaults only.
		EnvFile string

		// Container names managed by the reset sequencer.
		DBContainer         string
		LocalstackContainer string
		RedisContainer      string

		// Volume names removed during a reset. Removing them is the one
		// irreversible data-loss step of the workflow.
		DBVolume         string
		LocalstackVolume string
		RedisVolume      string

		// Network is the compose network pruned during a reset.
		Network string

		// Region is the AWS region passed to every emulator call.
		Region string
		// EndpointURL is the emulator's control-plane endpoint.
		EndpointURL string

		// S3 bucket names.
		DocumentsBucket string
		VectorsBucket   string
		FilesBucket     string

		// DynamoDB table names.
		PodsTable       string
		ExecutionsTable string
		ContextTable    string
		SessionsTable   string
		CacheTable      string

		// SES sender identities registered for verification.
		NoReplyEmail string
		SupportEmail string

		// SQS queue pair. ProcessingQueue is FIFO with content-based
		// deduplication; ProcessingDLQ is its dead-letter counterpart.
		ProcessingQueue string
		ProcessingDLQ   string

		// ComposeDir holds the per-service compose files.
		ComposeDir string

		// SettleDelay is how long the sequencer waits after compose-up before
		// provisioning. A fixed wait, not a readiness check.
		SettleDelay time.Duration
	}
)

// String returns the string representation of the ContainerEngine.
func (e ContainerEngine) String() string { return string(e) }

// Validate returns an error if the ContainerEngine is not one of the
// supported runtimes.
func (e ContainerEngine) Validate() error {
	switch e {
	case ContainerEngineDocker, ContainerEnginePodman:
		return nil
	default:
		return &InvalidContainerEngineError{Value: e}
	}
}

// Error implements the error interface.
func (e *InvalidContainerEngineError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: docker, podman)", e.Value)
}

// Unwrap returns ErrInvalidContainerEngine so callers can use errors.Is for
// programmatic detection.
func (e *InvalidContainerEngineError) Unwrap() error { return ErrInvalidContainerEngine }

// NormalizeContainerEngine normalizes a raw runtime selector (lowercased,
// whitespace trimmed) and coerces unrecognized values to the default engine.
// The second return reports whether coercion happened, so callers can surface
// a warning; the coercion itself is corrective, never fatal.
func NormalizeContainerEngine(raw string) (ContainerEngine, bool) {
	engine := ContainerEngine(strings.ToLower(strings.TrimSpace(raw)))
	if err := engine.Validate(); err != nil {
		return DefaultContainerEngine, true
	}
	return engine, false
}

// ComposeServices returns the compose definitions the sequencer recreates, in
// start order.
func (c *Config) ComposeServices() []ComposeService {
	return []ComposeService{
		{Name: "database", Path: filepath.Join(c.ComposeDir, "db-docker-compose.yaml")},
		{Name: "localstack", Path: filepath.Join(c.ComposeDir, "localstack-docker-compose.yaml")},
		{Name: "redis", Path: filepath.Join(c.ComposeDir, "redis-docker-compose.yaml")},
	}
}

// ContainerNames returns the managed container names in teardown order.
func (c *Config) ContainerNames() []string {
	return []string{c.DBContainer, c.LocalstackContainer, c.RedisContainer}
}

// VolumeNames returns the managed volume names in teardown order.
func (c *Config) VolumeNames() []string {
	return []string{c.DBVolume, c.LocalstackVolume, c.RedisVolume}
}
