// SPDX-License-Identifier: MPL-2.0

// Package container provides a unified abstraction layer for container
// engines (Docker/Podman).
//
// The Engine interface defines the operations the reset sequencer and the
// provisioner need: Stop, Remove, RemoveVolume, RemoveNetwork, ComposeUp,
// and Exec. Two implementations are provided: DockerEngine and PodmanEngine,
// both embedding BaseCLIEngine for shared argument construction and command
// execution. Every invocation is argument-list based; no command line is ever
// assembled as a shell string.
//
// Engine selection uses NewEngine(EngineType) with automatic fallback if the
// preferred engine is unavailable, or AutoDetectEngine() for preference-less
// detection.
package container
