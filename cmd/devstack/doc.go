// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for devstack.
//
// This package implements the Cobra command hierarchy for the devstack CLI:
// the root command, the destructive `reset` workflow with its confirmation
// gate, and the standalone `provision` command.
package cmd
