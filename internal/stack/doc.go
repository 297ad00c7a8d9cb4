// SPDX-License-Identifier: MPL-2.0

// Package stack orchestrates the destructive reset of the local development
// infrastructure: a strictly ordered five-phase workflow that stops and
// removes the database, localstack, and redis containers, deletes their
// volumes, prunes the compose network, recreates every service from its
// compose file, waits a fixed settle delay, and finally delegates to the
// cloud resource provisioner.
//
// No phase aborts the sequence on error. Teardown failures are recorded as
// already-absent (the resource may simply not exist), missing compose files
// are skipped with a warning, and the workflow always runs to its end so the
// stack converges on a clean state even when individual steps were no-ops.
// The operator confirmation gate lives in the CLI layer; by the time Run is
// called the data loss has been consented to.
package stack
