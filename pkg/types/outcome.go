// SPDX-License-Identifier: MPL-2.0

// Package types defines cross-cutting value types shared by the stack and
// provision packages. This package is a leaf dependency: it imports only the
// standard library.
package types

import (
	"errors"
	"fmt"
)

const (
	// OutcomeSucceeded means the operation completed and changed external state.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeAlreadyAbsent means a teardown operation found nothing to tear down.
	// Absence of a resource is never a hard error during a reset.
	OutcomeAlreadyAbsent Outcome = "already-absent"
	// OutcomeAlreadyExists means a creation operation found the resource in place.
	// Creation failures are reported under this outcome without inspecting the
	// cause; the provisioner is idempotent by convention, not by verification.
	OutcomeAlreadyExists Outcome = "already-exists"
	// OutcomeSkipped means a required artifact (compose file, delegated
	// provisioner) was missing and the step was bypassed with a warning.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means an operation genuinely failed, such as a compose-up
	// that could not start its services. The run still continues; the failure
	// is surfaced in the final summary.
	OutcomeFailed Outcome = "failed"
)

// ErrInvalidOutcome is the sentinel error wrapped by InvalidOutcomeError.
var ErrInvalidOutcome = errors.New("invalid outcome")

type (
	// Outcome classifies the result of a single infrastructure operation.
	// The sequencer and provisioner never abort on tolerated outcomes; the
	// enumeration exists so callers can tell a no-op skip from real work.
	Outcome string

	// InvalidOutcomeError is returned when an Outcome value is not recognized.
	// It wraps ErrInvalidOutcome for errors.Is() compatibility.
	InvalidOutcomeError struct {
		Value Outcome
	}

	// StepResult records one operation of a reset or provisioning run.
	StepResult struct {
		// Op names the operation (e.g., "stop", "create-table").
		Op string
		// Resource is the concrete resource name the operation targeted.
		Resource string
		// Outcome classifies how the operation ended.
		Outcome Outcome
		// Err is the underlying command error for tolerated failures, nil on
		// success. It is informational; tolerated outcomes never abort a run.
		Err error
	}
)

// String returns the string representation of the Outcome.
func (o Outcome) String() string { return string(o) }

// Validate returns an error if the Outcome is not one of the defined values.
func (o Outcome) Validate() error {
	switch o {
	case OutcomeSucceeded, OutcomeAlreadyAbsent, OutcomeAlreadyExists, OutcomeSkipped, OutcomeFailed:
		return nil
	default:
		return &InvalidOutcomeError{Value: o}
	}
}

// Error implements the error interface.
func (e *InvalidOutcomeError) Error() string {
	return fmt.Sprintf("invalid outcome %q (valid: succeeded, already-absent, already-exists, skipped, failed)", e.Value)
}

// Unwrap returns ErrInvalidOutcome so callers can use errors.Is for programmatic detection.
func (e *InvalidOutcomeError) Unwrap() error { return ErrInvalidOutcome }
