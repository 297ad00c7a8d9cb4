// SPDX-License-Identifier: MPL-2.0

// Package provision ensures a fixed catalogue of cloud resources exists in
// the local AWS emulator: S3 buckets, DynamoDB tables, SES sender identities,
// and an SQS FIFO queue pair with its dead-letter counterpart.
//
// Every creation call runs the emulator's awslocal CLI inside the running
// localstack container via the container engine's exec mechanism. Creation is
// idempotent by convention: any failure is reported as "already exists" and
// never aborts the run. Verification lists buckets, tables, and queues and
// prints the raw output for operator inspection; nothing is parsed.
package provision
