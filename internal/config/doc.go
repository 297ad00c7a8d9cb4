// SPDX-License-Identifier: MPL-2.0

// Package config resolves the devstack configuration bundle using Viper with
// a layered fallback: hard-coded defaults, an optional dotenv-format file
// (project root first, then its parent), then the process environment.
//
// The only validated setting is the container runtime selector, which is
// normalized and coerced to docker with a warning when unrecognized. All
// other keys are plain string bindings with defaults; a missing file or
// unset key is never an error.
package config
