// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the
// travis-after-all binary.
//
// Three package-level variables are injected at build time via
// -ldflags -X: [GitCommit], [BuildTime], and [Version]. They default
// to "unknown" / "0.1.0-dev" in development builds and test runs.
//
// [UserAgent] is the identifier sent with every request to the build
// status API, so the remote service can attribute polling traffic.
package version
