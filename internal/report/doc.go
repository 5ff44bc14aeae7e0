// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package report renders a build matrix snapshot for humans and
// machines. The text format is a styled table; json, yaml, and cbor
// carry the same fields for scripts and downstream tooling.
package report
