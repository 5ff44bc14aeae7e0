// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for travis-after-all: a small
// tree of [Command] values with pflag-based flag parsing, generated
// help, typo suggestions for commands and flags, [ExitError] for
// outcomes that map to a specific exit status, and the structured
// logger used by every command.
package cli
