// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds helpers shared by tests that drive a
// goroutine with a fake clock and collect its result from a channel.
package testutil
