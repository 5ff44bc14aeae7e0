// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"testing"
	"time"
)

// Receive returns the next value from ch. The test fails if ch is
// closed or nothing arrives within timeout, which turns a hung
// goroutine into a failure that names what was awaited.
//
//	err := testutil.Receive(t, done, 10*time.Second, "WaitForOthers")
func Receive[T any](t testing.TB, ch <-chan T, timeout time.Duration, what string) T {
	t.Helper()
	select {
	case value, ok := <-ch:
		if !ok {
			t.Fatalf("%s: channel closed without a value", what)
		}
		return value
	case <-time.After(timeout): //nolint:realclock test hang prevention
		t.Fatalf("%s: nothing received after %v", what, timeout)
	}
	panic("unreachable")
}
