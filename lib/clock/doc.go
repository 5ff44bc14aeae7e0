// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source so that polling
// loops can be tested without real sleeps.
//
// Production code holds a Clock and calls Now and After on it instead
// of the time package. Real returns the standard library behavior;
// Fake returns a clock that only moves when Advance is called.
//
// Tests that drive a goroutine blocked in After should call
// WaitForTimers before Advance, so the advance cannot race the timer
// registration:
//
//	fakeClock := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go coordinator.WaitForOthers(ctx)
//	fakeClock.WaitForTimers(1)
//	fakeClock.Advance(5 * time.Second)
package clock
