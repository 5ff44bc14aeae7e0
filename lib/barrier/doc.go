// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package barrier implements the build-matrix barrier: the leader job
// of a CI build blocks until every peer job has finished, then reports
// whether all of them succeeded.
//
// There is no push notification from the CI service, so the barrier is
// a polling loop over a read-only status API reached through an
// injected [Fetcher]. Each poll decodes a fresh [matrix.Matrix]; no
// snapshot survives past the iteration that fetched it.
//
// The wait protocol ([Coordinator.WaitForOthers]):
//
//  1. A non-leader returns [ErrNotLeader] without fetching anything.
//  2. Fetch a snapshot. A fetch error ends the wait immediately.
//  3. While some peer is still running, sleep for the poll interval on
//     the injected clock and go back to 2.
//  4. Once every peer has finished, fetch once more and return nil if
//     every peer succeeded, [ErrFailedBuilds] otherwise.
//
// The loop is bounded by the context (checked before every fetch and
// during every sleep) and, optionally, by [Config].MaxWait. Both MaxWait
// and an expired context deadline yield [ErrWaitTimeout]; a timeout
// inside the fetcher is an ordinary fetch error. [KindOf] classifies any returned error so the
// caller can choose an exit status.
package barrier
