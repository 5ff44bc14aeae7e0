// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package matrix models one snapshot of a CI build matrix: the list of
// parallel jobs launched under a single build and the status of each.
//
// A Matrix is immutable. It is produced wholesale by [Decode] (or
// [New]) from one API response, and every poll produces a new value.
// All predicates are pure and perform no I/O.
//
// Leadership is a naming convention, not an election: the job whose
// number ends in ordinal "1" (for example "4182.1") is the leader, and
// every other job is a peer. A job is finished once the remote service
// reports a finished_at timestamp; its result is read only after that.
//
// This package depends on no other packages in this module.
package matrix
