// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package matrix

import "strings"

// LeaderOrdinal is the job ordinal that identifies the build leader.
// The remote service always assigns ordinal 1 to the first job declared
// in the matrix.
const LeaderOrdinal = "1"

// Job is the status of one job in a build matrix.
type Job struct {
	// Number is the job number, "<build>.<index>".
	Number string `json:"number"`

	// FinishedAt is set once the job has finished. Only its presence
	// is significant.
	FinishedAt *string `json:"finished_at"`

	// Result is the job's exit code. It may carry a stale value while
	// the job is running and must only be read once FinishedAt is set.
	Result *int `json:"result"`

	// ID is the remote job identifier. Informational only.
	ID *int64 `json:"id,omitempty"`
}

// Ordinal returns the component of a job number after the last ".".
// A number without a separator is returned unchanged.
func Ordinal(number string) string {
	if index := strings.LastIndexByte(number, '.'); index >= 0 {
		return number[index+1:]
	}
	return number
}

// IsLeader reports whether a job number belongs to the build leader.
func IsLeader(number string) bool {
	return Ordinal(number) == LeaderOrdinal
}

// IsLeader reports whether this job is the build leader.
func (job Job) IsLeader() bool {
	return IsLeader(job.Number)
}

// IsFinished reports whether the remote service has marked the job
// finished, regardless of its result.
func (job Job) IsFinished() bool {
	return job.FinishedAt != nil
}

// IsSucceeded reports whether the job finished with exit code 0. A
// finished job without a result is not succeeded.
func (job Job) IsSucceeded() bool {
	if !job.IsFinished() || job.Result == nil {
		return false
	}
	return *job.Result == 0
}

// clone returns a deep copy so snapshots never share pointers with
// their callers.
func (job Job) clone() Job {
	copied := Job{Number: job.Number}
	if job.FinishedAt != nil {
		finishedAt := *job.FinishedAt
		copied.FinishedAt = &finishedAt
	}
	if job.Result != nil {
		result := *job.Result
		copied.Result = &result
	}
	if job.ID != nil {
		id := *job.ID
		copied.ID = &id
	}
	return copied
}
