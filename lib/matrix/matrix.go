// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBuildNotFound is returned, possibly wrapped, by matrix sources when
// the remote service has no record of the requested build.
var ErrBuildNotFound = errors.New("build does not exist")

// Matrix is an immutable snapshot of one build's jobs.
type Matrix struct {
	buildID int64
	jobs    []Job
}

// Summary counts the peer (non-leader) jobs of a snapshot by state.
type Summary struct {
	Peers     int `json:"peers"`
	Running   int `json:"running"`
	Finished  int `json:"finished"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// wireBuild is the response body of GET /builds/<id>.
type wireBuild struct {
	ID     int64 `json:"id"`
	Matrix []Job `json:"matrix"`
}

// New builds a Matrix from a job list. The jobs are copied. Returns an
// error if the list is empty or a job has no number.
func New(buildID int64, jobs []Job) (*Matrix, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("matrix: build %d has no jobs", buildID)
	}
	copied := make([]Job, len(jobs))
	for index, job := range jobs {
		if job.Number == "" {
			return nil, fmt.Errorf("matrix: build %d: job at position %d has no number", buildID, index)
		}
		copied[index] = job.clone()
	}
	return &Matrix{buildID: buildID, jobs: copied}, nil
}

// Decode parses a build status payload into a Matrix.
func Decode(data []byte) (*Matrix, error) {
	var build wireBuild
	if err := json.Unmarshal(data, &build); err != nil {
		return nil, fmt.Errorf("matrix: decoding build payload: %w", err)
	}
	return New(build.ID, build.Matrix)
}

// BuildID returns the remote build identifier.
func (m *Matrix) BuildID() int64 {
	return m.buildID
}

// Jobs returns a copy of all jobs in matrix order.
func (m *Matrix) Jobs() []Job {
	jobs := make([]Job, len(m.jobs))
	for index, job := range m.jobs {
		jobs[index] = job.clone()
	}
	return jobs
}

// Leader returns the leader job, if the snapshot contains one.
func (m *Matrix) Leader() (Job, bool) {
	for _, job := range m.jobs {
		if job.IsLeader() {
			return job.clone(), true
		}
	}
	return Job{}, false
}

// Peers returns a copy of the non-leader jobs in matrix order.
func (m *Matrix) Peers() []Job {
	var peers []Job
	for _, job := range m.jobs {
		if !job.IsLeader() {
			peers = append(peers, job.clone())
		}
	}
	return peers
}

// OthersFinished reports whether every non-leader job has finished.
// True when there are no peers.
func (m *Matrix) OthersFinished() bool {
	for _, job := range m.jobs {
		if !job.IsLeader() && !job.IsFinished() {
			return false
		}
	}
	return true
}

// OthersSucceeded reports whether every non-leader job finished with
// exit code 0. True when there are no peers.
func (m *Matrix) OthersSucceeded() bool {
	for _, job := range m.jobs {
		if !job.IsLeader() && !job.IsSucceeded() {
			return false
		}
	}
	return true
}

// Summary counts peers by state. Failed counts finished peers that did
// not succeed.
func (m *Matrix) Summary() Summary {
	var summary Summary
	for _, job := range m.jobs {
		if job.IsLeader() {
			continue
		}
		summary.Peers++
		switch {
		case !job.IsFinished():
			summary.Running++
		case job.IsSucceeded():
			summary.Finished++
			summary.Succeeded++
		default:
			summary.Finished++
			summary.Failed++
		}
	}
	return summary
}
