// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"strings"
	"testing"
)

func finished(result int) (*string, *int) {
	finishedAt := "2026-03-01T12:00:00Z"
	return &finishedAt, &result
}

func finishedJob(number string, result int) Job {
	finishedAt, resultPointer := finished(result)
	return Job{Number: number, FinishedAt: finishedAt, Result: resultPointer}
}

func runningJob(number string) Job {
	return Job{Number: number}
}

func mustNew(t *testing.T, jobs ...Job) *Matrix {
	t.Helper()
	m, err := New(1, jobs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestIsLeader(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"1.1", true},
		{"4182.1", true},
		{"1", true},
		{"1.2", false},
		{"1.11", false},
		{"1.21", false},
		{"11", false},
		{"2", false},
		{"1.", false},
		{"", false},
		{"1.1.2", false},
		{"3.2.1", true},
	}
	for _, test := range tests {
		if got := IsLeader(test.number); got != test.want {
			t.Errorf("IsLeader(%q) = %v, want %v", test.number, got, test.want)
		}
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[string]string{
		"4182.3": "3",
		"7":      "7",
		"1.":     "",
		"a.b.c":  "c",
	}
	for number, want := range tests {
		if got := Ordinal(number); got != want {
			t.Errorf("Ordinal(%q) = %q, want %q", number, got, want)
		}
	}
}

func TestJobPredicates(t *testing.T) {
	stale := 0
	failed := 1
	finishedAt := "t"

	tests := []struct {
		name          string
		job           Job
		wantFinished  bool
		wantSucceeded bool
	}{
		{"running", Job{Number: "1.2"}, false, false},
		{"running with stale zero result", Job{Number: "1.2", Result: &stale}, false, false},
		{"finished success", Job{Number: "1.2", FinishedAt: &finishedAt, Result: &stale}, true, true},
		{"finished failure", Job{Number: "1.2", FinishedAt: &finishedAt, Result: &failed}, true, false},
		{"finished without result", Job{Number: "1.2", FinishedAt: &finishedAt}, true, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.job.IsFinished(); got != test.wantFinished {
				t.Errorf("IsFinished() = %v, want %v", got, test.wantFinished)
			}
			if got := test.job.IsSucceeded(); got != test.wantSucceeded {
				t.Errorf("IsSucceeded() = %v, want %v", got, test.wantSucceeded)
			}
			if test.job.IsSucceeded() && !test.job.IsFinished() {
				t.Error("IsSucceeded() without IsFinished()")
			}
		})
	}
}

func TestLeaderOnlyMatrixIsVacuouslyDone(t *testing.T) {
	// The leader's own state never matters, even while it is running.
	for _, leader := range []Job{finishedJob("1.1", 0), runningJob("1.1"), finishedJob("1.1", 3)} {
		m := mustNew(t, leader)
		if !m.OthersFinished() {
			t.Errorf("OthersFinished() = false for leader-only matrix %+v", leader)
		}
		if !m.OthersSucceeded() {
			t.Errorf("OthersSucceeded() = false for leader-only matrix %+v", leader)
		}
	}
}

func TestOthersPredicates(t *testing.T) {
	tests := []struct {
		name          string
		jobs          []Job
		wantFinished  bool
		wantSucceeded bool
	}{
		{
			name:          "peer running",
			jobs:          []Job{finishedJob("1.1", 0), runningJob("1.2")},
			wantFinished:  false,
			wantSucceeded: false,
		},
		{
			name:          "peer failed",
			jobs:          []Job{finishedJob("1.1", 0), finishedJob("1.2", 1)},
			wantFinished:  true,
			wantSucceeded: false,
		},
		{
			name:          "all peers succeeded while leader runs",
			jobs:          []Job{runningJob("1.1"), finishedJob("1.2", 0), finishedJob("1.3", 0)},
			wantFinished:  true,
			wantSucceeded: true,
		},
		{
			name:          "one of many peers running",
			jobs:          []Job{runningJob("1.1"), finishedJob("1.2", 0), runningJob("1.3"), finishedJob("1.4", 0)},
			wantFinished:  false,
			wantSucceeded: false,
		},
		{
			name:          "ordinal 11 is a peer",
			jobs:          []Job{finishedJob("1.1", 0), runningJob("1.11")},
			wantFinished:  false,
			wantSucceeded: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := mustNew(t, test.jobs...)
			if got := m.OthersFinished(); got != test.wantFinished {
				t.Errorf("OthersFinished() = %v, want %v", got, test.wantFinished)
			}
			if got := m.OthersSucceeded(); got != test.wantSucceeded {
				t.Errorf("OthersSucceeded() = %v, want %v", got, test.wantSucceeded)
			}
			if m.OthersSucceeded() && !m.OthersFinished() {
				t.Error("OthersSucceeded() without OthersFinished()")
			}
		})
	}
}

func TestDecodeScenarios(t *testing.T) {
	tests := []struct {
		name          string
		payload       string
		wantFinished  bool
		wantSucceeded bool
	}{
		{
			name:          "leader only",
			payload:       `{"id":1,"matrix":[{"number":"1.1","finished_at":"t","result":0}]}`,
			wantFinished:  true,
			wantSucceeded: true,
		},
		{
			name:          "peer running",
			payload:       `{"id":1,"matrix":[{"number":"1.1","finished_at":"t","result":0},{"number":"1.2","finished_at":null,"result":null}]}`,
			wantFinished:  false,
			wantSucceeded: false,
		},
		{
			name:          "peer failed",
			payload:       `{"id":1,"matrix":[{"number":"1.1","finished_at":"t","result":0},{"number":"1.2","finished_at":"t","result":1}]}`,
			wantFinished:  true,
			wantSucceeded: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// Repeated decodes of the same payload must agree.
			for attempt := 0; attempt < 3; attempt++ {
				m, err := Decode([]byte(test.payload))
				if err != nil {
					t.Fatalf("Decode: %v", err)
				}
				if got := m.OthersFinished(); got != test.wantFinished {
					t.Errorf("OthersFinished() = %v, want %v", got, test.wantFinished)
				}
				if got := m.OthersSucceeded(); got != test.wantSucceeded {
					t.Errorf("OthersSucceeded() = %v, want %v", got, test.wantSucceeded)
				}
			}
		})
	}
}

func TestDecodeFields(t *testing.T) {
	m, err := Decode([]byte(`{"id":4182,"matrix":[{"id":77,"number":"4182.1","finished_at":null,"result":null},{"id":78,"number":"4182.2","finished_at":"2026-03-01T12:00:00Z","result":2}],"state":"started"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.BuildID() != 4182 {
		t.Errorf("BuildID() = %d, want 4182", m.BuildID())
	}
	jobs := m.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("len(Jobs()) = %d, want 2", len(jobs))
	}
	if jobs[0].ID == nil || *jobs[0].ID != 77 {
		t.Errorf("jobs[0].ID = %v, want 77", jobs[0].ID)
	}
	if jobs[0].IsFinished() {
		t.Error("jobs[0] should be running")
	}
	if jobs[1].Result == nil || *jobs[1].Result != 2 {
		t.Errorf("jobs[1].Result = %v, want 2", jobs[1].Result)
	}

	leader, ok := m.Leader()
	if !ok || leader.Number != "4182.1" {
		t.Errorf("Leader() = %+v, %v; want 4182.1", leader, ok)
	}
	peers := m.Peers()
	if len(peers) != 1 || peers[0].Number != "4182.2" {
		t.Errorf("Peers() = %+v, want [4182.2]", peers)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"malformed", `{"id":1,"matrix":[`, "decoding build payload"},
		{"wrong type", `{"id":"x","matrix":[]}`, "decoding build payload"},
		{"empty matrix", `{"id":1,"matrix":[]}`, "has no jobs"},
		{"missing matrix", `{"id":1}`, "has no jobs"},
		{"job without number", `{"id":1,"matrix":[{"finished_at":"t","result":0}]}`, "has no number"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode([]byte(test.payload))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not contain %q", err, test.want)
			}
		})
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	source := []Job{finishedJob("1.1", 0), runningJob("1.2")}
	m := mustNew(t, source...)

	// Mutating the constructor input must not leak into the snapshot.
	finishedAt := "t"
	source[1].FinishedAt = &finishedAt
	*source[0].Result = 9
	if m.OthersFinished() {
		t.Error("snapshot changed after mutating constructor input")
	}

	// Mutating an accessor result must not leak either.
	jobs := m.Jobs()
	*jobs[0].Result = 5
	jobs[1].FinishedAt = &finishedAt
	again := m.Jobs()
	if *again[0].Result != 0 || again[1].IsFinished() {
		t.Errorf("snapshot changed after mutating Jobs() result: %+v", again)
	}
}

func TestSummary(t *testing.T) {
	m := mustNew(t,
		runningJob("9.1"),
		finishedJob("9.2", 0),
		finishedJob("9.3", 1),
		runningJob("9.4"),
		Job{Number: "9.5", FinishedAt: new(string)},
	)
	want := Summary{Peers: 4, Running: 1, Finished: 3, Succeeded: 1, Failed: 2}
	if got := m.Summary(); got != want {
		t.Errorf("Summary() = %+v, want %+v", got, want)
	}
}
