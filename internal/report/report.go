// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/afterall/lib/codec"
	"github.com/bureau-foundation/afterall/lib/matrix"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// Formats lists every supported Format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatCBOR}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(name))
	if !slices.Contains(Formats, format) {
		return "", fmt.Errorf("unknown report format %q (want one of: text, json, yaml, cbor)", name)
	}
	return format, nil
}

// Job states.
const (
	StateRunning = "running"
	StatePassed  = "passed"
	StateFailed  = "failed"
)

// Row describes one job.
type Row struct {
	Number string `json:"number" yaml:"number"`
	ID     *int64 `json:"id,omitempty" yaml:"id,omitempty"`
	Leader bool   `json:"leader" yaml:"leader"`
	State  string `json:"state" yaml:"state"`
	Result *int   `json:"result,omitempty" yaml:"result,omitempty"`
}

// Summary counts peer jobs.
type Summary struct {
	Peers     int `json:"peers" yaml:"peers"`
	Running   int `json:"running" yaml:"running"`
	Finished  int `json:"finished" yaml:"finished"`
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Report is the rendered view of one snapshot.
type Report struct {
	BuildID         int64   `json:"build_id" yaml:"build_id"`
	Leader          string  `json:"leader,omitempty" yaml:"leader,omitempty"`
	OthersFinished  bool    `json:"others_finished" yaml:"others_finished"`
	OthersSucceeded bool    `json:"others_succeeded" yaml:"others_succeeded"`
	Summary         Summary `json:"summary" yaml:"summary"`
	Jobs            []Row   `json:"jobs" yaml:"jobs"`
}

// FromMatrix builds a Report from a snapshot.
func FromMatrix(snapshot *matrix.Matrix) Report {
	summary := snapshot.Summary()
	report := Report{
		BuildID:         snapshot.BuildID(),
		OthersFinished:  snapshot.OthersFinished(),
		OthersSucceeded: snapshot.OthersSucceeded(),
		Summary: Summary{
			Peers:     summary.Peers,
			Running:   summary.Running,
			Finished:  summary.Finished,
			Succeeded: summary.Succeeded,
			Failed:    summary.Failed,
		},
	}

	if leader, ok := snapshot.Leader(); ok {
		report.Leader = leader.Number
	}

	jobs := snapshot.Jobs()
	report.Jobs = make([]Row, 0, len(jobs))
	for _, job := range jobs {
		row := Row{
			Number: job.Number,
			ID:     job.ID,
			Leader: job.IsLeader(),
			State:  stateOf(job),
		}
		if job.IsFinished() {
			row.Result = job.Result
		}
		report.Jobs = append(report.Jobs, row)
	}
	return report
}

func stateOf(job matrix.Job) string {
	switch {
	case !job.IsFinished():
		return StateRunning
	case job.IsSucceeded():
		return StatePassed
	default:
		return StateFailed
	}
}

// Write encodes r to w in the given format.
func (r Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatText:
		return writeText(w, r)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(r); err != nil {
			return err
		}
		return encoder.Close()
	case FormatCBOR:
		data, err := codec.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
