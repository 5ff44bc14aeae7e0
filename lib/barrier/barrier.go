// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package barrier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/afterall/lib/clock"
	"github.com/bureau-foundation/afterall/lib/matrix"
)

// DefaultPollInterval is the time between polls when Config.PollInterval
// is zero.
const DefaultPollInterval = 5 * time.Second

// Fetcher retrieves the current matrix snapshot of a build. Each call
// must perform a fresh read. Implementations report an unknown build
// with an error matching matrix.ErrBuildNotFound under errors.Is.
type Fetcher interface {
	FetchMatrix(ctx context.Context, buildID string) (*matrix.Matrix, error)
}

// Recorder receives poll and wait outcomes, typically for metrics.
type Recorder interface {
	// ObservePoll is called once per fetch with "running", "finished",
	// or "error".
	ObservePoll(outcome string)

	// ObserveWait is called once per WaitForOthers call that got past
	// the leader check, with the Kind of its result and its duration.
	ObserveWait(outcome string, duration time.Duration)
}

// Poll outcomes passed to Recorder.ObservePoll.
const (
	PollRunning  = "running"
	PollFinished = "finished"
	PollError    = "error"
)

// Config holds configuration for creating a Coordinator.
type Config struct {
	// BuildID identifies the build whose matrix is polled. Required.
	BuildID string

	// JobNumber is this job's number, "<build>.<index>". Required.
	JobNumber string

	// PollInterval is the time between polls. Defaults to
	// DefaultPollInterval.
	PollInterval time.Duration

	// MaxWait bounds the total time WaitForOthers may spend waiting.
	// Zero waits until the peers finish.
	MaxWait time.Duration

	// Fetcher reads matrix snapshots. Required.
	Fetcher Fetcher

	// Clock provides time operations. Defaults to clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger

	// Recorder receives poll and wait outcomes. Optional.
	Recorder Recorder
}

// Coordinator runs the barrier protocol for one job of one build. It
// has no mutable state and is safe for concurrent use.
type Coordinator struct {
	buildID      string
	jobNumber    string
	pollInterval time.Duration
	maxWait      time.Duration
	fetcher      Fetcher
	clock        clock.Clock
	logger       *slog.Logger
	recorder     Recorder
}

// New creates a Coordinator. It performs no I/O.
func New(config Config) (*Coordinator, error) {
	if config.BuildID == "" {
		return nil, fmt.Errorf("barrier: BuildID is required")
	}
	if config.JobNumber == "" {
		return nil, fmt.Errorf("barrier: JobNumber is required")
	}
	if config.Fetcher == nil {
		return nil, fmt.Errorf("barrier: Fetcher is required")
	}
	if config.PollInterval < 0 {
		return nil, fmt.Errorf("barrier: PollInterval must be positive (got %s)", config.PollInterval)
	}
	if config.MaxWait < 0 {
		return nil, fmt.Errorf("barrier: MaxWait must not be negative (got %s)", config.MaxWait)
	}

	pollInterval := config.PollInterval
	if pollInterval == 0 {
		pollInterval = DefaultPollInterval
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	recorder := config.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &Coordinator{
		buildID:      config.BuildID,
		jobNumber:    config.JobNumber,
		pollInterval: pollInterval,
		maxWait:      config.MaxWait,
		fetcher:      config.Fetcher,
		clock:        clk,
		logger:       logger.With("build_id", config.BuildID, "job_number", config.JobNumber),
		recorder:     recorder,
	}, nil
}

// IsLeader reports whether this job is the build leader.
func (c *Coordinator) IsLeader() bool {
	return matrix.IsLeader(c.jobNumber)
}

// FetchMatrix performs one fetch of the build's current snapshot. An
// unknown build returns an error matching ErrBuildNotFound; every other
// failure wraps its cause.
func (c *Coordinator) FetchMatrix(ctx context.Context) (*matrix.Matrix, error) {
	snapshot, err := c.fetcher.FetchMatrix(ctx, c.buildID)
	if err != nil {
		if errors.Is(err, matrix.ErrBuildNotFound) {
			return nil, fmt.Errorf("barrier: build %s: %w", c.buildID, ErrBuildNotFound)
		}
		return nil, fmt.Errorf("barrier: fetching build %s: %w", c.buildID, err)
	}
	if snapshot == nil {
		return nil, fmt.Errorf("barrier: fetching build %s: fetcher returned no matrix", c.buildID)
	}
	return snapshot, nil
}

// WaitForOthers blocks until every peer job has finished and returns
// nil if all of them succeeded. See the package documentation for the
// protocol.
func (c *Coordinator) WaitForOthers(ctx context.Context) (err error) {
	if !c.IsLeader() {
		return ErrNotLeader
	}

	started := c.clock.Now()
	var deadline time.Time
	if c.maxWait > 0 {
		deadline = started.Add(c.maxWait)
	}
	defer func() {
		c.recorder.ObserveWait(KindOf(err).String(), c.clock.Now().Sub(started))
	}()

	c.logger.Info("waiting for peer jobs to finish", "poll_interval", c.pollInterval)

	for poll := 1; ; poll++ {
		if err := c.checkAbort(ctx, deadline); err != nil {
			return err
		}
		snapshot, err := c.poll(ctx)
		if err != nil {
			return err
		}
		if snapshot.OthersFinished() {
			c.logger.Info("all peer jobs finished", "polls", poll)
			break
		}

		summary := snapshot.Summary()
		c.logger.Info("peer jobs still running",
			"poll", poll,
			"running", summary.Running,
			"finished", summary.Finished,
			"peers", summary.Peers,
		)
		if err := c.sleep(ctx, deadline); err != nil {
			return err
		}
	}

	// Re-read so the verdict uses results from a snapshot taken after
	// every peer was seen finished.
	if err := c.checkAbort(ctx, deadline); err != nil {
		return err
	}
	final, err := c.poll(ctx)
	if err != nil {
		return err
	}
	if !final.OthersSucceeded() {
		for _, job := range final.Peers() {
			if !job.IsSucceeded() {
				c.logger.Warn("peer job did not succeed",
					"peer", job.Number,
					"finished", job.IsFinished(),
					"result", job.Result,
				)
			}
		}
		return ErrFailedBuilds
	}
	c.logger.Info("all peer jobs succeeded")
	return nil
}

// poll fetches one snapshot and reports the outcome to the recorder.
func (c *Coordinator) poll(ctx context.Context) (*matrix.Matrix, error) {
	snapshot, err := c.FetchMatrix(ctx)
	switch {
	case err != nil:
		c.recorder.ObservePoll(PollError)
		c.logger.Debug("poll failed", "error", err)
		// A request cut short by the wait's own context reports the
		// abort, not a transport failure.
		if ctx.Err() != nil {
			err = aborted(ctx)
		}
	case snapshot.OthersFinished():
		c.recorder.ObservePoll(PollFinished)
	default:
		c.recorder.ObservePoll(PollRunning)
	}
	return snapshot, err
}

// checkAbort returns an error if the context is done or the deadline
// has passed. A zero deadline never expires.
func (c *Coordinator) checkAbort(ctx context.Context, deadline time.Time) error {
	if ctx.Err() != nil {
		return aborted(ctx)
	}
	if !deadline.IsZero() && !c.clock.Now().Before(deadline) {
		return fmt.Errorf("%w (%s)", ErrWaitTimeout, c.maxWait)
	}
	return nil
}

// sleep waits one poll interval, cut short by the deadline or the
// context.
func (c *Coordinator) sleep(ctx context.Context, deadline time.Time) error {
	duration := c.pollInterval
	if !deadline.IsZero() {
		remaining := deadline.Sub(c.clock.Now())
		if remaining <= 0 {
			return fmt.Errorf("%w (%s)", ErrWaitTimeout, c.maxWait)
		}
		duration = min(duration, remaining)
	}

	select {
	case <-ctx.Done():
		return aborted(ctx)
	case <-c.clock.After(duration):
		return nil
	}
}

// aborted describes why ctx ended the wait. An expired deadline on the
// wait's context is a wait timeout; cancellation is not.
func aborted(ctx context.Context) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrWaitTimeout, err)
	}
	return fmt.Errorf("barrier: wait aborted: %w", err)
}

type nopRecorder struct{}

func (nopRecorder) ObservePoll(string) {}

func (nopRecorder) ObserveWait(string, time.Duration) {}
