// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/afterall/cmd/travis-after-all/cli"
	"github.com/bureau-foundation/afterall/internal/report"
	"github.com/bureau-foundation/afterall/lib/barrier"
	"github.com/bureau-foundation/afterall/lib/metrics"
)

type waitParams struct {
	options
	format      string
	metricsFile string
	noReport    bool
}

func waitCommand(env *environment) *cli.Command {
	var params waitParams

	return &cli.Command{
		Name:    "wait",
		Summary: "Wait for the peer jobs and exit with their combined result",
		Description: `On the leader job, poll the build until every other job has finished,
print a report of the final job states, and exit:

  0  every peer job passed
  1  the build could not be read
  2  at least one peer job failed
  3  this job is not the leader (no polling happens)
  4  --max-wait elapsed first

The build and job come from TRAVIS_BUILD_ID and TRAVIS_JOB_NUMBER.`,
		Examples: []cli.Example{
			{
				Description: "Deploy from the leader once every job has passed",
				Command:     "travis-after-all && ./deploy.sh",
			},
			{
				Description: "Poll every 30 seconds for at most an hour",
				Command:     "travis-after-all --poll-interval 30s --max-wait 1h",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("wait", pflag.ContinueOnError)
			params.options.register(flagSet)
			flagSet.StringVar(&params.format, "format", string(report.FormatText), "report format: text, json, yaml, cbor")
			flagSet.StringVar(&params.metricsFile, "metrics-file", "", "write Prometheus metrics to this file when done")
			flagSet.BoolVar(&params.noReport, "no-report", false, "do not print the job report")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			return runWait(env, &params)
		},
	}
}

func runWait(env *environment, params *waitParams) error {
	cfg, err := params.load(env)
	if err != nil {
		return err
	}
	if err := cfg.RequireBuildID(); err != nil {
		return err
	}
	if err := cfg.RequireJobNumber(); err != nil {
		return err
	}
	format, err := report.ParseFormat(params.format)
	if err != nil {
		return err
	}

	logger, err := newLogger(env, cfg)
	if err != nil {
		return err
	}
	logger = logger.With("command", "wait")

	client, err := newClient(env, cfg, logger)
	if err != nil {
		return err
	}

	var recorder *metrics.PrometheusRecorder
	barrierConfig := barrier.Config{
		BuildID:      cfg.BuildID,
		JobNumber:    cfg.JobNumber,
		PollInterval: cfg.PollInterval.Std(),
		MaxWait:      cfg.MaxWait.Std(),
		Fetcher:      client,
		Clock:        env.clock,
		Logger:       logger,
	}
	if params.metricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(prometheus.Labels{
			"build_id":   cfg.BuildID,
			"job_number": cfg.JobNumber,
		})
		barrierConfig.Recorder = recorder
	}

	coordinator, err := barrier.New(barrierConfig)
	if err != nil {
		return err
	}
	if !coordinator.IsLeader() {
		fmt.Fprintf(env.stderr, "job %s is not the leader\n", cfg.JobNumber)
		return &cli.ExitError{Code: exitNotLeader}
	}

	ctx, stop := env.interruptible()
	defer stop()

	waitErr := coordinator.WaitForOthers(ctx)
	kind := barrier.KindOf(waitErr)

	if recorder != nil {
		if err := recorder.WriteTextfile(params.metricsFile); err != nil {
			logger.Warn("writing metrics file failed", "path", params.metricsFile, "error", err)
		}
	}

	switch kind {
	case barrier.KindNone, barrier.KindFailedBuilds, barrier.KindTimeout:
		if !params.noReport {
			printReport(ctx, env, coordinator, format, logger)
		}
	}

	switch kind {
	case barrier.KindNone:
		return nil
	case barrier.KindFailedBuilds:
		fmt.Fprintln(env.stderr, "error: some peer jobs failed")
		return &cli.ExitError{Code: exitFailedBuilds}
	case barrier.KindTimeout:
		fmt.Fprintf(env.stderr, "error: %v\n", waitErr)
		return &cli.ExitError{Code: exitTimeout}
	default:
		return waitErr
	}
}

// printReport fetches the build once more and writes the job report.
// The wait's outcome is already decided, so a failed fetch is logged
// and otherwise ignored.
func printReport(ctx context.Context, env *environment, coordinator *barrier.Coordinator, format report.Format, logger *slog.Logger) {
	if ctx.Err() != nil {
		return
	}
	snapshot, err := coordinator.FetchMatrix(ctx)
	if err != nil {
		logger.Warn("fetching build for report failed", "error", err)
		return
	}
	if err := report.FromMatrix(snapshot).Write(env.stdout, format); err != nil {
		logger.Warn("writing report failed", "error", err)
	}
}
