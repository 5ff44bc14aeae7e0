// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/afterall/cmd/travis-after-all/cli"
	"github.com/bureau-foundation/afterall/internal/report"
)

type statusParams struct {
	options
	format string
}

func statusCommand(env *environment) *cli.Command {
	var params statusParams

	return &cli.Command{
		Name:    "status",
		Summary: "Print the current state of every job in the build",
		Description: `Fetch the build named by TRAVIS_BUILD_ID once and print the state of
each job. Works from any job and never waits.`,
		Examples: []cli.Example{
			{
				Description: "Show the matrix as JSON",
				Command:     "travis-after-all status --format json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("status", pflag.ContinueOnError)
			params.options.register(flagSet)
			flagSet.StringVar(&params.format, "format", string(report.FormatText), "report format: text, json, yaml, cbor")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			cfg, err := params.load(env)
			if err != nil {
				return err
			}
			if err := cfg.RequireBuildID(); err != nil {
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
			client, err := newClient(env, cfg, logger.With("command", "status"))
			if err != nil {
				return err
			}

			ctx, stop := env.interruptible()
			defer stop()

			snapshot, err := client.GetBuild(ctx, cfg.BuildID)
			if err != nil {
				return err
			}
			return report.FromMatrix(snapshot).Write(env.stdout, format)
		},
	}
}
