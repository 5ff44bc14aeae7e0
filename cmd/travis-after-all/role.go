// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/afterall/cmd/travis-after-all/cli"
	"github.com/bureau-foundation/afterall/lib/matrix"
)

func roleCommand(env *environment) *cli.Command {
	var params options

	return &cli.Command{
		Name:    "role",
		Summary: "Print whether this job is the leader",
		Description: `Print "leader" and exit 0 if TRAVIS_JOB_NUMBER has ordinal 1, otherwise
print "follower" and exit 3. Makes no network requests.`,
		Examples: []cli.Example{
			{
				Description: "Run a step on the leader only, without waiting",
				Command:     "if travis-after-all role >/dev/null; then ./notify.sh; fi",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("role", pflag.ContinueOnError)
			params.register(flagSet)
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
			if err := cfg.RequireJobNumber(); err != nil {
				return err
			}

			if matrix.IsLeader(cfg.JobNumber) {
				fmt.Fprintln(env.stdout, "leader")
				return nil
			}
			fmt.Fprintln(env.stdout, "follower")
			return &cli.ExitError{Code: exitNotLeader}
		},
	}
}
