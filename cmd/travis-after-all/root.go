// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/bureau-foundation/afterall/cmd/travis-after-all/cli"
	"github.com/bureau-foundation/afterall/lib/version"
)

// rootCommand builds the command tree. With no command name, the root
// runs "wait".
func rootCommand(env *environment) *cli.Command {
	wait := waitCommand(env)
	return &cli.Command{
		Name:    "travis-after-all",
		Summary: "Wait for the other jobs of a Travis CI build matrix",
		Description: `Wait for the other jobs of a Travis CI build matrix.

The job whose number ends in ".1" is the leader. It polls the build
until every other job has finished and exits 0 only if all of them
passed. Every other job exits 3 at once.

Without a command, runs "wait".`,
		Output:   env.stderr,
		Flags:    wait.Flags,
		Run:      wait.Run,
		Examples: wait.Examples,
		Subcommands: []*cli.Command{
			wait,
			statusCommand(env),
			roleCommand(env),
			versionCommand(env),
		},
	}
}

func versionCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			_, err := fmt.Fprintln(env.stdout, version.Full())
			return err
		},
	}
}
