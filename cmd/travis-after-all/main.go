// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// travis-after-all lets the first job of a Travis CI build matrix wait
// for its peer jobs and act on their combined outcome.
//
// Run it at the end of every job. On the leader (job ordinal 1) it polls
// the build until all other jobs finish and exits 0 only if they all
// passed; on every other job it exits 3 immediately, so a script can
// gate leader-only work (deploys, notifications) on the exit status:
//
//	travis-after-all && ./deploy.sh
//
// Exit status: 0 all peers passed, 1 error, 2 a peer failed, 3 not the
// leader, 4 the wait timed out.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bureau-foundation/afterall/lib/clock"
	"github.com/bureau-foundation/afterall/lib/config"
)

// Exit statuses.
const (
	exitGeneric      = 1
	exitFailedBuilds = 2
	exitNotLeader    = 3
	exitTimeout      = 4
)

// requestTimeout bounds one API round-trip.
const requestTimeout = 30 * time.Second

func main() {
	if err := rootCommand(defaultEnvironment()).Execute(os.Args[1:]); err != nil {
		os.Exit(exitCode(err, os.Stderr))
	}
}

// exitCode returns the exit status for a command error. Errors that
// carry their own status were already reported by the command; anything
// else is printed to stderr and exits 1.
func exitCode(err error, stderr io.Writer) int {
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return exitGeneric
}

// environment is everything a command takes from the process. Tests
// substitute each field.
type environment struct {
	lookup     config.LookupFunc
	stdout     io.Writer
	stderr     io.Writer
	httpClient *http.Client
	clock      clock.Clock

	// interruptible returns the context a long-running command runs
	// under, canceled on SIGINT or SIGTERM.
	interruptible func() (context.Context, context.CancelFunc)
}

func defaultEnvironment() *environment {
	return &environment{
		lookup:     os.LookupEnv,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		httpClient: &http.Client{Timeout: requestTimeout},
		clock:      clock.Real(),
		interruptible: func() (context.Context, context.CancelFunc) {
			return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		},
	}
}
