// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package barrier

import (
	"errors"

	"github.com/bureau-foundation/afterall/lib/matrix"
)

var (
	// ErrNotLeader is returned when the wait protocol is invoked by a
	// job that is not the build leader.
	ErrNotLeader = errors.New("barrier: this job is not the build leader")

	// ErrBuildNotFound is returned when the status API has no record of
	// the configured build. It is the same value as
	// matrix.ErrBuildNotFound.
	ErrBuildNotFound = matrix.ErrBuildNotFound

	// ErrFailedBuilds is returned when every peer job finished but at
	// least one of them did not succeed.
	ErrFailedBuilds = errors.New("barrier: some peer jobs failed")

	// ErrWaitTimeout is returned when Config.MaxWait elapses before
	// every peer job finished.
	ErrWaitTimeout = errors.New("barrier: maximum wait exceeded")
)

// Kind classifies the outcome of a barrier operation.
type Kind int

const (
	// KindNone means the operation succeeded.
	KindNone Kind = iota

	// KindGeneric covers transport failures, undecodable payloads,
	// invalid configuration, and cancellation.
	KindGeneric

	// KindNotLeader corresponds to ErrNotLeader.
	KindNotLeader

	// KindBuildNotFound corresponds to ErrBuildNotFound.
	KindBuildNotFound

	// KindFailedBuilds corresponds to ErrFailedBuilds.
	KindFailedBuilds

	// KindTimeout corresponds to ErrWaitTimeout, which also covers an
	// expired deadline on the context passed to WaitForOthers. Deadlines
	// inside a fetch (HTTP client timeouts) are KindGeneric.
	KindTimeout
)

func (kind Kind) String() string {
	switch kind {
	case KindNone:
		return "none"
	case KindGeneric:
		return "generic"
	case KindNotLeader:
		return "not-leader"
	case KindBuildNotFound:
		return "build-not-found"
	case KindFailedBuilds:
		return "failed-builds"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// KindOf classifies err. A nil error is KindNone; anything unrecognized
// is KindGeneric.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotLeader):
		return KindNotLeader
	case errors.Is(err, ErrBuildNotFound):
		return KindBuildNotFound
	case errors.Is(err, ErrFailedBuilds):
		return KindFailedBuilds
	case errors.Is(err, ErrWaitTimeout):
		return KindTimeout
	default:
		return KindGeneric
	}
}
