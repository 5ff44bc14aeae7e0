// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package travis provides a read-only client for the Travis CI build
// status API.
//
// The only operation the barrier needs is [Client.GetBuild]: one GET of
// <base>/builds/<id>, decoded into a [matrix.Matrix]. The client
// attaches a descriptive User-Agent, follows a bounded number of
// redirects, and maps non-2xx responses to [*APIError]. A 404 is
// additionally reported as [matrix.ErrBuildNotFound] so callers can
// tell a misconfigured build id from a flaky network.
//
// All requests are made over HTTPS. The client refuses non-HTTPS base
// URLs.
package travis
