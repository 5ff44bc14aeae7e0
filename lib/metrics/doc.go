// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package metrics records barrier polling activity as Prometheus
// metrics.
//
// A CI job is short-lived and is not scraped, so the recorder writes
// its registry to a file in the Prometheus text format (see
// [PrometheusRecorder.WriteTextfile]) for node_exporter's textfile
// collector or for upload as a build artifact. Each recorder owns a
// private registry; nothing is registered globally.
package metrics
