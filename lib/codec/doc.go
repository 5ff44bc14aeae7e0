// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding used for machine-readable
// build reports.
//
// Reports are shared between JSON, YAML, and CBOR output, so report
// types carry only `json` struct tags: fxamacker/cbor falls back to
// `json` tags when no `cbor` tag is present, and a single tag keeps
// field naming identical across every format.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): the
// same report always produces identical bytes, so two reports can be
// compared with a byte diff.
package codec
