// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads travis-after-all configuration.
//
// Settings come from three layers, later layers overriding earlier
// ones:
//
//  1. [Default] values.
//  2. An optional file named by the TRAVIS_AFTER_ALL_CONFIG environment
//     variable or the --config flag. Files ending in .json or .jsonc
//     are parsed as JSON with comments; anything else is YAML.
//  3. The CI environment: TRAVIS_BUILD_ID and TRAVIS_JOB_NUMBER (set by
//     Travis for every job), LEADER_POLLING_INTERVAL and
//     LEADER_MAX_WAIT (whole seconds), TRAVIS_AFTER_ALL_API_URL, and
//     TRAVIS_AFTER_ALL_TOKEN.
//
// Command-line flags are applied by the caller after [FromEnvironment]
// returns. The build id and job number are never read from a file: they
// identify one specific job and only the CI environment knows them.
//
// Durations in files accept Go duration strings ("30s", "2m") or a bare
// number of seconds.
package config
