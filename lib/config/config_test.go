// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// env returns a LookupFunc over a fixed map.
func env(values map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		value, ok := values[name]
		return value, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, DefaultAPIURL)
	}
	if cfg.PollInterval.Std() != 5*time.Second {
		t.Errorf("PollInterval = %s, want 5s", cfg.PollInterval)
	}
	if cfg.MaxWait != 0 {
		t.Errorf("MaxWait = %s, want 0", cfg.MaxWait)
	}
	if cfg.RedirectLimit != 5 {
		t.Errorf("RedirectLimit = %d, want 5", cfg.RedirectLimit)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "after-all.yaml", `
api_url: https://api.travis-ci.com
token: secret
poll_interval: 30s
max_wait: 900
log_level: debug
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.APIURL != "https://api.travis-ci.com" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Token != "secret" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.PollInterval.Std() != 30*time.Second {
		t.Errorf("PollInterval = %s, want 30s", cfg.PollInterval)
	}
	if cfg.MaxWait.Std() != 15*time.Minute {
		t.Errorf("MaxWait = %s, want 15m", cfg.MaxWait)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	// Keys absent from the file keep their defaults.
	if cfg.RedirectLimit != DefaultRedirectLimit {
		t.Errorf("RedirectLimit = %d, want default %d", cfg.RedirectLimit, DefaultRedirectLimit)
	}
}

func TestLoadFileJSONC(t *testing.T) {
	path := writeFile(t, "after-all.jsonc", `{
	// Slow builds: poll less often.
	"poll_interval": "1m",
	"max_wait": 3600, /* one hour */
	"redirect_limit": 2,
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.PollInterval.Std() != time.Minute {
		t.Errorf("PollInterval = %s, want 1m", cfg.PollInterval)
	}
	if cfg.MaxWait.Std() != time.Hour {
		t.Errorf("MaxWait = %s, want 1h", cfg.MaxWait)
	}
	if cfg.RedirectLimit != 2 {
		t.Errorf("RedirectLimit = %d, want 2", cfg.RedirectLimit)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want default", cfg.APIURL)
	}
}

func TestLoadFileIgnoresIdentity(t *testing.T) {
	path := writeFile(t, "after-all.yaml", "build_id: \"999\"\njob_number: \"999.1\"\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.BuildID != "" || cfg.JobNumber != "" {
		t.Errorf("identity read from file: build=%q job=%q", cfg.BuildID, cfg.JobNumber)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad yaml", "c.yaml", "poll_interval: [1, 2\n"},
		{"bad duration", "c.yaml", "poll_interval: soon\n"},
		{"overflowing duration", "c.yaml", "max_wait: 1e300\n"},
		{"nan duration", "c.jsonc", `{"poll_interval": "NaN"}`},
		{"bad json", "c.json", `{"poll_interval": }`},
		{"json duration type", "c.json", `{"max_wait": true}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeFile(t, test.file, test.content)
			if _, err := LoadFile(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(env(map[string]string{
		EnvBuildID:      "12345",
		EnvJobNumber:    " 100.1 ",
		EnvPollInterval: "2",
		EnvMaxWait:      "60",
		EnvAPIURL:       "https://api.travis-ci.com",
		EnvToken:        "abc",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if cfg.BuildID != "12345" {
		t.Errorf("BuildID = %q", cfg.BuildID)
	}
	if cfg.JobNumber != "100.1" {
		t.Errorf("JobNumber = %q, want trimmed 100.1", cfg.JobNumber)
	}
	if cfg.PollInterval.Std() != 2*time.Second {
		t.Errorf("PollInterval = %s, want 2s", cfg.PollInterval)
	}
	if cfg.MaxWait.Std() != time.Minute {
		t.Errorf("MaxWait = %s, want 1m", cfg.MaxWait)
	}
	if cfg.APIURL != "https://api.travis-ci.com" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Token != "abc" {
		t.Errorf("Token = %q", cfg.Token)
	}
}

func TestApplyEnvEmptyLeavesValues(t *testing.T) {
	cfg := Default()
	cfg.Token = "from-file"
	if err := cfg.ApplyEnv(env(map[string]string{EnvToken: "", EnvPollInterval: "  "})); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Token != "from-file" {
		t.Errorf("Token = %q, want from-file", cfg.Token)
	}
	if cfg.PollInterval.Std() != DefaultPollInterval {
		t.Errorf("PollInterval = %s, want default", cfg.PollInterval)
	}
}

func TestApplyEnvRejectsBadIntervals(t *testing.T) {
	tests := []struct {
		name, variable, value string
	}{
		{"zero interval", EnvPollInterval, "0"},
		{"negative interval", EnvPollInterval, "-5"},
		{"fractional interval", EnvPollInterval, "1.5"},
		{"word interval", EnvPollInterval, "five"},
		{"word max wait", EnvMaxWait, "forever"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Default().ApplyEnv(env(map[string]string{test.variable: test.value}))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.variable) {
				t.Errorf("error %q does not name %s", err, test.variable)
			}
		})
	}
}

func TestFromEnvironmentPrecedence(t *testing.T) {
	path := writeFile(t, "after-all.yaml", "poll_interval: 30s\ntoken: file-token\nlog_level: warn\n")

	cfg, err := FromEnvironment(env(map[string]string{
		EnvConfigFile:   path,
		EnvBuildID:      "7",
		EnvJobNumber:    "7.1",
		EnvPollInterval: "10",
	}), "")
	if err != nil {
		t.Fatalf("FromEnvironment: %v", err)
	}

	// Environment beats file.
	if cfg.PollInterval.Std() != 10*time.Second {
		t.Errorf("PollInterval = %s, want 10s from environment", cfg.PollInterval)
	}
	// File beats defaults.
	if cfg.Token != "file-token" {
		t.Errorf("Token = %q, want file-token", cfg.Token)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.BuildID != "7" || cfg.JobNumber != "7.1" {
		t.Errorf("identity = %q/%q", cfg.BuildID, cfg.JobNumber)
	}
}

func TestFromEnvironmentExplicitPath(t *testing.T) {
	envFile := writeFile(t, "env.yaml", "token: env-file\n")
	flagFile := writeFile(t, "flag.yaml", "token: flag-file\n")

	cfg, err := FromEnvironment(env(map[string]string{EnvConfigFile: envFile}), flagFile)
	if err != nil {
		t.Fatalf("FromEnvironment: %v", err)
	}
	if cfg.Token != "flag-file" {
		t.Errorf("Token = %q, want flag-file", cfg.Token)
	}
}

func TestFromEnvironmentNoFile(t *testing.T) {
	cfg, err := FromEnvironment(env(nil), "")
	if err != nil {
		t.Fatalf("FromEnvironment: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want default", cfg.APIURL)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.APIURL = ""
	cfg.PollInterval = 0
	cfg.MaxWait = Duration(-time.Second)
	cfg.RedirectLimit = -1
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"api_url", "poll_interval", "max_wait", "redirect_limit", "log_level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not mention %s: %v", want, err)
		}
	}
}

func TestRequireIdentity(t *testing.T) {
	cfg := Default()

	err := cfg.RequireBuildID()
	if err == nil || !strings.Contains(err.Error(), EnvBuildID) {
		t.Errorf("RequireBuildID() = %v, want error naming %s", err, EnvBuildID)
	}
	err = cfg.RequireJobNumber()
	if err == nil || !strings.Contains(err.Error(), EnvJobNumber) {
		t.Errorf("RequireJobNumber() = %v, want error naming %s", err, EnvJobNumber)
	}

	cfg.BuildID = "1"
	cfg.JobNumber = "1.1"
	if err := cfg.RequireBuildID(); err != nil {
		t.Errorf("RequireBuildID: %v", err)
	}
	if err := cfg.RequireJobNumber(); err != nil {
		t.Errorf("RequireJobNumber: %v", err)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"5", 5 * time.Second},
		{"1.5", 1500 * time.Millisecond},
		{"90s", 90 * time.Second},
		{"2m30s", 150 * time.Second},
	}
	for _, test := range tests {
		got, err := parseDuration(test.input)
		if err != nil {
			t.Errorf("parseDuration(%q): %v", test.input, err)
			continue
		}
		if got.Std() != test.want {
			t.Errorf("parseDuration(%q) = %s, want %s", test.input, got, test.want)
		}
	}
	for _, input := range []string{"later", "NaN", "Inf", "-Inf", "infinity", "1e300", "-1e300"} {
		if got, err := parseDuration(input); err == nil {
			t.Errorf("parseDuration(%q) = %s, want error", input, got)
		}
	}
}
