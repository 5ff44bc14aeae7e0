// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvConfigFile   = "TRAVIS_AFTER_ALL_CONFIG"
	EnvBuildID      = "TRAVIS_BUILD_ID"
	EnvJobNumber    = "TRAVIS_JOB_NUMBER"
	EnvPollInterval = "LEADER_POLLING_INTERVAL"
	EnvMaxWait      = "LEADER_MAX_WAIT"
	EnvAPIURL       = "TRAVIS_AFTER_ALL_API_URL"
	EnvToken        = "TRAVIS_AFTER_ALL_TOKEN"
)

// Defaults.
const (
	DefaultAPIURL        = "https://api.travis-ci.org"
	DefaultPollInterval  = 5 * time.Second
	DefaultRedirectLimit = 5
	DefaultLogLevel      = "info"
)

// LogLevels lists the accepted values of Config.LogLevel.
var LogLevels = []string{"debug", "info", "warn", "error"}

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(name string) (string, bool)

// Config is the complete configuration of one travis-after-all run.
type Config struct {
	// APIURL is the base URL of the build status API.
	APIURL string `yaml:"api_url" json:"api_url"`

	// Token authenticates API requests. Optional for public builds.
	Token string `yaml:"token" json:"token"`

	// PollInterval is the time between polls. Must be positive.
	PollInterval Duration `yaml:"poll_interval" json:"poll_interval"`

	// MaxWait bounds the leader's total wait. Zero means unbounded.
	MaxWait Duration `yaml:"max_wait" json:"max_wait"`

	// RedirectLimit is the number of redirects followed per request.
	RedirectLimit int `yaml:"redirect_limit" json:"redirect_limit"`

	// LogLevel is one of LogLevels.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// BuildID identifies the build. Environment only.
	BuildID string `yaml:"-" json:"-"`

	// JobNumber is this job's number. Environment only.
	JobNumber string `yaml:"-" json:"-"`
}

// Default returns a Config with default values and no identity.
func Default() *Config {
	return &Config{
		APIURL:        DefaultAPIURL,
		PollInterval:  Duration(DefaultPollInterval),
		RedirectLimit: DefaultRedirectLimit,
		LogLevel:      DefaultLogLevel,
	}
}

// LoadFile returns the defaults overlaid with the file at path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnvironment builds a Config from the defaults, the optional file
// named by EnvConfigFile (or configPath, when non-empty), and the
// environment. It does not validate; call Validate after applying
// flags.
func FromEnvironment(lookup LookupFunc, configPath string) (*Config, error) {
	if configPath == "" {
		configPath, _ = lookup(EnvConfigFile)
	}

	cfg := Default()
	if configPath != "" {
		if err := cfg.loadFile(configPath); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile merges a YAML or JSONC file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), c)
	default:
		err = yaml.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays the environment variables onto c. Unset or empty
// variables leave the current value alone.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	get := func(name string) (string, bool) {
		value, ok := lookup(name)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}

	if value, ok := get(EnvBuildID); ok {
		c.BuildID = value
	}
	if value, ok := get(EnvJobNumber); ok {
		c.JobNumber = value
	}
	if value, ok := get(EnvAPIURL); ok {
		c.APIURL = value
	}
	if value, ok := get(EnvToken); ok {
		c.Token = value
	}
	if value, ok := get(EnvPollInterval); ok {
		seconds, err := parseSeconds(EnvPollInterval, value)
		if err != nil {
			return err
		}
		if seconds == 0 {
			return fmt.Errorf("config: %s must be a positive integer (got %q)", EnvPollInterval, value)
		}
		c.PollInterval = Duration(time.Duration(seconds) * time.Second)
	}
	if value, ok := get(EnvMaxWait); ok {
		seconds, err := parseSeconds(EnvMaxWait, value)
		if err != nil {
			return err
		}
		c.MaxWait = Duration(time.Duration(seconds) * time.Second)
	}
	return nil
}

// parseSeconds parses a non-negative whole number of seconds.
func parseSeconds(name, value string) (uint64, error) {
	seconds, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a whole number of seconds (got %q)", name, value)
	}
	return seconds, nil
}

// Validate checks the tunable settings. It does not require an
// identity; see RequireBuildID and RequireJobNumber.
func (c *Config) Validate() error {
	var errs []error

	if c.APIURL == "" {
		errs = append(errs, fmt.Errorf("api_url is required"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval must be positive (got %s)", c.PollInterval))
	}
	if c.MaxWait < 0 {
		errs = append(errs, fmt.Errorf("max_wait must not be negative (got %s)", c.MaxWait))
	}
	if c.RedirectLimit < 0 {
		errs = append(errs, fmt.Errorf("redirect_limit must not be negative (got %d)", c.RedirectLimit))
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level must be one of: %v (got %q)", LogLevels, c.LogLevel))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// RequireBuildID returns an error if no build id was configured.
func (c *Config) RequireBuildID() error {
	if c.BuildID == "" {
		return fmt.Errorf("missing environment variable: %s", EnvBuildID)
	}
	return nil
}

// RequireJobNumber returns an error if no job number was configured.
func (c *Config) RequireJobNumber() error {
	if c.JobNumber == "" {
		return fmt.Errorf("missing environment variable: %s", EnvJobNumber)
	}
	return nil
}
