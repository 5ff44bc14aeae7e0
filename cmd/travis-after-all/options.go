// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/afterall/cmd/travis-after-all/cli"
	"github.com/bureau-foundation/afterall/lib/config"
	"github.com/bureau-foundation/afterall/lib/travis"
	"github.com/bureau-foundation/afterall/lib/version"
)

// options are the flags shared by every command that reads
// configuration. A flag overrides the file and the environment only
// when it was given on the command line.
type options struct {
	configPath    string
	apiURL        string
	token         string
	pollInterval  time.Duration
	maxWait       time.Duration
	redirectLimit int
	logLevel      string

	flagSet *pflag.FlagSet
}

func (o *options) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&o.configPath, "config", "", "configuration file, YAML or JSON with comments (env "+config.EnvConfigFile+")")
	flagSet.StringVar(&o.apiURL, "api-url", config.DefaultAPIURL, "build status API base URL (env "+config.EnvAPIURL+")")
	flagSet.StringVar(&o.token, "token", "", "API token for private builds (env "+config.EnvToken+")")
	flagSet.DurationVar(&o.pollInterval, "poll-interval", config.DefaultPollInterval, "time between polls (env "+config.EnvPollInterval+", seconds)")
	flagSet.DurationVar(&o.maxWait, "max-wait", 0, "give up after waiting this long, 0 for no limit (env "+config.EnvMaxWait+", seconds)")
	flagSet.IntVar(&o.redirectLimit, "redirect-limit", config.DefaultRedirectLimit, "redirects followed per request, 0 to refuse redirects")
	flagSet.StringVar(&o.logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	o.flagSet = flagSet
}

// load resolves the configuration: defaults, file, environment, flags.
func (o *options) load(env *environment) (*config.Config, error) {
	cfg, err := config.FromEnvironment(env.lookup, o.configPath)
	if err != nil {
		return nil, err
	}

	changed := func(name string) bool {
		return o.flagSet != nil && o.flagSet.Changed(name)
	}
	if changed("api-url") {
		cfg.APIURL = o.apiURL
	}
	if changed("token") {
		cfg.Token = o.token
	}
	if changed("poll-interval") {
		cfg.PollInterval = config.Duration(o.pollInterval)
	}
	if changed("max-wait") {
		cfg.MaxWait = config.Duration(o.maxWait)
	}
	if changed("redirect-limit") {
		cfg.RedirectLimit = o.redirectLimit
	}
	if changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(env *environment, cfg *config.Config) (*slog.Logger, error) {
	level, err := cli.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return cli.NewCommandLogger(env.stderr, level), nil
}

func newClient(env *environment, cfg *config.Config, logger *slog.Logger) (*travis.Client, error) {
	// travis.Config treats zero as "use the default"; here zero means
	// what the configuration says: no redirects.
	redirectLimit := cfg.RedirectLimit
	if redirectLimit == 0 {
		redirectLimit = -1
	}
	return travis.NewClient(travis.Config{
		BaseURL:       cfg.APIURL,
		Token:         cfg.Token,
		UserAgent:     version.UserAgent(),
		RedirectLimit: redirectLimit,
		HTTPClient:    env.httpClient,
		Logger:        logger,
	})
}
