// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package travis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bureau-foundation/afterall/lib/matrix"
	"github.com/bureau-foundation/afterall/lib/version"
)

// DefaultBaseURL is the public Travis CI API.
const DefaultBaseURL = "https://api.travis-ci.org"

// DefaultRedirectLimit bounds how many redirects a single request
// follows.
const DefaultRedirectLimit = 5

// acceptHeader selects the v2 build representation, whose body carries
// the job list under "matrix".
const acceptHeader = "application/vnd.travis-ci.2.1+json"

// maxResponseSize caps how much of a response body is read.
const maxResponseSize int64 = 16 << 20

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to
	// DefaultBaseURL. Must use HTTPS.
	BaseURL string

	// Token is an optional API token, sent as "Authorization: token
	// <Token>". Public builds need none.
	Token string

	// UserAgent identifies the client. Defaults to version.UserAgent().
	UserAgent string

	// RedirectLimit is the maximum number of redirects followed per
	// request. Defaults to DefaultRedirectLimit; negative disables
	// redirects.
	RedirectLimit int

	// HTTPClient is used for all requests. Defaults to
	// http.DefaultClient. The client is copied, never modified.
	HTTPClient *http.Client

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client fetches build status snapshots from the Travis API. A Client
// holds no mutable state and is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client from the given configuration. Returns an
// error if the base URL is malformed or not HTTPS.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("travis: invalid base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme != "https" || parsed.Host == "" {
		return nil, fmt.Errorf("travis: API client requires HTTPS (got %q)", baseURL)
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = version.UserAgent()
	}

	redirectLimit := config.RedirectLimit
	if redirectLimit == 0 {
		redirectLimit = DefaultRedirectLimit
	}

	base := config.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}
	httpClient := *base
	httpClient.CheckRedirect = limitRedirects(redirectLimit)

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		token:      config.Token,
		userAgent:  userAgent,
		httpClient: &httpClient,
		logger:     logger,
	}, nil
}

// limitRedirects returns a CheckRedirect policy that stops after limit
// hops. A negative limit refuses every redirect.
func limitRedirects(limit int) func(*http.Request, []*http.Request) error {
	return func(request *http.Request, via []*http.Request) error {
		if limit < 0 {
			return fmt.Errorf("redirect to %s refused: redirects disabled", request.URL)
		}
		if len(via) > limit {
			return fmt.Errorf("stopped after %d redirects", limit)
		}
		return nil
	}
}

// GetBuild fetches the current status of a build and decodes its job
// matrix. Every call performs a fresh request.
//
// A 404 returns an *APIError that matches matrix.ErrBuildNotFound
// under errors.Is. Other non-2xx responses return an *APIError;
// transport and decoding failures return wrapped errors.
func (client *Client) GetBuild(ctx context.Context, buildID string) (*matrix.Matrix, error) {
	if buildID == "" {
		return nil, fmt.Errorf("travis: build id is required")
	}
	body, err := client.get(ctx, "/builds/"+url.PathEscape(buildID))
	if err != nil {
		return nil, err
	}
	snapshot, err := matrix.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("travis: build %s: %w", buildID, err)
	}
	return snapshot, nil
}

// FetchMatrix implements barrier.Fetcher.
func (client *Client) FetchMatrix(ctx context.Context, buildID string) (*matrix.Matrix, error) {
	return client.GetBuild(ctx, buildID)
}

// get performs a GET against path (relative to the base URL) and
// returns the response body. Non-2xx responses return an *APIError.
func (client *Client) get(ctx context.Context, path string) ([]byte, error) {
	requestURL := client.baseURL + path
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("travis: creating request: %w", err)
	}
	request.Header.Set("User-Agent", client.userAgent)
	request.Header.Set("Accept", acceptHeader)
	if client.token != "" {
		request.Header.Set("Authorization", "token "+client.token)
	}

	client.logger.Debug("requesting build status", "url", requestURL)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("travis: GET %s: %w", requestURL, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("travis: reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		client.logger.Debug("build status request failed",
			"url", requestURL,
			"status", response.StatusCode,
		)
		return nil, parseAPIError(response.StatusCode, body)
	}
	return body, nil
}
