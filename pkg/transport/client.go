// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"

	"github.com/NVIDIA/errorsink/pkg/defaults"
	"github.com/NVIDIA/errorsink/pkg/errors"
	"github.com/NVIDIA/errorsink/pkg/version"
)

const (
	// HeaderAuthentication carries the static token on every request.
	HeaderAuthentication = "Authentication"

	// ContentTypeJSON is the content type of every request body.
	ContentTypeJSON = "application/json"

	// DefaultTimeout is used when no timeout option is supplied.
	DefaultTimeout = defaults.HTTPClientTimeout

	// maxDrainBytes bounds how much of a response body is read before closing
	// so the connection can be reused.
	maxDrainBytes = 64 << 10
)

var (
	DefaultMaxIdleConns        = 100
	DefaultMaxIdleConnsPerHost = 10
)

// Option defines a configuration option for Client.
type Option func(*options)

type options struct {
	timeout            time.Duration
	userAgent          string
	proxyURL           string
	caFile             string
	insecureSkipVerify bool
	httpClient         *http.Client
}

// WithTimeout sets the total per-request timeout. Zero or negative values keep
// DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithProxy routes requests through the given proxy URL instead of the
// environment's HTTP_PROXY/HTTPS_PROXY settings.
func WithProxy(rawURL string) Option {
	return func(o *options) {
		o.proxyURL = rawURL
	}
}

// WithCAFile replaces the system root pool with the PEM certificates in path.
func WithCAFile(path string) Option {
	return func(o *options) {
		o.caFile = path
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify(skip bool) Option {
	return func(o *options) {
		o.insecureSkipVerify = skip
	}
}

// WithHTTPClient uses a caller-supplied client. Transport-related options
// (proxy, CA file, TLS verification) are ignored; the timeout applies only if
// the supplied client has none.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// Client is an HTTP sender bound to one destination and one credential.
type Client struct {
	baseURL    string
	timeout    time.Duration
	header     http.Header
	httpClient *http.Client
}

// New creates a Client for baseURL authenticating with token.
//
// Errors:
//   - ErrCodeInvalidHeaderValue: token or user agent is not a legal header value
//   - ErrCodeInvalidURL: baseURL is not an absolute http(s) URL
//   - ErrCodeClientCreation: the HTTP transport could not be built
func New(token, baseURL string, opts ...Option) (*Client, error) {
	o := &options{
		timeout:   DefaultTimeout,
		userAgent: version.UserAgent(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if !httpguts.ValidHeaderFieldValue(token) {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidHeaderValue,
			"token is not a valid HTTP header value", map[string]any{"header": HeaderAuthentication})
	}
	if !httpguts.ValidHeaderFieldValue(o.userAgent) {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidHeaderValue,
			"user agent is not a valid HTTP header value", map[string]any{"header": "User-Agent"})
	}

	base, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	hc, err := buildHTTPClient(o)
	if err != nil {
		return nil, err
	}

	header := make(http.Header)
	header.Set("Content-Type", ContentTypeJSON)
	header.Set(HeaderAuthentication, token)
	header.Set("User-Agent", o.userAgent)

	return &Client{
		baseURL:    base,
		timeout:    hc.Timeout,
		header:     header,
		httpClient: hc,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInvalidURL,
			"failed to parse base URL", err, map[string]any{"url": raw})
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errors.NewWithContext(errors.ErrCodeInvalidURL,
			"base URL must be an absolute http or https URL", map[string]any{"url": raw})
	}
	return strings.TrimRight(u.String(), "/"), nil
}

func buildHTTPClient(o *options) (*http.Client, error) {
	if o.httpClient != nil {
		hc := *o.httpClient
		if hc.Timeout == 0 {
			hc.Timeout = o.timeout
		}
		return &hc, nil
	}

	tr := newDefaultHTTPTransport()

	if o.proxyURL != "" {
		pu, err := url.Parse(o.proxyURL)
		if err != nil || pu.Scheme == "" || pu.Host == "" {
			if err == nil {
				err = fmt.Errorf("proxy URL %q has no scheme or host", o.proxyURL)
			}
			return nil, errors.Wrap(errors.ErrCodeClientCreation, "invalid proxy configuration", err)
		}
		tr.Proxy = http.ProxyURL(pu)
	}

	if o.caFile != "" {
		pem, err := os.ReadFile(o.caFile)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeClientCreation, "failed to read CA file", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, errors.NewWithContext(errors.ErrCodeClientCreation,
				"CA file contains no valid certificates", map[string]any{"path": o.caFile})
		}
		tr.TLSClientConfig.RootCAs = pool
	}

	tr.TLSClientConfig.InsecureSkipVerify = o.insecureSkipVerify //nolint:gosec // opt-in via WithInsecureSkipVerify

	return &http.Client{
		Timeout:   o.timeout,
		Transport: tr,
	}, nil
}

func newDefaultHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,

		// Connection pooling
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,

		// Timeouts
		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,

		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// BaseURL returns the destination the client is bound to, without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the effective per-request timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Post sends body to baseURL+path and returns the response status code.
// A non-nil error means no response was received (connection, DNS, TLS or
// timeout failure); any received status, including 5xx, is returned with a
// nil error. The response body is discarded.
func (c *Client) Post(ctx context.Context, path string, body []byte) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header = c.header.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	return resp.StatusCode, nil
}
