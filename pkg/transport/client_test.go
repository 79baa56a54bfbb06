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
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/errorsink/pkg/errors"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New("secret-token", "https://logs.example.com/")
	require.NoError(t, err)

	assert.Equal(t, "https://logs.example.com", c.BaseURL())
	assert.Equal(t, 30000*time.Millisecond, c.Timeout())
	assert.Equal(t, ContentTypeJSON, c.header.Get("Content-Type"))
	assert.Equal(t, "secret-token", c.header.Get(HeaderAuthentication))
	assert.NotEmpty(t, c.header.Get("User-Agent"))
}

func TestNew_Timeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"custom", 1500 * time.Millisecond, 1500 * time.Millisecond},
		{"zero keeps default", 0, DefaultTimeout},
		{"negative keeps default", -time.Second, DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New("t", "http://localhost:9", WithTimeout(tt.timeout))
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Timeout())
		})
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		baseURL string
		opts    []Option
		code    errors.ErrorCode
	}{
		{name: "newline in token", token: "abc\ndef", baseURL: "http://x", code: errors.ErrCodeInvalidHeaderValue},
		{name: "control char in token", token: "abc\x01", baseURL: "http://x", code: errors.ErrCodeInvalidHeaderValue},
		{name: "delete char in token", token: "abc\x7f", baseURL: "http://x", code: errors.ErrCodeInvalidHeaderValue},
		{name: "bad user agent", token: "t", baseURL: "http://x", opts: []Option{WithUserAgent("a\r\nb")}, code: errors.ErrCodeInvalidHeaderValue},
		{name: "empty base url", token: "t", baseURL: "", code: errors.ErrCodeInvalidURL},
		{name: "relative base url", token: "t", baseURL: "/errors", code: errors.ErrCodeInvalidURL},
		{name: "unsupported scheme", token: "t", baseURL: "ftp://logs.example.com", code: errors.ErrCodeInvalidURL},
		{name: "unparsable base url", token: "t", baseURL: "http://[::1", code: errors.ErrCodeInvalidURL},
		{name: "bad proxy", token: "t", baseURL: "http://x", opts: []Option{WithProxy("not a proxy")}, code: errors.ErrCodeClientCreation},
		{name: "missing CA file", token: "t", baseURL: "http://x", opts: []Option{WithCAFile("/nonexistent/ca.pem")}, code: errors.ErrCodeClientCreation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.token, tt.baseURL, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, errors.IsCode(err, tt.code), "got %v, want code %s", err, tt.code)
		})
	}
}

func TestNew_InvalidCABundle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0600))

	_, err := New("t", "https://x", WithCAFile(path))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeClientCreation))
}

func TestNew_ValidProxy(t *testing.T) {
	c, err := New("t", "https://x", WithProxy("http://proxy.internal:3128"))
	require.NoError(t, err)

	tr, ok := c.httpClient.Transport.(*http.Transport)
	require.True(t, ok)
	req, _ := http.NewRequest(http.MethodPost, "https://x/errors", nil)
	pu, err := tr.Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "proxy.internal:3128", pu.Host)
}

func TestNew_NoNetworkIO(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	_, err := New("t", srv.URL)
	require.NoError(t, err)
	assert.Zero(t, hits.Load())
}

func TestNew_WithHTTPClient(t *testing.T) {
	custom := &http.Client{}
	c, err := New("t", "http://x", WithHTTPClient(custom), WithTimeout(2*time.Second))
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, c.Timeout())
	assert.Zero(t, custom.Timeout, "caller's client must not be mutated")

	preset := &http.Client{Timeout: 7 * time.Second}
	c, err = New("t", "http://x", WithHTTPClient(preset))
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, c.Timeout())
}

func TestPost_Request(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotHeader http.Header
		gotBody   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotHeader = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"ignored"}`))
	}))
	defer srv.Close()

	c, err := New("tok-123", srv.URL+"/", WithUserAgent("test-agent/1"))
	require.NoError(t, err)

	status, err := c.Post(context.Background(), "/errors", []byte(`{"a":1}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/errors", gotPath)
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "tok-123", gotHeader.Get("Authentication"))
	assert.Equal(t, "test-agent/1", gotHeader.Get("User-Agent"))
	assert.JSONEq(t, `{"a":1}`, string(gotBody))
}

func TestPost_NonSuccessStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := New("t", srv.URL)
	require.NoError(t, err)

	status, err := c.Post(context.Background(), "/errors", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestPost_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New("t", url)
	require.NoError(t, err)

	status, err := c.Post(context.Background(), "/errors", []byte(`{}`))
	assert.Error(t, err)
	assert.Zero(t, status)
}

func TestPost_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c, err := New("t", srv.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.Post(context.Background(), "/errors", []byte(`{}`))
	assert.Error(t, err)
}

func TestClient_ConcurrentUse(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c, err := New("t", srv.URL)
	require.NoError(t, err)

	const n = 50
	done := make(chan struct{}, n)
	for range n {
		go func() {
			defer func() { done <- struct{}{} }()
			_, _ = c.Post(context.Background(), "/errors", []byte(`{}`))
		}()
	}
	for range n {
		<-done
	}
	assert.EqualValues(t, n, hits.Load())
}
