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

package delivery

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/errorsink/pkg/errors"
	"github.com/NVIDIA/errorsink/pkg/record"
	"github.com/NVIDIA/errorsink/pkg/transport"
)

// scriptedEndpoint answers with statuses[i] for the i-th request and with the
// last status once the script runs out.
func scriptedEndpoint(t *testing.T, statuses ...int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(hits.Add(1))
		_, _ = io.Copy(io.Discard, r.Body)
		idx := n - 1
		if idx >= len(statuses) {
			idx = len(statuses) - 1
		}
		w.WriteHeader(statuses[idx])
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newClient(t *testing.T, baseURL string) *transport.Client {
	t.Helper()
	c, err := transport.New("test-token", baseURL)
	require.NoError(t, err)
	return c
}

func testRecord() record.Record {
	return record.New(record.SeverityError, "disk full", "storage/writer.go:42")
}

func TestSend_CreatedOnFirstAttempt(t *testing.T) {
	var (
		hits    atomic.Int32
		gotPath string
		gotBody map[string]any
		gotAuth string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authentication")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := Send(context.Background(), newClient(t, srv.URL), testRecord())
	require.NoError(t, err)

	assert.EqualValues(t, 1, hits.Load())
	assert.Equal(t, "/errors", gotPath)
	assert.Equal(t, "test-token", gotAuth)
	assert.Equal(t, map[string]any{
		"error_level": "Error",
		"message":     "disk full",
		"stack_trace": "storage/writer.go:42",
	}, gotBody)
}

func TestSend_ExhaustsRetryBudget(t *testing.T) {
	srv, hits := scriptedEndpoint(t, http.StatusInternalServerError)

	err := Send(context.Background(), newClient(t, srv.URL), testRecord())
	require.Error(t, err)

	assert.EqualValues(t, 5, hits.Load())
	assert.True(t, errors.IsCode(err, errors.ErrCodeFailedToSend))
	status, ok := errors.StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestSend_SucceedsAfterRetries(t *testing.T) {
	srv, hits := scriptedEndpoint(t,
		http.StatusServiceUnavailable,
		http.StatusBadGateway,
		http.StatusCreated)

	err := Send(context.Background(), newClient(t, srv.URL), testRecord())
	require.NoError(t, err)
	assert.EqualValues(t, 3, hits.Load())
}

func TestSend_SucceedsOnLastAttempt(t *testing.T) {
	srv, hits := scriptedEndpoint(t, 500, 500, 500, 500, http.StatusCreated)

	err := Send(context.Background(), newClient(t, srv.URL), testRecord())
	require.NoError(t, err)
	assert.EqualValues(t, 5, hits.Load())
}

func TestSend_OtherSuccessCodesAreRetried(t *testing.T) {
	// Only 201 counts as delivered
	srv, hits := scriptedEndpoint(t, http.StatusOK)

	err := Send(context.Background(), newClient(t, srv.URL), testRecord())
	require.Error(t, err)
	assert.EqualValues(t, 5, hits.Load())
	status, _ := errors.StatusCode(err)
	assert.Equal(t, http.StatusOK, status)
}

func TestSend_TransportFailureIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("response writer does not support hijacking")
			return
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			_ = conn.Close()
		}
	}))
	defer srv.Close()

	err := Send(context.Background(), newClient(t, srv.URL), testRecord())
	require.Error(t, err)

	assert.EqualValues(t, 1, hits.Load())
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
	_, hasStatus := errors.StatusCode(err)
	assert.False(t, hasStatus)
}

func TestSend_TransportFailureAfterRejection(t *testing.T) {
	calls := 0
	p := PosterFunc(func(_ context.Context, _ string, _ []byte) (int, error) {
		calls++
		if calls == 1 {
			return http.StatusTooManyRequests, nil
		}
		return 0, io.ErrUnexpectedEOF
	})

	err := Send(context.Background(), p, testRecord())
	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
}

func TestSend_CanceledContext(t *testing.T) {
	srv, hits := scriptedEndpoint(t, http.StatusCreated)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Send(ctx, newClient(t, srv.URL), testRecord())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
	assert.Zero(t, hits.Load())
}

func TestSend_IdenticalBodyOnEveryAttempt(t *testing.T) {
	var bodies []string
	p := PosterFunc(func(_ context.Context, path string, body []byte) (int, error) {
		assert.Equal(t, "/errors", path)
		bodies = append(bodies, string(body))
		return http.StatusInternalServerError, nil
	})

	_ = Send(context.Background(), p, testRecord())
	require.Len(t, bodies, 5)
	for _, b := range bodies[1:] {
		assert.Equal(t, bodies[0], b)
	}
}

func TestSend_Metrics(t *testing.T) {
	createdBefore := testutil.ToFloat64(deliveryAttempts.WithLabelValues(outcomeCreated))
	rejectedBefore := testutil.ToFloat64(deliveryAttempts.WithLabelValues(outcomeRejected))
	deliveredBefore := testutil.ToFloat64(deliveryResults.WithLabelValues(resultDelivered))
	failedBefore := testutil.ToFloat64(deliveryResults.WithLabelValues(resultFailed))

	okCalls := 0
	ok := PosterFunc(func(context.Context, string, []byte) (int, error) {
		okCalls++
		if okCalls < 2 {
			return http.StatusInternalServerError, nil
		}
		return http.StatusCreated, nil
	})
	require.NoError(t, Send(context.Background(), ok, testRecord()))

	bad := PosterFunc(func(context.Context, string, []byte) (int, error) {
		return http.StatusBadRequest, nil
	})
	require.Error(t, Send(context.Background(), bad, testRecord()))

	assert.Equal(t, createdBefore+1, testutil.ToFloat64(deliveryAttempts.WithLabelValues(outcomeCreated)))
	assert.Equal(t, rejectedBefore+6, testutil.ToFloat64(deliveryAttempts.WithLabelValues(outcomeRejected)))
	assert.Equal(t, deliveredBefore+1, testutil.ToFloat64(deliveryResults.WithLabelValues(resultDelivered)))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(deliveryResults.WithLabelValues(resultFailed)))
}

func TestSend_InvalidRecordIsNotPosted(t *testing.T) {
	tests := []struct {
		name string
		rec  record.Record
	}{
		{name: "unknown severity", rec: record.New(record.Severity("Critical"), "m", "o")},
		{name: "empty severity", rec: record.New(record.Severity(""), "m", "o")},
		{name: "invalid utf-8 message", rec: record.New(record.SeverityError, "a\xffb", "o")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := scriptedEndpoint(t, http.StatusCreated)
			invalidBefore := testutil.ToFloat64(deliveryResults.WithLabelValues(resultInvalid))

			err := Send(context.Background(), newClient(t, srv.URL), tt.rec)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
			assert.Zero(t, hits.Load())
			assert.Equal(t, invalidBefore+1, testutil.ToFloat64(deliveryResults.WithLabelValues(resultInvalid)))
		})
	}
}
