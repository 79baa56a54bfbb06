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

// Package binding is the host-binding surface of errorsink: a constructible
// handle for callers that cannot use the process-wide sink, such as the
// JavaScript host of the WASM build.
//
// Each Handle owns its own transport client. CustomError returns a deferred
// result: nothing is sent until the Future is awaited, and delivery errors are
// reported only through Await.
package binding

import (
	"context"

	"github.com/NVIDIA/errorsink/pkg/dispatch"
	"github.com/NVIDIA/errorsink/pkg/errors"
	"github.com/NVIDIA/errorsink/pkg/record"
	"github.com/NVIDIA/errorsink/pkg/transport"
)

// Handle is a client object bound to one endpoint.
type Handle struct {
	client     *transport.Client
	dispatcher dispatch.Dispatcher
}

// New builds a Handle for baseURL authenticated with token. Errors carry the
// transport construction codes (ErrCodeInvalidHeaderValue, ErrCodeInvalidURL,
// ErrCodeClientCreation).
func New(baseURL, token string, opts ...transport.Option) (*Handle, error) {
	client, err := transport.New(token, baseURL, opts...)
	if err != nil {
		return nil, err
	}

	d, err := dispatch.New(dispatch.StrategyFuture, client)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create dispatcher", err)
	}

	return &Handle{client: client, dispatcher: d}, nil
}

// CustomError builds a record from its parts and returns a deferred send.
// An unknown level is reported when the Future is awaited.
func (h *Handle) CustomError(level, message, trace string) *dispatch.Future {
	sev, err := record.ParseSeverity(level)
	if err != nil {
		return dispatch.Resolved(err)
	}
	return h.dispatcher.Submit(context.Background(), record.New(sev, message, trace))
}

// BaseURL returns the endpoint base URL.
func (h *Handle) BaseURL() string {
	return h.client.BaseURL()
}

// Close rejects further CustomError calls. Futures already returned still
// deliver when awaited.
func (h *Handle) Close() error {
	return h.dispatcher.Close(context.Background())
}
