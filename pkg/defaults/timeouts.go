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

package defaults

import "time"

// HTTP client timeouts for outbound delivery requests.
const (
	// HTTPClientTimeout is the default total timeout for a single delivery request.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// Delivery parameters for the bounded-retry send.
const (
	// DeliveryMaxAttempts is the total number of POST attempts for one record,
	// the first attempt included.
	DeliveryMaxAttempts = 5

	// DeliveryPath is appended to the base URL to form the ingestion endpoint.
	DeliveryPath = "/errors"
)

// Dispatcher parameters for the spawned-task strategy.
const (
	// DispatchWorkers is the number of workers draining the task queue.
	DispatchWorkers = 4

	// DispatchQueueSize is the capacity of the task queue. Records submitted
	// while the queue is full are dropped.
	DispatchQueueSize = 1024

	// DispatchCloseTimeout bounds how long Close waits for queued records.
	DispatchCloseTimeout = 30 * time.Second
)

// Server timeouts for the local ingestion receiver.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second

	// ServerMaxBodyBytes caps the size of an ingested record body.
	ServerMaxBodyBytes = 1 << 20
)
