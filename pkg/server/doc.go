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

// Package server implements the errorsink ingestion receiver: a small HTTP
// service that accepts the records errorsink clients ship to {base_url}/errors.
//
// It is used for local development, end-to-end tests of the retry protocol and
// as the backend of the "errsink receive" command.
//
// # Endpoints
//
// POST /errors - Ingest one record
//
//	Headers:
//	  - Authentication: must equal the configured token (when one is set)
//	  - Content-Type: application/json
//
//	Body: {"error_level": "Error", "message": "...", "stack_trace": "main.go:42"}
//
//	Responses:
//	  - 201 Created: record accepted
//	  - 400 Bad Request: malformed body, missing key or unknown severity
//	  - 401 Unauthorized: token mismatch
//	  - 429 Too Many Requests: rate limit exceeded
//	  - 503 Service Unavailable: simulated outage (FailFirst)
//
// GET /health - Liveness probe, always 200
//
// GET /ready - Readiness probe, 503 until the listener is up
//
// GET /metrics - Prometheus metrics
//
// # Middleware
//
// Ingest routes run through, outermost first: metrics, API version
// negotiation, request ID (X-Request-Id, uuid), panic recovery, rate limiting
// (golang.org/x/time/rate) and request logging.
//
// # Simulated failures
//
// FailFirst makes the receiver answer 503 to the first N authorized ingests,
// which exercises the client's bounded retry:
//
//	s := server.New(server.WithToken("t"), server.WithFailFirst(2))
//
// # Usage
//
//	s := server.New(
//	    server.WithName("errsink-receiver"),
//	    server.WithPort(8080),
//	    server.WithToken(token),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run stops gracefully on SIGINT or SIGTERM. PORT and SHUTDOWN_TIMEOUT_SECONDS
// override the defaults.
package server
