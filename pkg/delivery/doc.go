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

// Package delivery implements the bounded-retry send of a single record.
//
// # Protocol
//
// Send POSTs the JSON-encoded record to {base_url}/errors:
//
//  1. A 201 response ends the send successfully.
//  2. Any other status is re-sent immediately, up to defaults.DeliveryMaxAttempts
//     attempts in total. No backoff, jitter or alternate endpoint is used.
//  3. When the budget is exhausted the full record and the last status are logged
//     and an ErrCodeFailedToSend error carrying the status is returned.
//  4. A transport failure (connection refused, DNS, TLS, timeout) aborts at once
//     with ErrCodeTransport, whatever budget remains.
//
// The asymmetry in rule 4 is intentional: a persistent 5xx is retried but a
// dropped connection is not.
//
// Failures are reported through slog, never through the sink itself, so a broken
// endpoint cannot trigger recursive log shipping.
//
// # Metrics
//
//   - errorsink_delivery_attempts_total{outcome}: created, rejected, transport_error
//   - errorsink_delivery_results_total{result}: delivered, failed, transport_error, encode_error
//   - errorsink_delivery_duration_seconds: wall time of Send including retries
package delivery
