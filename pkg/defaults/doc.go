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

// Package defaults provides centralized configuration constants for errorsink.
//
// This package defines timeout values, retry parameters, and other configuration
// defaults used across the codebase. Centralizing these values ensures consistency
// and makes tuning easier.
//
// # Categories
//
//   - HTTP client timeouts: For outbound log delivery requests
//   - Delivery parameters: Retry budget and ingestion path
//   - Dispatcher parameters: Worker pool and queue sizing
//   - Server timeouts: For the local ingestion receiver
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/errorsink/pkg/defaults"
//
//	client, err := transport.New(token, baseURL,
//	    transport.WithTimeout(defaults.HTTPClientTimeout))
//
// # Guidelines
//
//   - Delivery: 5 total attempts, immediate re-send, no backoff
//   - HTTP client: 30s total timeout per request
//   - Receiver shutdown: 30s for graceful shutdown
package defaults
