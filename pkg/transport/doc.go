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

// Package transport provides the authenticated HTTP client used to ship records.
//
// A Client is bound to one base URL and one token. Construction validates the
// token as an HTTP header value, builds the underlying *http.Client and performs
// no network I/O. Every request carries:
//
//	Content-Type: application/json
//	Authentication: <token>
//	User-Agent: errorsink/<version>
//
// The Client is read-only after New returns and is safe for concurrent use.
//
// Usage:
//
//	c, err := transport.New(token, "https://logs.example.com",
//	    transport.WithTimeout(10*time.Second))
//	if err != nil {
//	    return err
//	}
//	status, err := c.Post(ctx, "/errors", body)
package transport
