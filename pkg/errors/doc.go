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

// Package errors provides structured error types for better observability
// and programmatic error handling across errorsink.
//
// Every failure the client can report carries an ErrorCode, so callers branch on
// the code rather than on message text:
//
//	if err := sink.Init(baseURL, token); err != nil {
//	    if errors.IsCode(err, errors.ErrCodeAlreadyInitialized) {
//	        // a previous Init already installed the client
//	    }
//	}
//
// Delivery failures that exhausted the retry budget keep the last HTTP status:
//
//	if status, ok := errors.StatusCode(err); ok {
//	    slog.Warn("ingestion rejected record", "status", status)
//	}
package errors
