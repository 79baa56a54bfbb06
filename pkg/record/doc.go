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

// Package record defines the payload shipped to the ingestion endpoint.
//
// A Record carries exactly three values: a Severity label, a pre-formatted
// message, and an origin string identifying the call site. It serializes to a
// JSON object with exactly three keys:
//
//	{
//	    "error_level": "Error",
//	    "message": "disk quota exceeded",
//	    "stack_trace": "storage/writer.go:118"
//	}
//
// Records are immutable once constructed with New; fields are read through
// accessors. Caller produces the "dir/file.go:line" origin used by the
// per-severity helpers in package sink.
package record
