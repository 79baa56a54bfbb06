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

// Package sink holds the process-wide error sink and the per-severity emit
// functions.
//
// The sink is initialized exactly once per process:
//
//	if err := sink.Init("https://errors.example.com/api", token); err != nil {
//	    return err
//	}
//
//	sink.Error("failed to open %s: %v", path, err)
//
// Each emit function captures its call site as the record origin ("dir/file.go:line")
// and hands the record to the configured dispatch strategy. The returned Future
// resolves immediately for fire-and-forget strategies; with the future strategy
// nothing is sent until Await is called.
//
// Calling an emit function before Init panics.
//
// Delivery failures are reported through log/slog and never re-enter the sink.
package sink
