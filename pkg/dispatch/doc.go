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

// Package dispatch hands records to the delivery protocol using one of four
// concurrency strategies, chosen at startup:
//
//   - task: a bounded queue drained by a fixed pool of workers. Submit never
//     blocks; a full queue drops the record. Results are logged and discarded.
//   - future: Submit returns a lazy Future. Nothing is sent until the caller
//     calls Await, which returns the delivery result.
//   - blocking: Submit runs the delivery to completion on the calling goroutine.
//     The result is logged and discarded.
//   - thread: every Submit starts a goroutine pinned to its own OS thread that
//     runs the blocking path. Results are logged and discarded.
//
// Every strategy returns a *Future. For the fire-and-forget strategies it is
// already resolved with a nil error, since their result never reaches the caller.
//
// No ordering is guaranteed between records submitted concurrently, or between
// records submitted in sequence under the task and thread strategies.
//
// Usage:
//
//	d, err := dispatch.New(dispatch.StrategyTask, client,
//	    dispatch.WithWorkers(8),
//	    dispatch.WithRateLimit(100, 200))
//	if err != nil {
//	    return err
//	}
//	defer d.Close(context.Background())
//
//	d.Submit(ctx, record.New(record.SeverityError, "disk full", record.Caller(0)))
package dispatch
