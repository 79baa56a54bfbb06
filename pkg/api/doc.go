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

// Package api is the entry point of the errsinkd ingestion daemon.
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// Serve configures structured logging with the daemon name and build version,
// reads its settings from the environment and hands the lifecycle to
// pkg/server.
//
// Environment:
//   - PORT: listen port (default 8080)
//   - ERRORSINK_TOKEN: Authentication value required on POST /errors
//   - ERRORSINK_FAIL_FIRST: answer 503 to this many ingests first
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown bound
//   - LOG_LEVEL: debug, info, warn, error
package api
