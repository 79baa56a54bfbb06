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

// Package cli implements the errsink command line.
//
// # Commands
//
// send - Ship one record to an ingestion endpoint:
//
//	errsink send --url https://errors.example.com/api --token $TOKEN \
//	    --level error --message "disk full" --origin worker.go:42
//
// The record goes through the process sink with the selected dispatch
// strategy. With the default future strategy the command waits for the
// delivery result and exits non-zero when the retry budget is exhausted or the
// endpoint is unreachable. Fire-and-forget strategies are flushed before exit
// and always report "submitted".
//
// receive - Run a local ingestion receiver:
//
//	errsink receive --port 8080 --token $TOKEN --fail-first 2 --format table
//
// Accepts POST /errors, checks the Authentication header and prints every
// accepted record. --fail-first answers 503 to the first N ingests so client
// retries can be observed.
//
// # Global Flags
//
//	--config     YAML config file (see pkg/config)
//	--log-level  debug, info, warn, error (default: info)
//
// # Precedence
//
// Flags override ERRORSINK_* environment variables, which override the config
// file, which overrides built-in defaults.
package cli
