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

// Package config loads errorsink client settings from a YAML file and the
// environment.
//
// Resolution order, lowest to highest precedence:
//
//  1. defaults from pkg/defaults
//  2. the YAML file passed to Load (optional)
//  3. ERRORSINK_* environment variables
//
// CLI flags are applied on top by pkg/cli.
//
// Example file:
//
//	baseURL: https://errors.example.com/api
//	token: s3cret
//	timeout: 10s
//	strategy: task
//	workers: 4
//	queueSize: 1024
//	rateLimit: 50
//	rateBurst: 100
//	logLevel: info
package config
