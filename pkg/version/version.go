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

// Package version holds build metadata injected with ldflags:
//
//	go build -ldflags "-X github.com/NVIDIA/errorsink/pkg/version.Version=v1.0.0 \
//	    -X github.com/NVIDIA/errorsink/pkg/version.Commit=$(git rev-parse HEAD)"
package version

import "fmt"

const (
	// Product is the name reported in the User-Agent of outbound requests.
	Product = "errorsink"

	versionDefault = "dev"
)

var (
	// Version is the release version. Overridden during build with ldflags.
	Version = versionDefault
	// Commit is the source revision. Overridden during build with ldflags.
	Commit = "unknown"
	// Date is the build date. Overridden during build with ldflags.
	Date = "unknown"
)

// UserAgent returns the default User-Agent value, e.g. "errorsink/v1.0.0".
func UserAgent() string {
	return fmt.Sprintf("%s/%s", Product, Version)
}

// String returns a one-line summary of the build metadata.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
