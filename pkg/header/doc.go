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

// Package header provides the envelope fields shared by errorsink reports.
//
// A Header carries Kind, APIVersion and a string metadata map. Commands embed
// it in the documents they print so JSON, YAML and table output all identify
// what they describe:
//
//	{
//	  "kind": "SendReport",
//	  "apiVersion": "errorsink.nvidia.com/v1",
//	  "metadata": {
//	    "timestamp": "2025-12-30T10:30:00Z",
//	    "version": "v1.0.0"
//	  }
//	}
//
// Create and initialize a header in one step:
//
//	h := header.New(header.WithKind(header.KindSendReport), header.WithAPIVersion(header.APIVersion))
//
// or stamp an embedded header with Init, which also records the timestamp:
//
//	report.Init(header.KindSendReport, header.APIVersion, version.Version)
package header
