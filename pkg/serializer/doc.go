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

// Package serializer renders values for humans and HTTP peers.
//
// Three output formats are supported:
//   - json: indented JSON
//   - yaml: gopkg.in/yaml.v3 with two-space indent
//   - table: flattened FIELD/VALUE rows sorted by key
//
// The table and yaml forms are derived from the value's JSON encoding, so types
// with custom MarshalJSON (such as record.Record) render with their wire keys.
//
// For HTTP handlers:
//
//	serializer.RespondJSON(w, http.StatusCreated, resp)
//
//	var rec record.Record
//	if err := serializer.DecodeJSON(r, defaults.ServerMaxBodyBytes, &rec); err != nil {
//	    ...
//	}
package serializer
