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

package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/errorsink/pkg/errors"
)

// RespondJSON writes data as JSON with the given status code. The body is
// encoded before any header is written so an encoding failure yields a clean 500.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

// DecodeJSON decodes a single JSON value from the request body into v, reading
// at most maxBytes. Trailing data after the value is rejected.
func DecodeJSON(r *http.Request, maxBytes int64, v any) error {
	if r.Body == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "request body is empty")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBytes+1))
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeInvalidRequest, "request body is empty")
		}
		return errors.Wrap(errors.ErrCodeInvalidRequest, "malformed JSON body", err)
	}
	if dec.InputOffset() > maxBytes {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"request body too large", map[string]any{"maxBytes": maxBytes})
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unexpected data after JSON value at offset %d", dec.InputOffset()))
	}
	return nil
}
