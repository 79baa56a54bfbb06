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

package server

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/errorsink/pkg/errors"
	"github.com/NVIDIA/errorsink/pkg/serializer"
)

// ErrorResponse is the body of every non-2xx response from ingest routes.
type ErrorResponse struct {
	Code      errors.ErrorCode `json:"code"`
	Message   string           `json:"message"`
	Details   map[string]any   `json:"details,omitempty"`
	RequestID string           `json:"requestId"`
	Timestamp time.Time        `json:"timestamp"`
	Retryable bool             `json:"retryable"`
}

// WriteError writes an ErrorResponse carrying the request ID.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code errors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// writeStructuredError maps a StructuredError to a response, exposing its
// context as details.
func writeStructuredError(w http.ResponseWriter, r *http.Request, statusCode int, err error) {
	var se *errors.StructuredError
	if !stderrors.As(err, &se) {
		WriteError(w, r, statusCode, errors.ErrCodeInvalidRequest, err.Error(), false, nil)
		return
	}

	details := make(map[string]any, len(se.Context)+1)
	for k, v := range se.Context {
		details[k] = v
	}
	if se.Cause != nil {
		details["cause"] = se.Cause.Error()
	}
	WriteError(w, r, statusCode, se.Code, se.Message, false, details)
}
