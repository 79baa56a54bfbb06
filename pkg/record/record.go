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

package record

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"runtime"
	"unicode/utf8"

	"github.com/NVIDIA/errorsink/pkg/errors"
)

// Record is the immutable three-field payload shipped to the ingestion endpoint.
type Record struct {
	severity Severity
	message  string
	origin   string
}

// wire is the JSON shape of a Record. Pointers let decoding tell a missing or
// null key apart from an empty string.
type wire struct {
	ErrorLevel *string `json:"error_level"`
	Message    *string `json:"message"`
	StackTrace *string `json:"stack_trace"`
}

// New creates a Record.
func New(severity Severity, message, origin string) Record {
	return Record{
		severity: severity,
		message:  message,
		origin:   origin,
	}
}

// Severity returns the record's level label.
func (r Record) Severity() Severity { return r.severity }

// Message returns the caller-supplied message.
func (r Record) Message() string { return r.message }

// Origin returns the call-site locator.
func (r Record) Origin() string { return r.origin }

// Validate checks that the severity is one of the supported labels and that
// message and origin are valid UTF-8, so the JSON form round-trips exactly.
func (r Record) Validate() error {
	if !r.severity.IsValid() {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"unknown severity", map[string]any{
				"severity":  r.severity.String(),
				"supported": SupportedSeverities(),
			})
	}
	if !utf8.ValidString(r.message) {
		return errors.New(errors.ErrCodeInvalidRequest, "message is not valid UTF-8")
	}
	if !utf8.ValidString(r.origin) {
		return errors.New(errors.ErrCodeInvalidRequest, "origin is not valid UTF-8")
	}
	return nil
}

// MarshalJSON encodes the record with exactly the keys error_level, message
// and stack_trace.
func (r Record) MarshalJSON() ([]byte, error) {
	level := r.severity.String()
	return json.Marshal(wire{
		ErrorLevel: &level,
		Message:    &r.message,
		StackTrace: &r.origin,
	})
}

// UnmarshalJSON decodes a record, rejecting payloads where any of the three
// keys is missing or null.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var missing []string
	if w.ErrorLevel == nil {
		missing = append(missing, "error_level")
	}
	if w.Message == nil {
		missing = append(missing, "message")
	}
	if w.StackTrace == nil {
		missing = append(missing, "stack_trace")
	}
	if len(missing) > 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"record is missing required keys", map[string]any{"missing": missing})
	}

	*r = New(Severity(*w.ErrorLevel), *w.Message, *w.StackTrace)
	return nil
}

// String renders the record as JSON, falling back to a Go-syntax dump when
// encoding fails.
func (r Record) String() string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf("invalid record: %#v", r)
	}
	return string(b)
}

// Caller returns "dir/file.go:line" for the frame skip levels above the caller
// of Caller. Caller(0) locates the line that called Caller.
func Caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown:0"
	}
	short := filepath.Join(filepath.Base(filepath.Dir(file)), filepath.Base(file))
	return fmt.Sprintf("%s:%d", filepath.ToSlash(short), line)
}
