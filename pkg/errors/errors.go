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

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeUnauthorized indicates authentication or authorization failure.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeTimeout indicates an operation exceeded its time limit.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
	// ErrCodeInvalidRequest indicates malformed or invalid input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeRateLimitExceeded indicates the client exceeded an enforced request limit.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeMethodNotAllowed indicates the HTTP method is not allowed for the resource.
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	// ErrCodeUnavailable indicates a service or resource is temporarily unavailable.
	ErrCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// Transport client construction failures. Neither is retryable.
const (
	// ErrCodeInvalidHeaderValue indicates the token or another configured value
	// is not legal in an HTTP header.
	ErrCodeInvalidHeaderValue ErrorCode = "INVALID_HEADER_VALUE"
	// ErrCodeClientCreation indicates the underlying HTTP transport could not be built.
	ErrCodeClientCreation ErrorCode = "CLIENT_CREATION"
	// ErrCodeInvalidURL indicates the configured base URL cannot address an endpoint.
	ErrCodeInvalidURL ErrorCode = "INVALID_URL"
)

// Delivery failures.
const (
	// ErrCodeTransport indicates a network-level failure during a send. It is
	// terminal for the record and never retried.
	ErrCodeTransport ErrorCode = "TRANSPORT"
	// ErrCodeFailedToSend indicates the retry budget was exhausted against
	// non-201 responses. The last status is kept in Context["status"].
	ErrCodeFailedToSend ErrorCode = "FAILED_TO_SEND"
)

// Initialization failures reported by the process singleton.
const (
	// ErrCodeAlreadyInitialized indicates the singleton slot is already occupied.
	ErrCodeAlreadyInitialized ErrorCode = "ALREADY_INITIALIZED"
	// ErrCodeBaseURLInvalid indicates the base URL passed to Init was rejected.
	ErrCodeBaseURLInvalid ErrorCode = "BASE_URL_INVALID"
	// ErrCodeInvalidToken indicates the token passed to Init is not a legal header value.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeUnspecified wraps any other construction failure seen during Init.
	ErrCodeUnspecified ErrorCode = "UNSPECIFIED"
)

// StatusKey is the Context key holding the HTTP status of a failed delivery.
const StatusKey = "status"

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// Code returns the code of the outermost StructuredError in err's chain.
// The second return value is false when err carries no StructuredError.
func Code(err error) (ErrorCode, bool) {
	var se *StructuredError
	if !stderrors.As(err, &se) {
		return "", false
	}
	return se.Code, true
}

// IsCode reports whether the outermost StructuredError in err's chain has the given code.
func IsCode(err error, code ErrorCode) bool {
	c, ok := Code(err)
	return ok && c == code
}

// StatusCode returns the HTTP status recorded on a delivery failure.
func StatusCode(err error) (int, bool) {
	var se *StructuredError
	if !stderrors.As(err, &se) || se.Context == nil {
		return 0, false
	}
	status, ok := se.Context[StatusKey].(int)
	return status, ok
}
