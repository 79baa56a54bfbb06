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

package sink

import (
	"context"
	"fmt"

	"github.com/NVIDIA/errorsink/pkg/dispatch"
	"github.com/NVIDIA/errorsink/pkg/record"
)

// Emit sends a record with an explicit origin.
func Emit(severity record.Severity, message, origin string) *dispatch.Future {
	s := mustLoad()
	return s.dispatcher.Submit(context.Background(), record.New(severity, message, origin))
}

// Severe emits a record at SeveritySevere.
func Severe(format string, args ...any) *dispatch.Future {
	return emitf(record.SeveritySevere, format, args)
}

// Error emits a record at SeverityError.
func Error(format string, args ...any) *dispatch.Future {
	return emitf(record.SeverityError, format, args)
}

// Warning emits a record at SeverityWarning.
func Warning(format string, args ...any) *dispatch.Future {
	return emitf(record.SeverityWarning, format, args)
}

// Info emits a record at SeverityInfo.
func Info(format string, args ...any) *dispatch.Future {
	return emitf(record.SeverityInfo, format, args)
}

// Verbose emits a record at SeverityVerbose.
func Verbose(format string, args ...any) *dispatch.Future {
	return emitf(record.SeverityVerbose, format, args)
}

// Debug emits a record at SeverityDebug.
func Debug(format string, args ...any) *dispatch.Future {
	return emitf(record.SeverityDebug, format, args)
}

// emitf must be called directly from an exported emit function so the origin
// points at that function's caller.
func emitf(severity record.Severity, format string, args []any) *dispatch.Future {
	s := mustLoad()

	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}

	rec := record.New(severity, message, record.Caller(2))
	return s.dispatcher.Submit(context.Background(), rec)
}
