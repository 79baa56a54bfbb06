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
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/errorsink/pkg/errors"
)

// Severity is the textual level label attached to a Record.
type Severity string

// The six supported severities, most to least severe.
const (
	SeveritySevere  Severity = "Severe"
	SeverityError   Severity = "Error"
	SeverityWarning Severity = "Warning"
	SeverityInfo    Severity = "Info"
	SeverityVerbose Severity = "Verbose"
	SeverityDebug   Severity = "Debug"
)

// String returns the label sent on the wire.
func (s Severity) String() string {
	return string(s)
}

// IsValid checks if the Severity is one of the six supported labels.
func (s Severity) IsValid() bool {
	switch s {
	case SeveritySevere, SeverityError, SeverityWarning, SeverityInfo, SeverityVerbose, SeverityDebug:
		return true
	default:
		return false
	}
}

// SupportedSeverities returns all labels in descending order of severity.
func SupportedSeverities() []string {
	return []string{
		SeveritySevere.String(),
		SeverityError.String(),
		SeverityWarning.String(),
		SeverityInfo.String(),
		SeverityVerbose.String(),
		SeverityDebug.String(),
	}
}

// ParseSeverity resolves a label case-insensitively, so "error", "ERROR" and
// "Error" all yield SeverityError.
func ParseSeverity(s string) (Severity, error) {
	// Casers carry state and are not shared across goroutines.
	sev := Severity(cases.Title(language.English).String(strings.TrimSpace(s)))
	if !sev.IsValid() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"unknown severity", map[string]any{
				"severity":  s,
				"supported": SupportedSeverities(),
			})
	}
	return sev, nil
}
