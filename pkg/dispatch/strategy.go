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

package dispatch

import (
	"strings"

	"github.com/NVIDIA/errorsink/pkg/errors"
)

// Strategy selects how Submit runs the delivery protocol.
type Strategy string

const (
	// StrategyTask queues records for a pool of workers.
	StrategyTask Strategy = "task"
	// StrategyFuture returns a lazy Future the caller drives with Await.
	StrategyFuture Strategy = "future"
	// StrategyBlocking delivers on the calling goroutine.
	StrategyBlocking Strategy = "blocking"
	// StrategyThread delivers on a new goroutine locked to its own OS thread.
	StrategyThread Strategy = "thread"
)

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = StrategyTask

// String returns the string representation of the Strategy.
func (s Strategy) String() string {
	return string(s)
}

// IsValid checks if the Strategy is one of the supported strategies.
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyTask, StrategyFuture, StrategyBlocking, StrategyThread:
		return true
	default:
		return false
	}
}

// SupportedStrategies returns the names of all supported strategies.
func SupportedStrategies() []string {
	return []string{
		StrategyTask.String(),
		StrategyFuture.String(),
		StrategyBlocking.String(),
		StrategyThread.String(),
	}
}

// ParseStrategy resolves a strategy name case-insensitively. An empty name
// yields DefaultStrategy.
func ParseStrategy(s string) (Strategy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultStrategy, nil
	}
	st := Strategy(s)
	if !st.IsValid() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"unknown dispatch strategy", map[string]any{
				"strategy":  s,
				"supported": SupportedStrategies(),
			})
	}
	return st, nil
}
