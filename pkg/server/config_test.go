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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/errorsink/pkg/defaults"
)

func TestParseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := parseConfig()

		assert.Equal(t, name, cfg.Name)
		assert.Empty(t, cfg.Address)
		assert.Equal(t, 8080, cfg.Port)
		assert.Empty(t, cfg.Token)
		assert.Zero(t, cfg.FailFirst)
		assert.InDelta(t, 100, float64(cfg.RateLimit), 0.001)
		assert.Equal(t, 200, cfg.RateLimitBurst)
		assert.Equal(t, int64(defaults.ServerMaxBodyBytes), cfg.MaxBodyBytes)
		assert.Equal(t, defaults.ServerReadTimeout, cfg.ReadTimeout)
		assert.Equal(t, defaults.ServerShutdownTimeout, cfg.ShutdownTimeout)
	})

	tests := []struct {
		name         string
		env          map[string]string
		wantPort     int
		wantShutdown time.Duration
	}{
		{
			name:         "port from environment",
			env:          map[string]string{"PORT": "9090"},
			wantPort:     9090,
			wantShutdown: defaults.ServerShutdownTimeout,
		},
		{
			name:         "invalid port keeps default",
			env:          map[string]string{"PORT": "invalid"},
			wantPort:     8080,
			wantShutdown: defaults.ServerShutdownTimeout,
		},
		{
			name:         "shutdown timeout from environment",
			env:          map[string]string{"SHUTDOWN_TIMEOUT_SECONDS": "5"},
			wantPort:     8080,
			wantShutdown: 5 * time.Second,
		},
		{
			name:         "non-positive shutdown timeout ignored",
			env:          map[string]string{"SHUTDOWN_TIMEOUT_SECONDS": "0"},
			wantPort:     8080,
			wantShutdown: defaults.ServerShutdownTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := parseConfig()
			assert.Equal(t, tt.wantPort, cfg.Port)
			assert.Equal(t, tt.wantShutdown, cfg.ShutdownTimeout)
		})
	}
}

func TestOptions(t *testing.T) {
	s := New(
		WithName("n"),
		WithVersion("v"),
		WithAddress("127.0.0.1"),
		WithPort(9191),
		WithToken("tok"),
		WithFailFirst(3),
		WithRateLimit(5, 6),
	)

	assert.Equal(t, "n", s.config.Name)
	assert.Equal(t, "v", s.config.Version)
	assert.Equal(t, "127.0.0.1:9191", s.Addr())
	assert.Equal(t, "tok", s.config.Token)
	assert.Equal(t, 3, s.config.FailFirst)
	assert.Equal(t, 6, s.rateLimiter.Burst())
}
