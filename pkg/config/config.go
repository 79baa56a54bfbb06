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

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/errorsink/pkg/defaults"
	"github.com/NVIDIA/errorsink/pkg/dispatch"
	"github.com/NVIDIA/errorsink/pkg/errors"
	"github.com/NVIDIA/errorsink/pkg/logging"
)

// Environment variables read by Load.
const (
	EnvBaseURL   = "ERRORSINK_URL"
	EnvToken     = "ERRORSINK_TOKEN"
	EnvTimeout   = "ERRORSINK_TIMEOUT"
	EnvStrategy  = "ERRORSINK_STRATEGY"
	EnvWorkers   = "ERRORSINK_WORKERS"
	EnvQueueSize = "ERRORSINK_QUEUE_SIZE"
	EnvRateLimit = "ERRORSINK_RATE_LIMIT"
	EnvRateBurst = "ERRORSINK_RATE_BURST"
	EnvUserAgent = "ERRORSINK_USER_AGENT"
	EnvLogLevel  = "ERRORSINK_LOG_LEVEL"
)

// Config holds client configuration.
type Config struct {
	// Endpoint
	BaseURL string `yaml:"baseURL"`
	Token   string `yaml:"token"`

	// Transport
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"userAgent,omitempty"`

	// Dispatch
	Strategy  string  `yaml:"strategy"`
	Workers   int     `yaml:"workers"`
	QueueSize int     `yaml:"queueSize"`
	RateLimit float64 `yaml:"rateLimit"` // records per second, 0 disables
	RateBurst int     `yaml:"rateBurst"`

	LogLevel string `yaml:"logLevel"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Timeout:   defaults.HTTPClientTimeout,
		Strategy:  dispatch.DefaultStrategy.String(),
		Workers:   defaults.DispatchWorkers,
		QueueSize: defaults.DispatchQueueSize,
		LogLevel:  "info",
	}
}

// Load returns defaults overlaid with the YAML file at path (skipped when path
// is empty) and then with environment overrides. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := New()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNotFound,
				fmt.Sprintf("failed to read config file %s", path), err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to parse config", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setString(EnvBaseURL, &c.BaseURL)
	setString(EnvToken, &c.Token)
	setString(EnvStrategy, &c.Strategy)
	setString(EnvUserAgent, &c.UserAgent)
	setString(EnvLogLevel, &c.LogLevel)

	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return envError(EnvTimeout, v, err)
		}
		c.Timeout = d
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvWorkers, &c.Workers},
		{EnvQueueSize, &c.QueueSize},
		{EnvRateBurst, &c.RateBurst},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(e.key, v, err)
		}
		*e.dst = n
	}

	if v := os.Getenv(EnvRateLimit); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError(EnvRateLimit, v, err)
		}
		c.RateLimit = f
	}

	return nil
}

// parseTimeout accepts a Go duration ("10s") or a bare number of milliseconds.
func parseTimeout(v string) (time.Duration, error) {
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(v)
}

func envError(key, value string, cause error) error {
	return errors.WrapWithContext(errors.ErrCodeInvalidRequest,
		fmt.Sprintf("invalid value for %s", key), cause,
		map[string]any{"value": value})
}

// Validate checks that the configuration can initialize a sink. An empty token
// is accepted, matching sink.Init; the header is then sent with an empty value.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "baseURL is required")
	}
	if c.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "timeout must not be negative")
	}
	if _, err := dispatch.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if c.Workers < 0 || c.QueueSize < 0 || c.RateBurst < 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"workers, queueSize and rateBurst must not be negative", map[string]any{
				"workers":   c.Workers,
				"queueSize": c.QueueSize,
				"rateBurst": c.RateBurst,
			})
	}
	if c.RateLimit < 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "rateLimit must not be negative")
	}
	return nil
}

// Level returns the configured log level as understood by pkg/logging.
func (c *Config) Level() string {
	return strings.ToLower(logging.ParseLogLevel(c.LogLevel).String())
}
