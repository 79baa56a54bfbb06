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
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/errorsink/pkg/config"
	"github.com/NVIDIA/errorsink/pkg/dispatch"
	"github.com/NVIDIA/errorsink/pkg/errors"
	"github.com/NVIDIA/errorsink/pkg/transport"
)

const notInitialized = "errorsink: sink.Init must be called before emitting records"

type state struct {
	client     *transport.Client
	dispatcher dispatch.Dispatcher
}

var current atomic.Pointer[state]

// Option configures Init.
type Option func(*options)

type options struct {
	strategy      dispatch.Strategy
	transportOpts []transport.Option
	dispatchOpts  []dispatch.Option
}

// WithStrategy selects the dispatch strategy. Defaults to dispatch.DefaultStrategy.
func WithStrategy(s dispatch.Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithTimeout sets the per-request transport timeout.
func WithTimeout(d time.Duration) Option {
	return WithTransportOptions(transport.WithTimeout(d))
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	if ua == "" {
		return func(*options) {}
	}
	return WithTransportOptions(transport.WithUserAgent(ua))
}

// WithWorkers sets the task strategy worker count.
func WithWorkers(n int) Option {
	return WithDispatchOptions(dispatch.WithWorkers(n))
}

// WithQueueSize sets the task strategy queue capacity.
func WithQueueSize(n int) Option {
	return WithDispatchOptions(dispatch.WithQueueSize(n))
}

// WithRateLimit throttles emits to limit records per second with the given burst.
func WithRateLimit(limit float64, burst int) Option {
	return WithDispatchOptions(dispatch.WithRateLimit(rate.Limit(limit), burst))
}

// WithTransportOptions passes options through to transport.New.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *options) {
		o.transportOpts = append(o.transportOpts, opts...)
	}
}

// WithDispatchOptions passes options through to dispatch.New.
func WithDispatchOptions(opts ...dispatch.Option) Option {
	return func(o *options) {
		o.dispatchOpts = append(o.dispatchOpts, opts...)
	}
}

// Init builds the transport client and dispatcher and installs them as the
// process-wide sink. Only the first successful call installs anything; later
// calls return ErrCodeAlreadyInitialized and leave the installed sink untouched.
//
// Construction errors map to ErrCodeInvalidToken (token not usable as a header
// value), ErrCodeBaseURLInvalid (malformed base URL) and ErrCodeUnspecified
// (anything else, with the cause attached).
func Init(baseURL, token string, opts ...Option) error {
	o := &options{strategy: dispatch.DefaultStrategy}
	for _, opt := range opts {
		opt(o)
	}

	client, err := transport.New(token, baseURL, o.transportOpts...)
	if err != nil {
		return initError(err)
	}

	d, err := dispatch.New(o.strategy, client, o.dispatchOpts...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnspecified, err.Error(), err)
	}

	if !current.CompareAndSwap(nil, &state{client: client, dispatcher: d}) {
		_ = d.Close(context.Background())
		return errors.New(errors.ErrCodeAlreadyInitialized, "sink is already initialized")
	}

	slog.Debug("error sink initialized",
		"baseURL", client.BaseURL(),
		"strategy", d.Strategy().String(),
		"timeout", client.Timeout().String())

	return nil
}

// InitWithConfig is Init driven by a loaded configuration.
func InitWithConfig(cfg *config.Config) error {
	if cfg == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "config is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	strategy, err := dispatch.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}

	return Init(cfg.BaseURL, cfg.Token,
		WithStrategy(strategy),
		WithTimeout(cfg.Timeout),
		WithUserAgent(cfg.UserAgent),
		WithWorkers(cfg.Workers),
		WithQueueSize(cfg.QueueSize),
		WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)
}

func initError(err error) error {
	code, _ := errors.Code(err)
	switch code {
	case errors.ErrCodeInvalidHeaderValue:
		return errors.Wrap(errors.ErrCodeInvalidToken, "invalid token value", err)
	case errors.ErrCodeInvalidURL:
		return errors.Wrap(errors.ErrCodeBaseURLInvalid, "base url is invalid", err)
	default:
		return errors.Wrap(errors.ErrCodeUnspecified, err.Error(), err)
	}
}

// Initialized reports whether Init has succeeded.
func Initialized() bool {
	return current.Load() != nil
}

func mustLoad() *state {
	s := current.Load()
	if s == nil {
		panic(notInitialized)
	}
	return s
}

// Client returns the installed transport client. It panics before Init.
func Client() *transport.Client {
	return mustLoad().client
}

// Strategy returns the installed dispatch strategy. It panics before Init.
func Strategy() dispatch.Strategy {
	return mustLoad().dispatcher.Strategy()
}

// Flush waits for in-flight fire-and-forget deliveries, bounded by ctx. The
// sink stays usable afterwards. It is a no-op before Init.
func Flush(ctx context.Context) error {
	s := current.Load()
	if s == nil {
		return nil
	}
	return s.dispatcher.Wait(ctx)
}
