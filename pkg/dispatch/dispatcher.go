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
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/errorsink/pkg/defaults"
	"github.com/NVIDIA/errorsink/pkg/delivery"
	"github.com/NVIDIA/errorsink/pkg/errors"
	"github.com/NVIDIA/errorsink/pkg/record"
)

// Dispatcher submits records to the delivery protocol.
type Dispatcher interface {
	// Submit hands rec to the delivery protocol. It never returns nil.
	Submit(ctx context.Context, rec record.Record) *Future

	// Wait blocks until every fire-and-forget delivery started so far has
	// finished, or ctx is done.
	Wait(ctx context.Context) error

	// Close stops accepting records and waits for in-flight deliveries, bounded
	// by ctx. Records submitted after Close are dropped.
	Close(ctx context.Context) error

	// Strategy returns the configured strategy.
	Strategy() Strategy
}

// Option defines a configuration option for New.
type Option func(*options)

type options struct {
	workers   int
	queueSize int
	limiter   *rate.Limiter
}

// WithWorkers sets the task strategy's worker count. Non-positive values keep
// defaults.DispatchWorkers.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithQueueSize sets the task strategy's queue capacity. Non-positive values
// keep defaults.DispatchQueueSize.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithRateLimit drops records submitted faster than limit per second with the
// given burst. Submit never waits for a token. A non-positive limit disables
// throttling.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(o *options) {
		if limit <= 0 {
			o.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(limit, burst)
	}
}

// ErrClosed is returned by futures of records submitted after Close.
var ErrClosed = errors.New(errors.ErrCodeUnavailable, "dispatcher is closed")

// New creates a Dispatcher for the given strategy delivering through poster.
func New(strategy Strategy, poster delivery.Poster, opts ...Option) (Dispatcher, error) {
	if poster == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "poster is required")
	}

	o := &options{
		workers:   defaults.DispatchWorkers,
		queueSize: defaults.DispatchQueueSize,
	}
	for _, opt := range opts {
		opt(o)
	}

	b := &base{
		strategy: strategy,
		poster:   poster,
		limiter:  o.limiter,
		inflight: newTracker(),
	}

	switch strategy {
	case StrategyTask:
		return newTaskDispatcher(b, o.workers, o.queueSize), nil
	case StrategyFuture:
		return &futureDispatcher{base: b}, nil
	case StrategyBlocking:
		return &blockingDispatcher{base: b}, nil
	case StrategyThread:
		return &threadDispatcher{base: b}, nil
	default:
		_, err := ParseStrategy(string(strategy))
		return nil, err
	}
}

// base carries what every strategy shares.
type base struct {
	strategy Strategy
	poster   delivery.Poster
	limiter  *rate.Limiter
	inflight *tracker
	closed   atomic.Bool
}

func (b *base) Strategy() Strategy { return b.strategy }

// admit applies the closed check and the rate limit, recording drops.
func (b *base) admit() error {
	submittedRecords.WithLabelValues(b.strategy.String()).Inc()

	if b.closed.Load() {
		b.drop(reasonClosed)
		return ErrClosed
	}
	if b.limiter != nil && !b.limiter.Allow() {
		b.drop(reasonRateLimited)
		return errors.NewWithContext(errors.ErrCodeRateLimitExceeded,
			"emit rate limit exceeded", map[string]any{
				"limit": float64(b.limiter.Limit()),
				"burst": b.limiter.Burst(),
			})
	}
	return nil
}

func (b *base) drop(reason string) {
	droppedRecords.WithLabelValues(b.strategy.String(), reason).Inc()
	slog.Warn("record dropped",
		"strategy", b.strategy.String(),
		"reason", reason)
}

// deliver runs the protocol and discards the result. The protocol has already
// logged any failure.
func (b *base) deliver(ctx context.Context, rec record.Record) {
	if err := delivery.Send(ctx, b.poster, rec); err != nil {
		slog.Debug("delivery result discarded",
			"strategy", b.strategy.String(),
			"error", err)
	}
}

func (b *base) Wait(ctx context.Context) error {
	return b.inflight.wait(ctx)
}

// tracker counts in-flight deliveries. Unlike sync.WaitGroup it allows add and
// wait to race and lets wait honor a context.
type tracker struct {
	mu     sync.Mutex
	n      int
	idle   chan struct{}
	closed bool
}

func newTracker() *tracker {
	t := &tracker{idle: make(chan struct{})}
	close(t.idle)
	return t
}

// add registers one delivery. It fails once the tracker is closed.
func (t *tracker) add() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false
	}
	if t.n == 0 {
		t.idle = make(chan struct{})
	}
	t.n++
	return true
}

func (t *tracker) done() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n--
	if t.n == 0 {
		close(t.idle)
	}
}

func (t *tracker) close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

func (t *tracker) wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	t.mu.Lock()
	idle := t.idle
	t.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
