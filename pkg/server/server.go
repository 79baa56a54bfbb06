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
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/errorsink/pkg/record"
)

const name = "errsink-receiver"

// Option configures a Server.
type Option func(*Config)

// WithName sets the name reported by the root route.
func WithName(n string) Option {
	return func(c *Config) { c.Name = n }
}

// WithVersion sets the version reported by the root route.
func WithVersion(v string) Option {
	return func(c *Config) { c.Version = v }
}

// WithHandler registers additional routes.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(c *Config) {
		if c.Handlers == nil {
			c.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for path, h := range handlers {
			c.Handlers[path] = h
		}
	}
}

// WithAddress sets the listen address.
func WithAddress(addr string) Option {
	return func(c *Config) { c.Address = addr }
}

// WithPort sets the listen port. Zero picks a free port.
func WithPort(port int) Option {
	return func(c *Config) { c.Port = port }
}

// WithToken sets the Authentication value ingests must present.
func WithToken(token string) Option {
	return func(c *Config) { c.Token = token }
}

// WithFailFirst makes the first n authorized ingests fail with 503.
func WithFailFirst(n int) Option {
	return func(c *Config) { c.FailFirst = n }
}

// WithRecordHandler replaces the default log-only record handler.
func WithRecordHandler(h RecordHandler) Option {
	return func(c *Config) { c.OnRecord = h }
}

// WithReadyHook registers f to observe readiness changes.
func WithReadyHook(f func(ready bool)) Option {
	return func(c *Config) { c.OnReady = f }
}

// WithRateLimit sets the ingest rate limit.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Config) {
		c.RateLimit = limit
		c.RateLimitBurst = burst
	}
}

// Server is the ingestion receiver.
type Server struct {
	config      *Config
	httpServer  *http.Server
	handler     http.Handler
	rateLimiter *rate.Limiter
	mu          sync.RWMutex
	ready       bool
	ingests     atomic.Int64
}

// New returns a Server built from NewConfig plus opts.
func New(opts ...Option) *Server {
	cfg := NewConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return NewServer(cfg)
}

// NewServer returns a Server for config. A nil config uses NewConfig.
func NewServer(config *Config) *Server {
	if config == nil {
		config = NewConfig()
	}
	if config.OnRecord == nil {
		config.OnRecord = logRecord
	}

	s := &Server{
		config:      config,
		rateLimiter: rate.NewLimiter(config.RateLimit, config.RateLimitBurst),
	}

	s.handler = s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Address, config.Port),
		Handler:           s.handler,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
	}

	return s
}

// Handler returns the routed handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// SetReady sets the readiness state reported by /ready. OnReady is called only
// when the state changes.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	changed := s.ready != ready
	s.ready = ready
	s.mu.Unlock()

	if changed && s.config.OnReady != nil {
		s.config.OnReady(ready)
	}
}

func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.SetReady(true)
	slog.Info("receiver listening", "address", ln.Addr().String())

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.SetReady(false)
		return err
	}
}

// Shutdown stops accepting connections and waits for in-flight requests,
// bounded by the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down receiver")
	return s.httpServer.Shutdown(shutdownCtx)
}

// Run serves until ctx is done or SIGINT/SIGTERM is received.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("starting receiver",
		slog.String("name", s.config.Name),
		slog.String("version", s.config.Version),
		slog.String("address", s.httpServer.Addr),
		slog.Bool("auth", s.config.Token != ""),
		slog.Int("failFirst", s.config.FailFirst),
		slog.Any("rateLimit", s.config.RateLimit),
		slog.Int("rateLimitBurst", s.config.RateLimitBurst),
		slog.Duration("shutdownTimeout", s.config.ShutdownTimeout),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("receiver stopped gracefully")
	return nil
}

func logRecord(ctx context.Context, rec record.Record) {
	slog.InfoContext(ctx, "record received",
		"requestID", RequestID(ctx),
		"severity", rec.Severity().String(),
		"message", rec.Message(),
		"origin", rec.Origin())
}
