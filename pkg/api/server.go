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

package api

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/NVIDIA/errorsink/pkg/config"
	"github.com/NVIDIA/errorsink/pkg/errors"
	"github.com/NVIDIA/errorsink/pkg/logging"
	"github.com/NVIDIA/errorsink/pkg/server"
	"github.com/NVIDIA/errorsink/pkg/version"
)

const (
	name = "errsinkd"

	// EnvFailFirst sets server.WithFailFirst.
	EnvFailFirst = "ERRORSINK_FAIL_FIRST"
)

// Serve runs the daemon until SIGINT or SIGTERM.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version.Version)
	slog.Info("starting",
		"name", name,
		"version", version.Version,
		"commit", version.Commit,
		"date", version.Date,
	)

	s, err := newServer()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return err
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

func newServer() (*server.Server, error) {
	opts := []server.Option{
		server.WithName(name),
		server.WithVersion(version.Version),
		server.WithToken(os.Getenv(config.EnvToken)),
		server.WithReadyHook(notifyServiceManager),
	}

	if v := os.Getenv(EnvFailFirst); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"invalid value for "+EnvFailFirst, map[string]any{"value": v})
		}
		opts = append(opts, server.WithFailFirst(n))
	}

	return server.New(opts...), nil
}

// notifyServiceManager reports readiness to systemd when NOTIFY_SOCKET is set.
func notifyServiceManager(ready bool) {
	state := daemon.SdNotifyReady
	if !ready {
		state = daemon.SdNotifyStopping
	}
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		slog.Warn("failed to notify service manager", "state", state, "error", err)
		return
	}
	if sent {
		slog.Debug("notified service manager", "state", state)
	}
}
