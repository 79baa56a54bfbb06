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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/errorsink/pkg/config"
	"github.com/NVIDIA/errorsink/pkg/logging"
	"github.com/NVIDIA/errorsink/pkg/serializer"
	"github.com/NVIDIA/errorsink/pkg/version"
)

const name = "errsink"

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML config file",
		Sources: cli.EnvVars("ERRORSINK_CONFIG"),
	}

	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		Value:   "info",
		Sources: cli.EnvVars(logging.EnvLogLevel),
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Output format (supported values: %s)", serializer.SupportedFormats()),
		Value:   string(serializer.FormatJSON),
	}
)

// Execute runs the CLI with os.Args and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               version.String(),
		EnableShellCompletion: true,
		Usage:                 "errorsink - remote error logging client",
		Description: `Ship error records to an errorsink ingestion endpoint, or run a local
receiver to test clients against.`,
		Flags: []cli.Flag{
			configFlag,
			logLevelFlag,
		},
		Before:        initLogger,
		ShellComplete: commandLister,
		Commands: []*cli.Command{
			sendCmd(),
			receiveCmd(),
		},
	}
}

// initLogger configures slog after flags are parsed so --log-level applies to
// every command.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := cmd.String("log-level")
	logging.SetDefaultStructuredLoggerWithLevel(name, version.Version, level)
	slog.Debug("starting",
		"name", name,
		"version", version.Version,
		"commit", version.Commit,
		"date", version.Date,
		"logLevel", level)
	return ctx, nil
}

// commandLister prints the visible subcommands for shell completion.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintln(w, c.Name)
	}
}

// loadConfig reads --config and the environment.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	return serializer.ParseFormat(cmd.String("format"))
}
