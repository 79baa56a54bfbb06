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
	"io"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/errorsink/pkg/config"
	"github.com/NVIDIA/errorsink/pkg/defaults"
	"github.com/NVIDIA/errorsink/pkg/dispatch"
	"github.com/NVIDIA/errorsink/pkg/errors"
	"github.com/NVIDIA/errorsink/pkg/header"
	"github.com/NVIDIA/errorsink/pkg/record"
	"github.com/NVIDIA/errorsink/pkg/serializer"
	"github.com/NVIDIA/errorsink/pkg/sink"
	"github.com/NVIDIA/errorsink/pkg/version"
)

const (
	resultDelivered = "delivered"
	resultFailed    = "failed"
	resultSubmitted = "submitted"
)

// sendOptions is the resolved input of the send command.
type sendOptions struct {
	cfg      *config.Config
	severity record.Severity
	message  string
	origin   string
	format   serializer.Format
}

// sendReport is printed after a send.
type sendReport struct {
	header.Header
	URL      string `json:"url"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Origin   string `json:"origin"`
	Strategy string `json:"strategy"`
	Result   string `json:"result"`
	Status   int    `json:"status,omitempty"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

func sendCmd() *cli.Command {
	return &cli.Command{
		Name:                  "send",
		EnableShellCompletion: true,
		Usage:                 "Send one error record to an ingestion endpoint",
		Description: `Send one record to {url}/errors, authenticated with the Authentication header.

Non-201 responses are retried up to 5 attempts in total. A network failure
ends the send immediately.

Examples:
  errsink send --url http://localhost:8080 --token s3cret --level error --message "disk full"
  errsink send --level warning --message "slow query" --origin db.go:88 --format table`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "Base URL of the ingestion endpoint",
				Sources: cli.EnvVars(config.EnvBaseURL),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Authentication token",
				Sources: cli.EnvVars(config.EnvToken),
			},
			&cli.StringFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Usage:   fmt.Sprintf("Severity (supported values: %s)", record.SupportedSeverities()),
				Value:   record.SeverityError.String(),
			},
			&cli.StringFlag{
				Name:     "message",
				Aliases:  []string{"m"},
				Usage:    "Message text",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "origin",
				Usage: "Origin locator sent as stack_trace (default: the errsink call site)",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Per-request timeout",
				Value:   defaults.HTTPClientTimeout,
				Sources: cli.EnvVars(config.EnvTimeout),
			},
			&cli.StringFlag{
				Name: "strategy",
				Usage: fmt.Sprintf("Dispatch strategy (supported values: %s); only future reports delivery errors",
					dispatch.SupportedStrategies()),
				Value: dispatch.StrategyFuture.String(),
			},
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseSendOptions(cmd)
			if err != nil {
				return err
			}
			return runSend(ctx, opts, cmd.Root().Writer)
		},
	}
}

func parseSendOptions(cmd *cli.Command) (*sendOptions, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("url") {
		cfg.BaseURL = cmd.String("url")
	}
	if cmd.IsSet("token") {
		cfg.Token = cmd.String("token")
	}
	if cmd.IsSet("timeout") {
		cfg.Timeout = cmd.Duration("timeout")
	}
	cfg.Strategy = cmd.String("strategy")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid send configuration: %w", err)
	}

	sev, err := record.ParseSeverity(cmd.String("level"))
	if err != nil {
		return nil, fmt.Errorf("invalid level: %w", err)
	}

	format, err := parseOutputFormat(cmd)
	if err != nil {
		return nil, err
	}

	origin := cmd.String("origin")
	if origin == "" {
		origin = record.Caller(0)
	}

	return &sendOptions{
		cfg:      cfg,
		severity: sev,
		message:  cmd.String("message"),
		origin:   origin,
		format:   format,
	}, nil
}

func runSend(ctx context.Context, opts *sendOptions, out io.Writer) error {
	if err := sink.InitWithConfig(opts.cfg); err != nil {
		return fmt.Errorf("failed to initialize sink: %w", err)
	}

	start := time.Now()
	sendErr := sink.Emit(opts.severity, opts.message, opts.origin).Await(ctx)
	flushErr := sink.Flush(ctx)

	report := sendReport{
		URL:      sink.Client().BaseURL() + defaults.DeliveryPath,
		Severity: opts.severity.String(),
		Message:  opts.message,
		Origin:   opts.origin,
		Strategy: sink.Strategy().String(),
		Result:   resultDelivered,
		Duration: time.Since(start).String(),
	}
	report.Init(header.KindSendReport, header.APIVersion, version.Version)

	switch {
	case sendErr != nil:
		report.Result = resultFailed
		report.Error = sendErr.Error()
		if status, ok := errors.StatusCode(sendErr); ok {
			report.Status = status
		}
	case sink.Strategy() != dispatch.StrategyFuture:
		report.Result = resultSubmitted
	}

	if err := serializer.NewWriter(opts.format, out).Serialize(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if sendErr != nil {
		return fmt.Errorf("delivery failed: %w", sendErr)
	}
	if flushErr != nil {
		return fmt.Errorf("failed to flush pending deliveries: %w", flushErr)
	}
	return nil
}
