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
	"sync"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/errorsink/pkg/config"
	"github.com/NVIDIA/errorsink/pkg/header"
	"github.com/NVIDIA/errorsink/pkg/record"
	"github.com/NVIDIA/errorsink/pkg/serializer"
	"github.com/NVIDIA/errorsink/pkg/server"
	"github.com/NVIDIA/errorsink/pkg/version"
)

func receiveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "receive",
		EnableShellCompletion: true,
		Usage:                 "Run a local ingestion receiver",
		Description: `Run an HTTP receiver that accepts POST /errors like a production endpoint.

Every accepted record is printed in the selected format. Use --fail-first to
answer 503 to the first N ingests and watch clients retry.

Examples:
  errsink receive --port 8080 --token s3cret
  errsink receive --fail-first 2 --format table`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "Listen address",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port",
				Value:   8080,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Required Authentication value (empty accepts any)",
				Sources: cli.EnvVars(config.EnvToken),
			},
			&cli.IntFlag{
				Name:  "fail-first",
				Usage: "Answer 503 to this many ingests before accepting",
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "Ingest requests per second",
				Value: 100,
			},
			&cli.IntFlag{
				Name:  "rate-burst",
				Usage: "Ingest burst size",
				Value: 200,
			},
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseReceiveOptions(cmd)
			if err != nil {
				return err
			}
			return server.New(opts...).Run(ctx)
		},
	}
}

func parseReceiveOptions(cmd *cli.Command) ([]server.Option, error) {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return nil, err
	}

	port := cmd.Int("port")
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", port)
	}
	failFirst := cmd.Int("fail-first")
	if failFirst < 0 {
		return nil, fmt.Errorf("fail-first must not be negative: %d", failFirst)
	}

	return []server.Option{
		server.WithName(name + "-receiver"),
		server.WithVersion(version.Version),
		server.WithAddress(cmd.String("address")),
		server.WithPort(port),
		server.WithToken(cmd.String("token")),
		server.WithFailFirst(failFirst),
		server.WithRateLimit(rate.Limit(cmd.Float("rate-limit")), cmd.Int("rate-burst")),
		server.WithRecordHandler(newRecordPrinter(serializer.NewWriter(format, cmd.Root().Writer))),
	}, nil
}

// printedRecord is the document printed for each accepted record.
type printedRecord struct {
	header.Header
	Record record.Record `json:"record"`
}

// newRecordPrinter serializes accepted records one at a time.
func newRecordPrinter(w *serializer.Writer) server.RecordHandler {
	var mu sync.Mutex
	return func(ctx context.Context, rec record.Record) {
		doc := printedRecord{Record: rec}
		doc.Init(header.KindRecord, header.APIVersion, version.Version)
		if id := server.RequestID(ctx); id != "" {
			doc.Metadata["requestID"] = id
		}

		mu.Lock()
		defer mu.Unlock()
		if err := w.Serialize(doc); err != nil {
			slog.WarnContext(ctx, "failed to print record", "error", err)
		}
	}
}
