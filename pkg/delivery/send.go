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

package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/NVIDIA/errorsink/pkg/defaults"
	"github.com/NVIDIA/errorsink/pkg/errors"
	"github.com/NVIDIA/errorsink/pkg/record"
)

// Poster sends an HTTP POST and returns the status code, or an error when no
// response was received. *transport.Client satisfies it.
type Poster interface {
	Post(ctx context.Context, path string, body []byte) (int, error)
}

// PosterFunc adapts a function to the Poster interface.
type PosterFunc func(ctx context.Context, path string, body []byte) (int, error)

// Post calls f.
func (f PosterFunc) Post(ctx context.Context, path string, body []byte) (int, error) {
	return f(ctx, path, body)
}

// Send delivers rec through p, retrying non-201 responses up to
// defaults.DeliveryMaxAttempts attempts in total. A record that fails
// Validate is never posted.
func Send(ctx context.Context, p Poster, rec record.Record) error {
	start := time.Now()
	defer func() {
		deliveryDuration.Observe(time.Since(start).Seconds())
	}()

	if err := rec.Validate(); err != nil {
		deliveryResults.WithLabelValues(resultInvalid).Inc()
		slog.Error("refusing to deliver invalid record",
			"record", rec.String(),
			"error", err)
		return err
	}

	body, err := json.Marshal(rec)
	if err != nil {
		deliveryResults.WithLabelValues(resultEncodeError).Inc()
		return errors.Wrap(errors.ErrCodeInternal, "failed to encode record", err)
	}

	for attempt := 1; ; attempt++ {
		status, err := p.Post(ctx, defaults.DeliveryPath, body)
		if err != nil {
			deliveryAttempts.WithLabelValues(outcomeTransportError).Inc()
			deliveryResults.WithLabelValues(resultTransportError).Inc()
			slog.Error("delivery transport failure",
				"error", err,
				"attempt", attempt)
			return errors.WrapWithContext(errors.ErrCodeTransport,
				"failed to send record", err, map[string]any{"attempt": attempt})
		}

		if status == http.StatusCreated {
			deliveryAttempts.WithLabelValues(outcomeCreated).Inc()
			deliveryResults.WithLabelValues(resultDelivered).Inc()
			return nil
		}

		deliveryAttempts.WithLabelValues(outcomeRejected).Inc()

		if attempt < defaults.DeliveryMaxAttempts {
			slog.Warn("delivery attempt rejected",
				"status", status,
				"attempt", attempt,
				"maxAttempts", defaults.DeliveryMaxAttempts)
			continue
		}

		deliveryResults.WithLabelValues(resultFailed).Inc()
		slog.Error("delivery failed, retry budget exhausted",
			"record", rec.String(),
			"status", status,
			"attempts", attempt)
		return errors.NewWithContext(errors.ErrCodeFailedToSend,
			fmt.Sprintf("failed to send request with status code %d", status),
			map[string]any{
				errors.StatusKey: status,
				"attempts":       attempt,
			})
	}
}
