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
	"net/http"

	"github.com/NVIDIA/errorsink/pkg/defaults"
	"github.com/NVIDIA/errorsink/pkg/errors"
	"github.com/NVIDIA/errorsink/pkg/record"
	"github.com/NVIDIA/errorsink/pkg/serializer"
	"github.com/NVIDIA/errorsink/pkg/transport"
)

// IngestResponse is the body of a 201 from the ingest route.
type IngestResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"requestId"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method": r.Method,
			})
		return
	}

	if s.config.Token != "" && r.Header.Get(transport.HeaderAuthentication) != s.config.Token {
		ingestRejects.WithLabelValues(rejectUnauthorized).Inc()
		WriteError(w, r, http.StatusUnauthorized, errors.ErrCodeUnauthorized,
			"Invalid or missing authentication token", false, nil)
		return
	}

	if n := s.ingests.Add(1); n <= int64(s.config.FailFirst) {
		ingestRejects.WithLabelValues(rejectSimulated).Inc()
		w.Header().Set("Retry-After", "0")
		WriteError(w, r, http.StatusServiceUnavailable, errors.ErrCodeUnavailable,
			"Simulated outage", true, map[string]any{
				"ingest":    n,
				"failFirst": s.config.FailFirst,
			})
		return
	}

	maxBytes := s.config.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = defaults.ServerMaxBodyBytes
	}

	var rec record.Record
	if err := serializer.DecodeJSON(r, maxBytes, &rec); err != nil {
		ingestRejects.WithLabelValues(rejectMalformed).Inc()
		writeStructuredError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := rec.Validate(); err != nil {
		ingestRejects.WithLabelValues(rejectSeverity).Inc()
		writeStructuredError(w, r, http.StatusBadRequest, err)
		return
	}

	ingestedRecords.WithLabelValues(rec.Severity().String()).Inc()
	s.config.OnRecord(r.Context(), rec)

	serializer.RespondJSON(w, http.StatusCreated, IngestResponse{
		Status:    "accepted",
		RequestID: RequestID(r.Context()),
	})
}
