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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeCreated        = "created"
	outcomeRejected       = "rejected"
	outcomeTransportError = "transport_error"

	resultDelivered      = "delivered"
	resultFailed         = "failed"
	resultTransportError = "transport_error"
	resultEncodeError    = "encode_error"
	resultInvalid        = "invalid"
)

var (
	// Per-POST outcomes
	deliveryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errorsink_delivery_attempts_total",
			Help: "Total number of delivery POST attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Per-record terminal results
	deliveryResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errorsink_delivery_results_total",
			Help: "Total number of records by terminal delivery result",
		},
		[]string{"result"},
	)

	deliveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "errorsink_delivery_duration_seconds",
			Help:    "Wall time to deliver one record, retries included",
			Buckets: prometheus.DefBuckets,
		},
	)
)
