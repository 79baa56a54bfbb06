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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	reasonClosed      = "closed"
	reasonQueueFull   = "queue_full"
	reasonRateLimited = "rate_limited"
)

var (
	submittedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errorsink_dispatch_submitted_total",
			Help: "Total number of records submitted to the dispatcher",
		},
		[]string{"strategy"},
	)

	droppedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errorsink_dispatch_dropped_total",
			Help: "Total number of records dropped before delivery",
		},
		[]string{"strategy", "reason"},
	)

	queueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "errorsink_dispatch_queue_depth",
			Help: "Current number of records waiting in the task queue",
		},
	)
)
