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
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/errorsink/pkg/record"
)

// taskDispatcher queues records for a fixed pool of workers.
type taskDispatcher struct {
	*base
	queue     chan record.Record
	group     *errgroup.Group
	cancel    context.CancelFunc
	closeOnce sync.Once
	closeErr  error
}

func newTaskDispatcher(b *base, workers, queueSize int) *taskDispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)

	d := &taskDispatcher{
		base:   b,
		queue:  make(chan record.Record, queueSize),
		group:  g,
		cancel: cancel,
	}

	for range workers {
		g.Go(func() error {
			d.work(gctx)
			return nil
		})
	}

	return d
}

func (d *taskDispatcher) work(ctx context.Context) {
	for {
		select {
		case rec := <-d.queue:
			queueDepth.Dec()
			d.deliver(ctx, rec)
			d.inflight.done()
		case <-ctx.Done():
			return
		}
	}
}

// Submit enqueues rec without blocking. A full queue drops the record.
func (d *taskDispatcher) Submit(_ context.Context, rec record.Record) *Future {
	if d.admit() != nil {
		return Resolved(nil)
	}
	if !d.inflight.add() {
		d.drop(reasonClosed)
		return Resolved(nil)
	}

	select {
	case d.queue <- rec:
		queueDepth.Inc()
	default:
		d.inflight.done()
		d.drop(reasonQueueFull)
	}

	return Resolved(nil)
}

// Close stops intake, drains the queue within ctx, then stops the workers.
// Deliveries still running when ctx expires are canceled.
func (d *taskDispatcher) Close(ctx context.Context) error {
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		d.inflight.close()

		d.closeErr = d.inflight.wait(ctx)

		d.cancel()
		_ = d.group.Wait()
	})
	return d.closeErr
}
