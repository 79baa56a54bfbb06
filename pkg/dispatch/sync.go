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
	"runtime"

	"github.com/NVIDIA/errorsink/pkg/delivery"
	"github.com/NVIDIA/errorsink/pkg/record"
)

// blockingDispatcher delivers on the calling goroutine.
type blockingDispatcher struct {
	*base
}

func (d *blockingDispatcher) Submit(ctx context.Context, rec record.Record) *Future {
	if d.admit() != nil {
		return Resolved(nil)
	}
	if !d.inflight.add() {
		d.drop(reasonClosed)
		return Resolved(nil)
	}
	defer d.inflight.done()

	if ctx == nil {
		ctx = context.Background()
	}
	d.deliver(ctx, rec)
	return Resolved(nil)
}

func (d *blockingDispatcher) Close(ctx context.Context) error {
	d.closed.Store(true)
	d.inflight.close()
	return d.inflight.wait(ctx)
}

// threadDispatcher runs the blocking path on a dedicated OS thread per record.
type threadDispatcher struct {
	*base
}

func (d *threadDispatcher) Submit(ctx context.Context, rec record.Record) *Future {
	if d.admit() != nil {
		return Resolved(nil)
	}
	if !d.inflight.add() {
		d.drop(reasonClosed)
		return Resolved(nil)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	// The caller has moved on; its cancellation must not abort the send.
	ctx = context.WithoutCancel(ctx)

	go func() {
		defer d.inflight.done()
		// Never unlocked: the runtime retires the thread when the goroutine exits.
		runtime.LockOSThread()
		d.deliver(ctx, rec)
	}()

	return Resolved(nil)
}

func (d *threadDispatcher) Close(ctx context.Context) error {
	d.closed.Store(true)
	d.inflight.close()
	return d.inflight.wait(ctx)
}

// futureDispatcher defers delivery until the caller awaits it.
type futureDispatcher struct {
	*base
}

func (d *futureDispatcher) Submit(_ context.Context, rec record.Record) *Future {
	if err := d.admit(); err != nil {
		return Resolved(err)
	}
	return newFuture(func(ctx context.Context) error {
		return delivery.Send(ctx, d.poster, rec)
	})
}

func (d *futureDispatcher) Close(_ context.Context) error {
	d.closed.Store(true)
	return nil
}
