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
)

// Future is the deferred result of a submitted record.
type Future struct {
	once sync.Once
	run  func(ctx context.Context) error
	done chan struct{}
	err  error
}

// newFuture returns a Future that runs fn on the first Await.
func newFuture(fn func(ctx context.Context) error) *Future {
	return &Future{
		run:  fn,
		done: make(chan struct{}),
	}
}

// Resolved returns a Future that already holds err.
func Resolved(err error) *Future {
	f := &Future{
		done: make(chan struct{}),
		err:  err,
	}
	f.once.Do(func() { close(f.done) })
	return f
}

// Await drives the work to completion on the calling goroutine and returns its
// result. Only the first call runs the work, bounded by its ctx; concurrent and
// later calls wait for and return the same result.
func (f *Future) Await(ctx context.Context) error {
	if f == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	f.once.Do(func() {
		f.err = f.run(ctx)
		close(f.done)
	})
	return f.err
}

// Done reports whether the result is available without blocking.
func (f *Future) Done() bool {
	if f == nil {
		return true
	}
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
